package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"cineops/internal/shared/apperror"
	"cineops/internal/shared/config"
	"cineops/internal/users"
	"cineops/pkg/logger"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = apperror.Unauthorized("invalid email or password")
	ErrInvalidToken       = apperror.Unauthorized("invalid or expired token")
	ErrAdminRequired      = apperror.Unauthorized("only an admin can register employees")
)

type Service interface {
	// Register creates an employee. The first employee becomes ADMIN. After
	// that callerRole must be ADMIN.
	Register(ctx context.Context, req *RegisterRequest, callerRole string) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error)
	EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
}

type service struct {
	repo   Repository
	config *config.Config
	log    *logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		config: cfg,
		log:    logger.GetDefault(),
		now:    time.Now,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest, callerRole string) (*AuthResponse, error) {
	admins, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return nil, apperror.FromDB(err, "employee")
	}

	role := users.ParseRole(req.Role)
	if admins == 0 {
		role = users.RoleAdmin
	} else if callerRole != string(users.RoleAdmin) {
		return nil, ErrAdminRequired
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, apperror.FromDB(err, "employee")
	}
	if exists {
		return nil, apperror.Conflict("employee with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	employee := &users.Employee{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if req.CinemaID != nil {
		cinemaID, err := uuid.Parse(*req.CinemaID)
		if err != nil {
			return nil, apperror.InvalidInput("cinema_id must be a UUID")
		}
		employee.CinemaID = &cinemaID
	}

	if err := s.repo.CreateEmployee(ctx, employee); err != nil {
		return nil, apperror.FromDB(err, "employee")
	}

	return s.authResponse(employee)
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	employee, err := s.repo.GetEmployeeByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperror.FromDB(err, "employee")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.log.LogAuthSuccess(ctx, employee.ID.String(), "password")
	return s.authResponse(employee)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != tokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.EmployeeID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// the employee may have been removed since the token was issued
	employee, err := s.repo.GetEmployeeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, apperror.FromDB(err, "employee")
	}

	s.log.LogAuthSuccess(ctx, employee.ID.String(), "refresh")
	return s.generateTokenPair(employee)
}

func (s *service) GetEmployee(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.repo.GetEmployeeByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, "employee")
	}
	resp := toEmployeeResponse(employee)
	return &resp, nil
}

func (s *service) EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := s.repo.EmployeeExists(ctx, id)
	if err != nil {
		return false, apperror.FromDB(err, "employee")
	}
	return exists, nil
}

func (s *service) authResponse(employee *users.Employee) (*AuthResponse, error) {
	pair, err := s.generateTokenPair(employee)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Employee:     toEmployeeResponse(employee),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

func (s *service) generateTokenPair(employee *users.Employee) (*TokenPair, error) {
	now := s.now()

	access, err := s.signToken(employee, tokenTypeAccess, now, s.config.JWT.JWTExpiresIn)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(employee, tokenTypeRefresh, now, s.config.JWT.RefreshExpiresIn)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.config.JWT.JWTExpiresIn.Seconds()),
	}, nil
}

func (s *service) signToken(employee *users.Employee, tokenType string, now time.Time, ttl time.Duration) (string, error) {
	claims := JWTClaims{
		EmployeeID: employee.ID.String(),
		Email:      employee.Email,
		Role:       string(employee.Role),
		Type:       tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    s.config.JWT.Issuer,
			Subject:   employee.ID.String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWT.Secret))
}

func (s *service) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWT.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
