package auth

import (
	"context"
	"testing"
	"time"

	"cineops/internal/shared/apperror"
	"cineops/internal/shared/config"
	"cineops/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateEmployee(ctx context.Context, employee *users.Employee) error {
	args := m.Called(ctx, employee)
	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockRepository) GetEmployeeByEmail(ctx context.Context, email string) (*users.Employee, error) {
	args := m.Called(ctx, email)
	if e, ok := args.Get(0).(*users.Employee); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetEmployeeByID(ctx context.Context, id uuid.UUID) (*users.Employee, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*users.Employee); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) CountAdmins(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "unit-test-secret"
	cfg.JWT.JWTExpiresIn = 15 * time.Minute
	cfg.JWT.RefreshExpiresIn = 24 * time.Hour
	cfg.JWT.Issuer = "cineops"
	return cfg
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestFirstRegistrationBecomesAdmin(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testConfig())
	ctx := context.Background()

	repo.On("CountAdmins", ctx).Return(int64(0), nil)
	repo.On("EmailExists", ctx, "ana@cineops.local").Return(false, nil)
	repo.On("CreateEmployee", ctx, mock.MatchedBy(func(e *users.Employee) bool {
		return e.Role == users.RoleAdmin && e.PasswordHash != "secret1"
	})).Return(nil)

	resp, err := svc.Register(ctx, &RegisterRequest{
		FirstName: "Ana",
		LastName:  "Lopez",
		Email:     "Ana@cineops.local",
		Password:  "secret1",
		Role:      "cashier",
	}, "")

	require.NoError(t, err)
	assert.Equal(t, "ADMIN", resp.Employee.Role)
	assert.NotEmpty(t, resp.AccessToken)
	repo.AssertExpectations(t)
}

func TestRegisterRequiresAdminOnceOneExists(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testConfig())
	ctx := context.Background()

	repo.On("CountAdmins", ctx).Return(int64(1), nil)

	_, err := svc.Register(ctx, &RegisterRequest{Email: "x@y.z", Password: "secret1"}, "CASHIER")

	assert.ErrorIs(t, err, ErrAdminRequired)
	repo.AssertNotCalled(t, "CreateEmployee", mock.Anything, mock.Anything)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testConfig())
	ctx := context.Background()

	repo.On("CountAdmins", ctx).Return(int64(1), nil)
	repo.On("EmailExists", ctx, "dup@cineops.local").Return(true, nil)

	_, err := svc.Register(ctx, &RegisterRequest{Email: "dup@cineops.local", Password: "secret1"}, "ADMIN")

	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestLogin(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testConfig())
	ctx := context.Background()
	employee := &users.Employee{
		ID:           uuid.New(),
		Email:        "bo@cineops.local",
		PasswordHash: hashed(t, "secret1"),
		Role:         users.RoleCashier,
	}

	repo.On("GetEmployeeByEmail", ctx, "bo@cineops.local").Return(employee, nil)
	repo.On("GetEmployeeByEmail", ctx, "nobody@cineops.local").Return(nil, gorm.ErrRecordNotFound)

	resp, err := svc.Login(ctx, &LoginRequest{Email: "bo@cineops.local", Password: "secret1"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, employee.ID.String(), claims.EmployeeID)
	assert.Equal(t, "CASHIER", claims.Role)
	assert.Equal(t, tokenTypeAccess, claims.Type)
	assert.Equal(t, "cineops", claims.Issuer)

	_, err = svc.Login(ctx, &LoginRequest{Email: "bo@cineops.local", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginRequest{Email: "nobody@cineops.local", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testConfig())
	ctx := context.Background()
	employee := &users.Employee{ID: uuid.New(), Email: "c@cineops.local", PasswordHash: hashed(t, "secret1"), Role: users.RoleCashier}

	repo.On("GetEmployeeByEmail", ctx, "c@cineops.local").Return(employee, nil)
	repo.On("GetEmployeeByID", ctx, employee.ID).Return(employee, nil)

	resp, err := svc.Login(ctx, &LoginRequest{Email: "c@cineops.local", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.RefreshToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	pair, err := svc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewService(new(mockRepository), testConfig()).(*service)
	token, err := issuer.signToken(&users.Employee{ID: uuid.New()}, tokenTypeAccess, time.Now(), time.Hour)
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "another-secret"
	_, err = NewService(new(mockRepository), other).ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}
