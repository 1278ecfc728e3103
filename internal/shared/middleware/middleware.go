package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"cineops/internal/shared/apperror"
	"cineops/internal/shared/config"
	"cineops/internal/shared/utils/response"
	"cineops/internal/users"
	"cineops/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Keys set on the gin context by JWTAuthWithConfig.
const (
	EmployeeIDKey    = "employee_id"
	EmployeeEmailKey = "employee_email"
	EmployeeRoleKey  = "employee_role"
)

const RequestIDHeader = "X-Request-ID"

// JWTAuthWithConfig validates a Bearer access token and stores the
// employee claims on the context.
func JWTAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "authorization header format must be Bearer {token}")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			unauthorized(c, "invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["type"] != "access" {
			unauthorized(c, "invalid token type")
			return
		}

		c.Set(EmployeeIDKey, claims["employee_id"])
		c.Set(EmployeeEmailKey, claims["email"])
		c.Set(EmployeeRoleKey, claims["role"])
		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	logger.GetDefault().LogAuthFailure(c.Request.Context(), msg, c.ClientIP())
	response.Error(c, apperror.Unauthorized(msg))
	c.Abort()
}

// RequireRoles allows the request through when the employee holds any of roles.
func RequireRoles(roles ...users.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(EmployeeRoleKey)
		if !ok {
			response.Error(c, apperror.Unauthorized("employee role not found in context"))
			c.Abort()
			return
		}

		roleName, _ := role.(string)
		for _, r := range roles {
			if roleName == string(r) {
				c.Next()
				return
			}
		}

		response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
		c.Abort()
	}
}

// StaffGuard protects operator routes. It lets everything through when auth
// is disabled.
func StaffGuard(cfg *config.Config) gin.HandlerFunc {
	if !cfg.Auth.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return JWTAuthWithConfig(cfg)
}

// RequestID propagates X-Request-ID, generating one when absent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(logger.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestTimeout bounds every request context, which in turn bounds how long
// a query may wait for a pooled connection.
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// EmployeeID returns the authenticated employee, if any.
func EmployeeID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := c.Get(EmployeeIDKey)
	if !ok {
		return uuid.Nil, false
	}
	s, _ := raw.(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
