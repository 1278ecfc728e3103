package auth

import (
	"net/http"
	"strings"

	"cineops/internal/shared/apperror"
	"cineops/internal/shared/middleware"
	"cineops/internal/shared/utils/response"
	"cineops/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) bind(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.BadRequest(ctx, "Invalid request body", err)
		return false
	}
	if err := c.validator.Struct(req); err != nil {
		response.BadRequest(ctx, "Validation failed", err)
		return false
	}
	return true
}

// Register godoc
// @Summary  Register an employee
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body RegisterRequest true "Employee"
// @Success  201 {object} response.StandardApiResponse
// @Router   /auth/register [post]
func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if !c.bind(ctx, &req) {
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req, c.callerRole(ctx))
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Employee registered successfully", resp)
}

// callerRole reads the role from a Bearer access token when one is sent.
func (c *Controller) callerRole(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	claims, err := c.service.ValidateToken(token)
	if err != nil || claims.Type != tokenTypeAccess {
		return ""
	}
	return claims.Role
}

func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if !c.bind(ctx, &req) {
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindUnauthorized {
			logger.GetDefault().LogAuthFailure(ctx.Request.Context(), "invalid credentials", ctx.ClientIP())
		}
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Login successful", resp)
}

func (c *Controller) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if !c.bind(ctx, &req) {
		return
	}

	pair, err := c.service.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Token refreshed successfully", pair)
}

func (c *Controller) GetMe(ctx *gin.Context) {
	id, ok := middleware.EmployeeID(ctx)
	if !ok {
		response.Error(ctx, apperror.Unauthorized("employee not authenticated"))
		return
	}

	employee, err := c.service.GetEmployee(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Employee retrieved successfully", employee)
}
