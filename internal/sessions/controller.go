package sessions

import (
	"net/http"

	"cineops/internal/catalog"
	"cineops/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateSession(c *gin.Context)
	GetSession(c *gin.Context)
	ListSessions(c *gin.Context)
	ListUpcomingSessions(c *gin.Context)
	DeleteSession(c *gin.Context)
	GetAvailability(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID", err)
		return uuid.Nil, false
	}
	return id, true
}

// CreateSession godoc
// @Summary  Schedule a session
// @Tags     sessions
// @Accept   json
// @Produce  json
// @Param    body body CreateSessionRequest true "Session"
// @Success  201 {object} response.StandardApiResponse
// @Failure  400 {object} response.StandardApiResponse
// @Failure  404 {object} response.StandardApiResponse
// @Router   /sessions [post]
func (ctrl *controller) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	session, err := ctrl.service.CreateSession(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Session created successfully", session)
}

func (ctrl *controller) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	session, err := ctrl.service.GetSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Session retrieved successfully", session)
}

func (ctrl *controller) ListSessions(c *gin.Context) {
	var query catalog.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	page, err := ctrl.service.ListSessions(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Sessions retrieved successfully", page)
}

func (ctrl *controller) ListUpcomingSessions(c *gin.Context) {
	rows, err := ctrl.service.ListUpcomingSessions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Upcoming sessions retrieved successfully", rows)
}

func (ctrl *controller) DeleteSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeleteSession(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Session deleted successfully", nil)
}

// GetAvailability godoc
// @Summary  Seats left for a session
// @Tags     sessions
// @Produce  json
// @Param    id path string true "Session ID"
// @Success  200 {object} response.StandardApiResponse
// @Router   /sessions/{id}/availability [get]
func (ctrl *controller) GetAvailability(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	availability, err := ctrl.service.GetAvailability(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Availability retrieved successfully", availability)
}
