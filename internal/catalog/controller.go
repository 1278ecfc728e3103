package catalog

import (
	"net/http"

	"cineops/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateCinema(c *gin.Context)
	GetCinema(c *gin.Context)
	ListCinemas(c *gin.Context)
	UpdateCinema(c *gin.Context)
	DeleteCinema(c *gin.Context)

	CreateFilm(c *gin.Context)
	GetFilm(c *gin.Context)
	ListFilms(c *gin.Context)
	ListActiveFilms(c *gin.Context)
	UpdateFilm(c *gin.Context)
	DeleteFilm(c *gin.Context)

	CreateCustomer(c *gin.Context)
	GetCustomer(c *gin.Context)
	ListCustomers(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" ID", err)
		return uuid.Nil, false
	}
	return id, true
}

// CreateCinema godoc
// @Summary  Create a cinema
// @Tags     cinemas
// @Accept   json
// @Produce  json
// @Param    body body CreateCinemaRequest true "Cinema"
// @Success  201 {object} response.StandardApiResponse
// @Router   /cinemas [post]
func (ctrl *controller) CreateCinema(c *gin.Context) {
	var req CreateCinemaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	cinema, err := ctrl.service.CreateCinema(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Cinema created successfully", cinema)
}

func (ctrl *controller) GetCinema(c *gin.Context) {
	id, ok := parseID(c, "cinema")
	if !ok {
		return
	}

	cinema, err := ctrl.service.GetCinema(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Cinema retrieved successfully", cinema)
}

func (ctrl *controller) ListCinemas(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	page, err := ctrl.service.ListCinemas(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Cinemas retrieved successfully", page)
}

func (ctrl *controller) UpdateCinema(c *gin.Context) {
	id, ok := parseID(c, "cinema")
	if !ok {
		return
	}

	var req UpdateCinemaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	cinema, err := ctrl.service.UpdateCinema(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Cinema updated successfully", cinema)
}

func (ctrl *controller) DeleteCinema(c *gin.Context) {
	id, ok := parseID(c, "cinema")
	if !ok {
		return
	}

	if err := ctrl.service.DeleteCinema(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Cinema deleted successfully", nil)
}

// CreateFilm godoc
// @Summary  Create a film
// @Tags     films
// @Accept   json
// @Produce  json
// @Param    body body CreateFilmRequest true "Film"
// @Success  201 {object} response.StandardApiResponse
// @Router   /films [post]
func (ctrl *controller) CreateFilm(c *gin.Context) {
	var req CreateFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	film, err := ctrl.service.CreateFilm(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Film created successfully", film)
}

func (ctrl *controller) GetFilm(c *gin.Context) {
	id, ok := parseID(c, "film")
	if !ok {
		return
	}

	film, err := ctrl.service.GetFilm(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Film retrieved successfully", film)
}

func (ctrl *controller) ListFilms(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	page, err := ctrl.service.ListFilms(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Films retrieved successfully", page)
}

func (ctrl *controller) ListActiveFilms(c *gin.Context) {
	films, err := ctrl.service.ListActiveFilms(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Active films retrieved successfully", films)
}

func (ctrl *controller) UpdateFilm(c *gin.Context) {
	id, ok := parseID(c, "film")
	if !ok {
		return
	}

	var req UpdateFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	film, err := ctrl.service.UpdateFilm(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Film updated successfully", film)
}

func (ctrl *controller) DeleteFilm(c *gin.Context) {
	id, ok := parseID(c, "film")
	if !ok {
		return
	}

	if err := ctrl.service.DeleteFilm(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Film deleted successfully", nil)
}

func (ctrl *controller) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	customer, err := ctrl.service.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Customer created successfully", customer)
}

func (ctrl *controller) GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}

	customer, err := ctrl.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Customer retrieved successfully", customer)
}

func (ctrl *controller) ListCustomers(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	page, err := ctrl.service.ListCustomers(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Customers retrieved successfully", page)
}
