package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cineops/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService overrides only the methods a test exercises.
type stubService struct {
	Service
	getCinema    func(ctx context.Context, id uuid.UUID) (*Cinema, error)
	createCinema func(ctx context.Context, req CreateCinemaRequest) (*Cinema, error)
	deleteFilm   func(ctx context.Context, id uuid.UUID) error
}

func (s *stubService) GetCinema(ctx context.Context, id uuid.UUID) (*Cinema, error) {
	return s.getCinema(ctx, id)
}

func (s *stubService) CreateCinema(ctx context.Context, req CreateCinemaRequest) (*Cinema, error) {
	return s.createCinema(ctx, req)
}

func (s *stubService) DeleteFilm(ctx context.Context, id uuid.UUID) error {
	return s.deleteFilm(ctx, id)
}

func newTestRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	SetupCatalogRoutes(r.Group("/api/v1"), NewController(svc), pass)
	return r
}

func TestGetCinemaInvalidID(t *testing.T) {
	r := newTestRouter(&stubService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cinemas/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCinemaNotFoundReturns404(t *testing.T) {
	r := newTestRouter(&stubService{
		getCinema: func(context.Context, uuid.UUID) (*Cinema, error) {
			return nil, apperror.NotFound("cinema")
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cinemas/"+uuid.NewString(), nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "cinema not found", body["message"])
}

func TestCreateCinemaValidatesBody(t *testing.T) {
	called := false
	r := newTestRouter(&stubService{
		createCinema: func(context.Context, CreateCinemaRequest) (*Cinema, error) {
			called = true
			return &Cinema{}, nil
		},
	})

	body := `{"name":"Odeon","address":"High St","hall_count":2,"seats_per_hall":100,"opening_time":"9am","closing_time":"23:00:00"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cinemas", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}

func TestCreateCinemaCreated(t *testing.T) {
	id := uuid.New()
	r := newTestRouter(&stubService{
		createCinema: func(_ context.Context, req CreateCinemaRequest) (*Cinema, error) {
			return &Cinema{ID: id, Name: req.Name, Slug: "odeon"}, nil
		},
	})

	body := `{"name":"Odeon","address":"High St","hall_count":2,"seats_per_hall":100,"opening_time":"09:00:00","closing_time":"23:00:00"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cinemas", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), id.String())
}

func TestDeleteReferencedFilmReturns409(t *testing.T) {
	r := newTestRouter(&stubService{
		deleteFilm: func(context.Context, uuid.UUID) error {
			return apperror.Conflict("film is still referenced")
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/films/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusConflict, w.Code)
}
