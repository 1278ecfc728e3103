package sales

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cineops/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	Service
	recorded []SaleInput
	statsFor [][2]time.Time
}

func (s *stubService) RecordSale(_ context.Context, in SaleInput) (*RecordSaleResponse, error) {
	s.recorded = append(s.recorded, in)
	return &RecordSaleResponse{Sale: &TicketSale{ID: uuid.New()}, TotalPrice: decimal.NewFromInt(10)}, nil
}

func (s *stubService) GetSalesStats(context.Context) (*Stats, error) {
	return &Stats{}, nil
}

func (s *stubService) GetSalesStatsBetween(_ context.Context, from, to time.Time) (*Stats, error) {
	s.statsFor = append(s.statsFor, [2]time.Time{from, to})
	return &Stats{}, nil
}

func (s *stubService) GetSaleReceiptQR(context.Context, uuid.UUID) ([]byte, error) {
	return []byte("\x89PNG"), nil
}

func newTestRouter(svc Service, staff gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupSalesRoutes(r.Group("/api/v1"), NewController(svc), staff)
	return r
}

func pass(c *gin.Context) { c.Next() }

func postSale(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRecordSaleRequiresEmployeeWithoutAuth(t *testing.T) {
	svc := &stubService{}
	r := newTestRouter(svc, pass)

	body := `{"session_id":"` + uuid.NewString() + `","customer_id":"` + uuid.NewString() + `","ticket_count":2}`
	w := postSale(r, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.recorded)
}

func TestRecordSaleUsesAuthenticatedEmployee(t *testing.T) {
	svc := &stubService{}
	seller := uuid.New()
	r := newTestRouter(svc, func(c *gin.Context) {
		c.Set(middleware.EmployeeIDKey, seller.String())
		c.Next()
	})

	booking := uuid.New()
	body := `{"session_id":"` + uuid.NewString() + `","customer_id":"` + uuid.NewString() +
		`","ticket_count":2,"employee_id":"` + uuid.NewString() + `","booking_id":"` + booking.String() + `"}`
	w := postSale(r, body)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.recorded, 1)
	assert.Equal(t, seller, svc.recorded[0].EmployeeID)
	require.NotNil(t, svc.recorded[0].BookingID)
	assert.Equal(t, booking, *svc.recorded[0].BookingID)
}

func TestRecordSaleRejectsBadIDs(t *testing.T) {
	svc := &stubService{}
	r := newTestRouter(svc, pass)

	w := postSale(r, `{"session_id":"nope","customer_id":"`+uuid.NewString()+`","ticket_count":1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.recorded)
}

func TestGetSalesStatsRange(t *testing.T) {
	svc := &stubService{}
	r := newTestRouter(svc, pass)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tickets/stats?from=2026-05-01&to=2026-05-31", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.statsFor, 1)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), svc.statsFor[0][0])
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), svc.statsFor[0][1])
}

func TestGetSalesStatsRejectsInvertedRange(t *testing.T) {
	svc := &stubService{}
	r := newTestRouter(svc, pass)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tickets/stats?from=2026-05-31&to=2026-05-01", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.statsFor)
}

func TestGetReceiptServesPNG(t *testing.T) {
	r := newTestRouter(&stubService{}, pass)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tickets/"+uuid.NewString()+"/receipt.png", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}
