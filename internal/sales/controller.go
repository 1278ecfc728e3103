package sales

import (
	"net/http"

	"cineops/internal/shared/apperror"
	"cineops/internal/shared/middleware"
	"cineops/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func saleID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.BadRequest(ctx, "Invalid sale ID", err)
		return uuid.Nil, false
	}
	return id, true
}

// RecordSale godoc
// @Summary  Record a box-office ticket sale
// @Tags     tickets
// @Accept   json
// @Produce  json
// @Param    body body RecordSaleRequest true "Sale"
// @Success  201 {object} response.StandardApiResponse
// @Failure  409 {object} response.StandardApiResponse "capacity exceeded or booking not active"
// @Router   /tickets [post]
func (c *Controller) RecordSale(ctx *gin.Context) {
	var req RecordSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "Invalid request body", err)
		return
	}

	in := SaleInput{
		SessionID:   uuid.MustParse(req.SessionID),
		CustomerID:  uuid.MustParse(req.CustomerID),
		TicketCount: req.TicketCount,
	}

	// the authenticated employee is the seller
	if id, ok := middleware.EmployeeID(ctx); ok {
		in.EmployeeID = id
	} else if req.EmployeeID != "" {
		in.EmployeeID = uuid.MustParse(req.EmployeeID)
	} else {
		response.Error(ctx, apperror.InvalidInput("employee_id is required"))
		return
	}

	if req.BookingID != "" {
		bookingID := uuid.MustParse(req.BookingID)
		in.BookingID = &bookingID
	}

	result, err := c.service.RecordSale(ctx.Request.Context(), in)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Sale recorded successfully", result)
}

// GetSalesStats godoc
// @Summary  Sales totals, optionally for a date range
// @Tags     tickets
// @Produce  json
// @Param    from query string false "first day, YYYY-MM-DD"
// @Param    to   query string false "last day, YYYY-MM-DD"
// @Success  200 {object} response.StandardApiResponse
// @Router   /tickets/stats [get]
func (c *Controller) GetSalesStats(ctx *gin.Context) {
	var query StatsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.BadRequest(ctx, "Invalid query parameters", err)
		return
	}

	var (
		stats *Stats
		err   error
	)
	if query.From == "" && query.To == "" {
		stats, err = c.service.GetSalesStats(ctx.Request.Context())
	} else {
		from, to, rangeErr := query.Range()
		if rangeErr != nil {
			response.Error(ctx, rangeErr)
			return
		}
		stats, err = c.service.GetSalesStatsBetween(ctx.Request.Context(), from, to)
	}
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Sales stats retrieved successfully", stats)
}

// GetSale handles GET /api/v1/tickets/:id
func (c *Controller) GetSale(ctx *gin.Context) {
	id, ok := saleID(ctx)
	if !ok {
		return
	}

	view, err := c.service.GetSale(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Sale retrieved successfully", view)
}

// GetReceipt handles GET /api/v1/tickets/:id/receipt.png
func (c *Controller) GetReceipt(ctx *gin.Context) {
	id, ok := saleID(ctx)
	if !ok {
		return
	}

	png, err := c.service.GetSaleReceiptQR(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	ctx.Header("Cache-Control", "private, max-age=3600")
	ctx.Data(http.StatusOK, "image/png", png)
}

// ListSales handles GET /api/v1/tickets?session_id=&page=&limit=
func (c *Controller) ListSales(ctx *gin.Context) {
	var query ListSalesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.BadRequest(ctx, "Invalid query parameters", err)
		return
	}

	page, err := c.service.ListSales(ctx.Request.Context(), query)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Sales retrieved successfully", page)
}
