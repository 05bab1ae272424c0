package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Akashdhk/Housemate/internal/dto"
	"github.com/Akashdhk/Housemate/internal/service"
	"github.com/Akashdhk/Housemate/pkg/response"
	"github.com/Akashdhk/Housemate/pkg/telemetry"
)

// BillHandler handles bill lifecycle HTTP requests
type BillHandler struct {
	billService service.BillService
	authService service.AuthService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(billService service.BillService, authService service.AuthService) *BillHandler {
	return &BillHandler{billService: billService, authService: authService}
}

// Create handles bill creation
// POST /api/v1/bills
func (h *BillHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.bill.create")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	actor := currentUser(c, h.authService)
	if actor == nil {
		span.SetStatus(codes.Error, "unauthorized")
		return
	}

	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	span.SetAttributes(
		telemetry.UserIDAttr(actor.ID),
		telemetry.FlatIDAttr(req.FlatID),
		attribute.String("bill.type", req.Type),
	)

	result, err := h.billService.Create(ctx, actor, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		respondError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusCreated, response.Success(result))
}

// Pay handles bill payment
// POST /api/v1/bills/:id/pay
func (h *BillHandler) Pay(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.bill.pay")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Bill ID is required"))
		return
	}

	actor := currentUser(c, h.authService)
	if actor == nil {
		span.SetStatus(codes.Error, "unauthorized")
		return
	}

	span.SetAttributes(
		telemetry.UserIDAttr(actor.ID),
		attribute.String("bill.id", id),
	)

	result, err := h.billService.Pay(ctx, actor, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		respondError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, response.Success(result))
}

// List handles retrieving bills with status projection and filters
// GET /api/v1/bills
func (h *BillHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.bill.list")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	actor := currentUser(c, h.authService)
	if actor == nil {
		span.SetStatus(codes.Error, "unauthorized")
		return
	}

	var query dto.ListBillsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.billService.List(ctx, actor, &query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		respondError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, response.Success(result))
}
