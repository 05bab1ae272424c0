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

// TicketHandler handles maintenance ticket HTTP requests
type TicketHandler struct {
	ticketService service.TicketService
	authService   service.AuthService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService service.TicketService, authService service.AuthService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService, authService: authService}
}

// Create handles filing a maintenance ticket
// POST /api/v1/tickets
func (h *TicketHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.ticket.create")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	actor := currentUser(c, h.authService)
	if actor == nil {
		span.SetStatus(codes.Error, "unauthorized")
		return
	}

	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	span.SetAttributes(telemetry.UserIDAttr(actor.ID))

	result, err := h.ticketService.Create(ctx, actor, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		respondError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusCreated, response.Success(result))
}

// Advance handles moving a ticket along its workflow
// PATCH /api/v1/tickets/:id/status
func (h *TicketHandler) Advance(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.ticket.advance")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Ticket ID is required"))
		return
	}

	actor := currentUser(c, h.authService)
	if actor == nil {
		span.SetStatus(codes.Error, "unauthorized")
		return
	}

	var req dto.AdvanceTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	span.SetAttributes(
		attribute.String("ticket.id", id),
		telemetry.TicketStatusAttr(req.Status),
	)

	result, err := h.ticketService.Advance(ctx, actor, id, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		respondError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, response.Success(result))
}

// List handles retrieving tickets with filters
// GET /api/v1/tickets
func (h *TicketHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.ticket.list")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	actor := currentUser(c, h.authService)
	if actor == nil {
		span.SetStatus(codes.Error, "unauthorized")
		return
	}

	var query dto.ListTicketsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.ticketService.List(ctx, actor, &query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		respondError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, response.Success(result))
}
