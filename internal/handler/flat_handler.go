package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Akashdhk/Housemate/internal/dto"
	"github.com/Akashdhk/Housemate/internal/service"
	"github.com/Akashdhk/Housemate/pkg/response"
)

// FlatHandler handles flat registry HTTP requests
type FlatHandler struct {
	flatService service.FlatService
	authService service.AuthService
}

// NewFlatHandler creates a new FlatHandler
func NewFlatHandler(flatService service.FlatService, authService service.AuthService) *FlatHandler {
	return &FlatHandler{flatService: flatService, authService: authService}
}

// Create handles flat creation
// POST /api/v1/flats
func (h *FlatHandler) Create(c *gin.Context) {
	actor := currentUser(c, h.authService)
	if actor == nil {
		return
	}

	var req dto.CreateFlatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.flatService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// List handles retrieving all flats
// GET /api/v1/flats
func (h *FlatHandler) List(c *gin.Context) {
	actor := currentUser(c, h.authService)
	if actor == nil {
		return
	}

	result, err := h.flatService.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Get handles retrieving a single flat
// GET /api/v1/flats/:id
func (h *FlatHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Flat ID is required"))
		return
	}

	actor := currentUser(c, h.authService)
	if actor == nil {
		return
	}

	result, err := h.flatService.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// AssignTenant handles pairing a tenant with a vacant flat
// PUT /api/v1/flats/:id/tenant
func (h *FlatHandler) AssignTenant(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Flat ID is required"))
		return
	}

	actor := currentUser(c, h.authService)
	if actor == nil {
		return
	}

	var req dto.AssignTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.flatService.AssignTenant(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}
