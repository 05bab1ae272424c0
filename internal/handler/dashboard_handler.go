package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Akashdhk/Housemate/internal/domain"
	"github.com/Akashdhk/Housemate/internal/service"
	"github.com/Akashdhk/Housemate/pkg/response"
)

// DashboardHandler handles role-specific summary HTTP requests
type DashboardHandler struct {
	dashboardService service.DashboardService
	authService      service.AuthService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService service.DashboardService, authService service.AuthService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, authService: authService}
}

// Summary returns the dashboard matching the caller's role
// GET /api/v1/dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	actor := currentUser(c, h.authService)
	if actor == nil {
		return
	}

	var (
		result interface{}
		err    error
	)
	switch actor.Role {
	case domain.RoleOwner:
		result, err = h.dashboardService.OwnerSummary(c.Request.Context(), actor)
	case domain.RoleTenant:
		result, err = h.dashboardService.TenantSummary(c.Request.Context(), actor)
	default:
		c.JSON(http.StatusForbidden, response.Forbidden(""))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}
