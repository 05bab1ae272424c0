package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Akashdhk/Housemate/internal/domain"
	"github.com/Akashdhk/Housemate/internal/service"
	"github.com/Akashdhk/Housemate/pkg/middleware"
	"github.com/Akashdhk/Housemate/pkg/response"
)

// respondError maps a service error to the response envelope. Domain
// sentinels carry the business meaning; anything unrecognized is a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, err.Error()))
	case errors.Is(err, domain.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, response.Forbidden(err.Error()))
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, response.NotFound(err.Error()))
	case errors.Is(err, domain.ErrAlreadyPaid):
		c.JSON(http.StatusConflict, response.BillAlreadyPaid(err.Error()))
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, response.InvalidTransition(err.Error()))
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, response.Error(response.ErrCodeConflict, err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, response.Error(response.ErrCodeInvalidCredentials, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
	}
}

// currentUser loads the authenticated user from the JWT identity set by
// the auth middleware. Returns nil after writing the error response.
func currentUser(c *gin.Context, authService service.AuthService) *domain.User {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return nil
	}

	user, err := authService.GetUser(c.Request.Context(), userID)
	if errors.Is(err, domain.ErrNotFound) {
		// Token outlived the account
		c.JSON(http.StatusUnauthorized, response.Unauthorized("Account no longer exists"))
		return nil
	}
	if err != nil {
		respondError(c, err)
		return nil
	}
	return user
}
