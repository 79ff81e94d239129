// This file handles HTTP requests for the admin endpoints.
package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/moodmoment-go/apperror"
	"github.com/user/moodmoment-go/auth"
)

// Handlers provides the HTTP handlers for the admin endpoints.
type Handlers struct {
	service *Service
}

// NewHandlers creates new admin Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the admin routes. The router is expected to be
// guarded by RequireAuth and RequireAdmin already.
func (h *Handlers) RegisterRoutes(router chi.Router) {
	router.Get("/users", h.handleListUsers)
	router.Get("/user/{id}/moods", h.handleUserMoods)
}

// handleListUsers godoc
// @Summary List all users
// @Description Returns every user record, newest first. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} auth.User "Users"
// @Failure 401 {object} apperror.ErrorResponse "Invalid or missing token"
// @Failure 403 {object} apperror.ErrorResponse "Admin access required"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /admin/users [get]
func (h *Handlers) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, users)
}

// handleUserMoods godoc
// @Summary Inspect a user's mood history
// @Description Returns the given user's check-ins, most recent first. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Success 200 {array} moods.Entry "Check-ins"
// @Failure 400 {object} apperror.ErrorResponse "Missing user id"
// @Failure 401 {object} apperror.ErrorResponse "Invalid or missing token"
// @Failure 403 {object} apperror.ErrorResponse "Admin access required"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /admin/user/{id}/moods [get]
func (h *Handlers) handleUserMoods(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		auth.WriteError(w, r, apperror.NewBadRequestError("user id is required", nil))
		return
	}

	entries, err := h.service.UserMoods(r.Context(), userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, entries)
}
