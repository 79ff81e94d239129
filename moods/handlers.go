// This file handles HTTP requests for the mood endpoints. Routes are
// registered on a chi sub-router mounted under /moods in main.
package moods

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/moodmoment-go/apperror"
	"github.com/user/moodmoment-go/auth"
)

// Handlers provides the HTTP handlers for mood check-ins.
type Handlers struct {
	service *Service
}

// NewHandlers creates new mood Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the mood routes. The router is expected to be
// guarded by auth.RequireAuth already.
func (h *Handlers) RegisterRoutes(router chi.Router) {
	router.Get("/", h.handleList)
	router.Post("/", h.handleCreate)
	router.Get("/suggest", h.handleSuggest)
	router.Get("/stats", h.handleStats)
}

// handleList godoc
// @Summary List mood check-ins
// @Description Returns the authenticated user's check-ins, most recent first.
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Success 200 {array} moods.Entry "Check-ins"
// @Failure 401 {object} apperror.ErrorResponse "Invalid or missing token"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /moods [get]
func (h *Handlers) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
		return
	}

	entries, err := h.service.ListEntries(r.Context(), user.ID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, entries)
}

// handleCreate godoc
// @Summary Record a mood check-in
// @Description Records one check-in for the authenticated user. The category must be one of stressed, tired, focused, happy.
// @Tags moods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param moodBody body moods.CreateEntryRequest true "Mood and optional note"
// @Success 200 {object} moods.Entry "Created check-in"
// @Failure 400 {object} apperror.ErrorResponse "Invalid mood category or oversized note"
// @Failure 401 {object} apperror.ErrorResponse "Invalid or missing token"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /moods [post]
func (h *Handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
		return
	}

	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	if req.Mood == "" {
		auth.WriteError(w, r, apperror.NewValidationError("mood is required", nil))
		return
	}

	entry, err := h.service.AddEntry(r.Context(), user.ID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, entry)
}

// handleSuggest godoc
// @Summary Wellness suggestions
// @Description Returns suggestions keyed by the authenticated user's latest mood.
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Success 200 {object} moods.SuggestionsResponse "Suggestions"
// @Failure 401 {object} apperror.ErrorResponse "Invalid or missing token"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /moods/suggest [get]
func (h *Handlers) handleSuggest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
		return
	}

	suggestions, err := h.service.Suggest(r.Context(), user.ID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

// handleStats godoc
// @Summary Weekly mood statistics
// @Description Aggregates the authenticated user's check-ins over the last seven days.
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Success 200 {object} moods.StatsResponse "Weekly aggregate"
// @Failure 401 {object} apperror.ErrorResponse "Invalid or missing token"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /moods/stats [get]
func (h *Handlers) handleStats(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
		return
	}

	stats, err := h.service.WeeklyStats(r.Context(), user.ID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, stats)
}
