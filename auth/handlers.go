// This file contains the HTTP handlers for the auth endpoints, plus the
// shared response helpers used by every handler package.
package auth

import (
	"encoding/json"
	"net/http"

	"github.com/user/moodmoment-go/apperror"
)

// Handlers wraps the auth Service to provide HTTP handlers.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleRegister godoc
// @Summary User registration
// @Description Registers a new user and returns an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "User registration details"
// @Success 200 {object} auth.AuthResponse "User created, token issued"
// @Failure 400 {object} apperror.ErrorResponse "Missing or malformed fields"
// @Failure 409 {object} apperror.ErrorResponse "Email already registered"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if req.Email == "" || req.Password == "" || req.FullName == "" {
			WriteError(w, r, apperror.NewBadRequestError("email, password, and full name are required", nil))
			return
		}

		resp, err := h.service.Register(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleLogin godoc
// @Summary User login
// @Description Logs in an existing user and returns an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "User login credentials"
// @Success 200 {object} auth.AuthResponse "Login successful"
// @Failure 400 {object} apperror.ErrorResponse "Missing fields"
// @Failure 401 {object} apperror.ErrorResponse "Invalid email or password"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if req.Email == "" || req.Password == "" {
			WriteError(w, r, apperror.NewBadRequestError("email and password are required", nil))
			return
		}

		resp, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleResetRequest godoc
// @Summary Request a password reset
// @Description Issues a single-use reset token for the given email. The response does not reveal whether the email is registered.
// @Tags auth
// @Accept json
// @Produce json
// @Param resetBody body auth.ResetRequestBody true "Account email"
// @Success 200 {object} auth.ResetRequestResponse "Reset requested"
// @Failure 400 {object} apperror.ErrorResponse "Missing email"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /auth/password/reset/request [post]
func (h *Handlers) HandleResetRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetRequestBody
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if req.Email == "" {
			WriteError(w, r, apperror.NewBadRequestError("email is required", nil))
			return
		}

		resp, err := h.service.RequestPasswordReset(r.Context(), req.Email, r.Header.Get("Origin"))
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleResetConfirm godoc
// @Summary Confirm a password reset
// @Description Redeems a reset token and sets the new password.
// @Tags auth
// @Accept json
// @Produce json
// @Param confirmBody body auth.ResetConfirmRequest true "Reset token and new password"
// @Success 200 {object} auth.MessageResponse "Password updated"
// @Failure 400 {object} apperror.ErrorResponse "Invalid or expired token"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /auth/password/reset/confirm [post]
func (h *Handlers) HandleResetConfirm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetConfirmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if req.Token == "" || req.NewPassword == "" {
			WriteError(w, r, apperror.NewBadRequestError("token and new password are required", nil))
			return
		}

		if err := h.service.ConfirmPasswordReset(r.Context(), req.Token, req.NewPassword); err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, MessageResponse{Message: "Password updated successfully"})
	}
}

// WriteJSON serializes data to JSON and writes it with the given status.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError converts any error into a standardized apperror response. Errors
// that are not AppErrors are surfaced as a generic internal error so that
// unexpected failures never leak internals to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
