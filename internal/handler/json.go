package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hrms-dev/hrms/backend/internal/domain"
)

const serverErrorMessage = "Server error"

type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("internal server error", "request_id", r.Context().Value(RequestIDCtxKey), "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, ErrorResponse{Message: msg})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		h.writeJSON(w, r, http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Errors:  validationErr.Errors,
		})
		return
	}

	h.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (h *Handler) invalidBody(w http.ResponseWriter, r *http.Request) {
	h.errorResponse(w, r, http.StatusBadRequest, "Invalid request body")
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.errorResponse(w, r, http.StatusInternalServerError, serverErrorMessage)
}

type errorMapping struct {
	err     error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{domain.ErrDuplicateAccount, http.StatusBadRequest, "User already exists with this email"},
	{domain.ErrDuplicateEmployee, http.StatusBadRequest, "Employee with this email already exists"},
	{domain.ErrInvalidOTP, http.StatusBadRequest, "Invalid or expired verification code"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{domain.ErrAccountDeactivated, http.StatusUnauthorized, "Account is deactivated"},
	{domain.ErrTokenMissing, http.StatusUnauthorized, "No token, authorization denied"},
	{domain.ErrTokenExpired, http.StatusUnauthorized, "Token has expired"},
	{domain.ErrTokenInvalid, http.StatusUnauthorized, "Token is not valid"},
	{domain.ErrForbidden, http.StatusForbidden, "Access denied. Insufficient permissions."},
	{domain.ErrAccountNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrEmployeeNotFound, http.StatusNotFound, "Employee not found"},
}

// serviceError writes the response matching err's kind. Unknown errors are logged
// and answered with a bare 500.
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		provisioningErr *domain.EmployeeProvisioningError
		validationErr   *domain.ValidationError
		dupErr          *domain.DuplicateKeyError
	)

	switch {
	case errors.As(err, &provisioningErr):
		resp := ErrorResponse{Message: "Employee registration failed"}
		switch {
		case errors.As(provisioningErr.Cause, &validationErr):
			resp.Message += ": " + validationErr.Error()
			resp.Errors = validationErr.Errors
		case errors.As(provisioningErr.Cause, &dupErr):
			resp.Message += ": " + dupErr.Error()
		default:
			h.logInternalServerError(r, err)
		}
		h.writeJSON(w, r, http.StatusBadRequest, resp)
		return
	case errors.As(err, &validationErr):
		h.badRequest(w, r, validationErr)
		return
	case errors.As(err, &dupErr):
		h.errorResponse(w, r, http.StatusBadRequest, dupErr.Error())
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			h.errorResponse(w, r, m.status, m.message)
			return
		}
	}

	h.internalServerError(w, r, err)
}
