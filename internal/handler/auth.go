package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/hrms-dev/hrms/backend/internal/service"
)

// UserView is the public shape of an account.
type UserView struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

func newUserView(account *domain.Account) UserView {
	return UserView{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.Email,
		Role:  account.Role,
	}
}

type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserView `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := h.readJSON(r, &req); err != nil {
		h.invalidBody(w, r)
		return
	}

	result, err := h.accounts.Register(r.Context(), req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	message := "User registered successfully"
	if result.Account.Role == domain.RoleEmployee && req.EmployeeData != nil {
		message = "Employee registered successfully"
	}

	h.writeJSON(w, r, http.StatusCreated, AuthResponse{
		Message: message,
		Token:   result.Token,
		User:    newUserView(result.Account),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginInput
	if err := h.readJSON(r, &req); err != nil {
		h.invalidBody(w, r)
		return
	}

	result, err := h.accounts.Login(r.Context(), req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	// http-only cookie for browser clients, the body token for everyone else
	cookie := &http.Cookie{
		Name:     tokenCookieName,
		Value:    result.Token,
		Expires:  h.now().Add(time.Duration(h.config.JWT.Expiration) * time.Second),
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)

	h.writeJSON(w, r, http.StatusOK, AuthResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    newUserView(result.Account),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Logout(r.Context(), sessionFromContext(r.Context())); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:    tokenCookieName,
		Value:   "",
		Expires: h.now().Add(-time.Hour),
		Path:    "/",
	})

	h.writeJSON(w, r, http.StatusOK, MessageResponse{Message: "Logout successful"})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	account := accountFromContext(r.Context())

	h.writeJSON(w, r, http.StatusOK, map[string]UserView{"user": newUserView(account)})
}

func (h *Handler) RequireResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.invalidBody(w, r)
		return
	}
	if req.Email == "" {
		h.badRequest(w, r, domain.NewValidationError("email is a required field"))
		return
	}

	if err := h.accounts.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.serviceError(w, r, err)
		return
	}

	// same answer for unknown addresses
	h.writeJSON(w, r, http.StatusOK, MessageResponse{Message: "If the email is registered, a verification code has been sent"})
}

func (h *Handler) ConfirmResetPassword(w http.ResponseWriter, r *http.Request) {
	var req service.ResetPasswordInput
	if err := h.readJSON(r, &req); err != nil {
		h.invalidBody(w, r)
		return
	}

	if err := h.accounts.ResetPassword(r.Context(), req); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, MessageResponse{Message: "Password reset successfully"})
}
