package handler

import (
	"net/http"

	"github.com/hrms-dev/hrms/backend/internal/domain"
)

type AccountResponse struct {
	Message string          `json:"message"`
	User    *domain.Account `json:"user"`
}

// UpdateAccountStatus activates or deactivates an account. Administrators cannot
// lock themselves out.
func (h *Handler) UpdateAccountStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsActive *bool `json:"isActive"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.invalidBody(w, r)
		return
	}
	if req.IsActive == nil {
		h.badRequest(w, r, domain.NewValidationError("isActive is a required field"))
		return
	}

	id := idFromContext(r.Context(), AccountIDCtx)
	if id == accountFromContext(r.Context()).ID {
		h.errorResponse(w, r, http.StatusBadRequest, "You cannot change the status of your own account")
		return
	}

	account, err := h.accounts.SetAccountActive(r.Context(), id, *req.IsActive)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, AccountResponse{
		Message: "Account status updated successfully",
		User:    account,
	})
}
