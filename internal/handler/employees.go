package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/hrms-dev/hrms/backend/internal/service"
)

type EmployeeResponse struct {
	Message  string           `json:"message"`
	Employee *domain.Employee `json:"employee"`
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// malformed numbers fall back to the defaults
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	result, err := h.employees.List(r.Context(), service.ListInput{
		Page:       page,
		Limit:      limit,
		Search:     query.Get("search"),
		Department: domain.Department(query.Get("department")),
		Status:     domain.EmployeeStatus(query.Get("status")),
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, result)
}

func (h *Handler) GetEmployeeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.employees.Stats(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, stats)
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	account := accountFromContext(r.Context())

	employee, err := h.employees.GetByEmail(r.Context(), account.Email)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			h.errorResponse(w, r, http.StatusNotFound, "Employee profile not found. Please contact HR to create your employee record.")
			return
		}
		h.serviceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, EmployeeResponse{
		Message:  "Profile retrieved successfully",
		Employee: employee,
	})
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.employees.Get(r.Context(), idFromContext(r.Context(), EmployeeIDCtx))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, employee)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req service.EmployeeInput
	if err := h.readJSON(r, &req); err != nil {
		h.invalidBody(w, r)
		return
	}

	employee, err := h.employees.Create(r.Context(), req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, EmployeeResponse{
		Message:  "Employee created successfully",
		Employee: employee,
	})
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req service.EmployeePatch
	if err := h.readJSON(r, &req); err != nil {
		h.invalidBody(w, r)
		return
	}

	employee, err := h.employees.Update(r.Context(), idFromContext(r.Context(), EmployeeIDCtx), req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, EmployeeResponse{
		Message:  "Employee updated successfully",
		Employee: employee,
	})
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.employees.Delete(r.Context(), idFromContext(r.Context(), EmployeeIDCtx)); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, MessageResponse{Message: "Employee deleted successfully"})
}
