package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hrms-dev/hrms/backend/internal/config"
	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/hrms-dev/hrms/backend/internal/service"
	"github.com/hrms-dev/hrms/backend/internal/token"
)

type AccountService interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error)
	Login(ctx context.Context, in service.LoginInput) (*service.AuthResult, error)
	Authenticate(ctx context.Context, tokenString string) (*domain.Account, *token.Session, error)
	Logout(ctx context.Context, session *token.Session) error
	SetAccountActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Account, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in service.ResetPasswordInput) error
}

type EmployeeService interface {
	List(ctx context.Context, in service.ListInput) (*service.EmployeePage, error)
	Stats(ctx context.Context) (*domain.EmployeeStats, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	Create(ctx context.Context, in service.EmployeeInput) (*domain.Employee, error)
	Update(ctx context.Context, id uuid.UUID, patch service.EmployeePatch) (*domain.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	config    *config.Config
	accounts  AccountService
	employees EmployeeService
	now       func() time.Time

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, accounts AccountService, employees EmployeeService) *Handler {
	return &Handler{
		config:    cfg,
		accounts:  accounts,
		employees: employees,
		now:       time.Now,

		Mux: chi.NewRouter(),
	}
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestID)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// set before mounting so that the /api subrouter inherits them
	h.Mux.NotFound(h.notFound)
	h.Mux.MethodNotAllowed(h.methodNotAllowed)

	// the web client prefixes every call with /api
	h.Mux.Group(h.routes)
	h.Mux.Route("/api", h.routes)
}

func (h *Handler) routes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.GetMe)
		})
	})

	// everything below requires a valid session
	r.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleHR})).Post("/", h.CreateEmployee)
			r.Get("/stats", h.GetEmployeeStats)
			r.Get("/my-profile", h.GetMyProfile)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employeeID)
				r.Get("/", h.GetEmployee)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleHR})).Put("/", h.UpdateEmployee)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteEmployee)
			})
		})

		r.Route("/accounts/{id}", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Use(h.accountID)
			r.Patch("/status", h.UpdateAccountStatus)
		})
	})
}
