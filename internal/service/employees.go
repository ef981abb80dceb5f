package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/hrms-dev/hrms/backend/internal/utils"
	"github.com/shopspring/decimal"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// EmployeeInput is the writable part of an employee record as sent by clients.
// The employee id is always assigned by the server.
type EmployeeInput struct {
	FirstName        string                   `json:"firstName"`
	LastName         string                   `json:"lastName"`
	Email            string                   `json:"email"`
	Phone            string                   `json:"phone"`
	Department       domain.Department        `json:"department"`
	Position         string                   `json:"position"`
	Salary           *decimal.Decimal         `json:"salary"`
	HireDate         string                   `json:"hireDate"`
	Status           domain.EmployeeStatus    `json:"status"`
	Address          *domain.Address          `json:"address"`
	EmergencyContact *domain.EmergencyContact `json:"emergencyContact"`
}

// EmployeePatch carries an update. Nil fields are left unchanged.
type EmployeePatch struct {
	FirstName        *string                  `json:"firstName"`
	LastName         *string                  `json:"lastName"`
	Email            *string                  `json:"email"`
	Phone            *string                  `json:"phone"`
	Department       *domain.Department       `json:"department"`
	Position         *string                  `json:"position"`
	Salary           *decimal.Decimal         `json:"salary"`
	HireDate         *string                  `json:"hireDate"`
	Status           *domain.EmployeeStatus   `json:"status"`
	Address          *domain.Address          `json:"address"`
	EmergencyContact *domain.EmergencyContact `json:"emergencyContact"`
}

func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewValidationError(field + " must be a valid date")
}

func (in *EmployeeInput) toEmployee() (*domain.Employee, error) {
	if in.Salary == nil {
		return nil, domain.NewValidationError("salary is a required field")
	}

	hireDate, err := parseDate("hireDate", in.HireDate)
	if err != nil {
		return nil, err
	}

	return &domain.Employee{
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		Phone:            in.Phone,
		Department:       in.Department,
		Position:         in.Position,
		Salary:           *in.Salary,
		HireDate:         hireDate,
		Status:           in.Status,
		Address:          in.Address,
		EmergencyContact: in.EmergencyContact,
	}, nil
}

func (p *EmployeePatch) apply(e *domain.Employee) error {
	if p.HireDate != nil {
		hireDate, err := parseDate("hireDate", *p.HireDate)
		if err != nil {
			return err
		}
		if !hireDate.IsZero() {
			e.HireDate = hireDate
		}
	}
	if p.FirstName != nil {
		e.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		e.LastName = *p.LastName
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Phone != nil {
		e.Phone = *p.Phone
	}
	if p.Department != nil {
		e.Department = *p.Department
	}
	if p.Position != nil {
		e.Position = *p.Position
	}
	if p.Salary != nil {
		e.Salary = *p.Salary
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.Address != nil {
		e.Address = p.Address
	}
	if p.EmergencyContact != nil {
		e.EmergencyContact = p.EmergencyContact
	}
	return nil
}

type ListInput struct {
	Page       int
	Limit      int
	Search     string
	Department domain.Department
	Status     domain.EmployeeStatus
}

type EmployeePage struct {
	Employees   []*domain.Employee `json:"employees"`
	TotalPages  int64              `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
	Total       int64              `json:"total"`
}

type EmployeeService struct {
	store        EmployeeStore
	allocator    *IDAllocator
	validator    StructValidator
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

func NewEmployeeService(store EmployeeStore, allocator *IDAllocator, validator StructValidator, defaultLimit, maxLimit int) *EmployeeService {
	return &EmployeeService{
		store:        store,
		allocator:    allocator,
		validator:    validator,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		now:          time.Now,
	}
}

func (s *EmployeeService) List(ctx context.Context, in ListInput) (*EmployeePage, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = s.defaultLimit
	}
	if s.maxLimit > 0 && limit > s.maxLimit {
		limit = s.maxLimit
	}

	employees, total, err := s.store.ListEmployees(ctx, domain.EmployeeFilter{
		Search:     in.Search,
		Department: in.Department,
		Status:     in.Status,
		Limit:      uint64(limit),
		Offset:     uint64((page - 1) * limit),
	})
	if err != nil {
		return nil, err
	}

	return &EmployeePage{
		Employees:   employees,
		TotalPages:  (total + int64(limit) - 1) / int64(limit),
		CurrentPage: page,
		Total:       total,
	}, nil
}

func (s *EmployeeService) Stats(ctx context.Context) (*domain.EmployeeStats, error) {
	return s.store.EmployeeStats(ctx)
}

func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	return s.store.FindEmployeeByID(ctx, id)
}

// GetByEmail finds the employee record linked to a login account.
func (s *EmployeeService) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return s.store.FindEmployeeByEmail(ctx, utils.NormalizeEmail(email))
}

func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (*domain.Employee, error) {
	employee, err := in.toEmployee()
	if err != nil {
		return nil, err
	}

	if err := s.Import(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// Import stores an already built record, such as seed data, the same way Create does.
func (s *EmployeeService) Import(ctx context.Context, employee *domain.Employee) error {
	if employee.Status == "" {
		employee.Status = domain.EmployeeStatusActive
	}
	return s.insert(ctx, employee)
}

// insert allocates the employee id, fills defaults, validates and stores the record.
func (s *EmployeeService) insert(ctx context.Context, employee *domain.Employee) error {
	utils.NormalizeEmployee(employee)
	if employee.HireDate.IsZero() {
		employee.HireDate = s.now().UTC()
	}

	employeeID, err := s.allocator.Next(ctx)
	if err != nil {
		return err
	}
	employee.EmployeeID = employeeID

	if err := s.validator.Struct(employee); err != nil {
		return err
	}

	return s.store.CreateEmployee(ctx, employee)
}

func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, patch EmployeePatch) (*domain.Employee, error) {
	employee, err := s.store.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := patch.apply(employee); err != nil {
		return nil, err
	}
	utils.NormalizeEmployee(employee)

	if err := s.validator.Struct(employee); err != nil {
		return nil, err
	}

	if err := s.store.UpdateEmployee(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteEmployee(ctx, id)
}

// exists reports whether an employee record with email is already stored.
func (s *EmployeeService) exists(ctx context.Context, email string) (bool, error) {
	_, err := s.store.FindEmployeeByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return false, nil
	default:
		return false, err
	}
}
