package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/hrms-dev/hrms/backend/internal/service"
	"github.com/hrms-dev/hrms/backend/internal/token"
	"github.com/stretchr/testify/mock"
)

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	result, _ := args.Get(0).(*service.AuthResult)
	return result, args.Error(1)
}

func (m *mockAccountService) Login(ctx context.Context, in service.LoginInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	result, _ := args.Get(0).(*service.AuthResult)
	return result, args.Error(1)
}

func (m *mockAccountService) Authenticate(ctx context.Context, tokenString string) (*domain.Account, *token.Session, error) {
	args := m.Called(ctx, tokenString)
	account, _ := args.Get(0).(*domain.Account)
	session, _ := args.Get(1).(*token.Session)
	return account, session, args.Error(2)
}

func (m *mockAccountService) Logout(ctx context.Context, session *token.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockAccountService) SetAccountActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Account, error) {
	args := m.Called(ctx, id, active)
	account, _ := args.Get(0).(*domain.Account)
	return account, args.Error(1)
}

func (m *mockAccountService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAccountService) ResetPassword(ctx context.Context, in service.ResetPasswordInput) error {
	return m.Called(ctx, in).Error(0)
}

type mockEmployeeService struct {
	mock.Mock
}

func (m *mockEmployeeService) List(ctx context.Context, in service.ListInput) (*service.EmployeePage, error) {
	args := m.Called(ctx, in)
	page, _ := args.Get(0).(*service.EmployeePage)
	return page, args.Error(1)
}

func (m *mockEmployeeService) Stats(ctx context.Context) (*domain.EmployeeStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*domain.EmployeeStats)
	return stats, args.Error(1)
}

func (m *mockEmployeeService) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	employee, _ := args.Get(0).(*domain.Employee)
	return employee, args.Error(1)
}

func (m *mockEmployeeService) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	args := m.Called(ctx, email)
	employee, _ := args.Get(0).(*domain.Employee)
	return employee, args.Error(1)
}

func (m *mockEmployeeService) Create(ctx context.Context, in service.EmployeeInput) (*domain.Employee, error) {
	args := m.Called(ctx, in)
	employee, _ := args.Get(0).(*domain.Employee)
	return employee, args.Error(1)
}

func (m *mockEmployeeService) Update(ctx context.Context, id uuid.UUID, patch service.EmployeePatch) (*domain.Employee, error) {
	args := m.Called(ctx, id, patch)
	employee, _ := args.Get(0).(*domain.Employee)
	return employee, args.Error(1)
}

func (m *mockEmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
