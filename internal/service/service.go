// Package service holds the business rules of the HR backend: account provisioning,
// authentication and the employee directory. Storage, hashing, tokens and mail are
// reached through the small interfaces below.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/hrms-dev/hrms/backend/internal/token"
)

type AccountStore interface {
	FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindAccountByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	CreateAccount(ctx context.Context, account *domain.Account) error
	UpdateAccount(ctx context.Context, account *domain.Account) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

type EmployeeStore interface {
	FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)
	FindEmployeeByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	CountEmployees(ctx context.Context) (int64, error)
	CreateEmployee(ctx context.Context, employee *domain.Employee) error
	UpdateEmployee(ctx context.Context, employee *domain.Employee) error
	DeleteEmployee(ctx context.Context, id uuid.UUID) error
	ListEmployees(ctx context.Context, filter domain.EmployeeFilter) ([]*domain.Employee, int64, error)
	EmployeeStats(ctx context.Context) (*domain.EmployeeStats, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(accountID uuid.UUID) (string, error)
	Verify(tokenString string) (*token.Session, error)
}

// SessionCache stores reset codes and revoked token ids.
type SessionCache interface {
	SetResetOTP(ctx context.Context, email, otp string) error
	ResetOTP(ctx context.Context, email string) (string, error)
	DeleteResetOTP(ctx context.Context, email string) error
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

type MailPublisher interface {
	Publish(ctx context.Context, msg domain.MailMessage) error
}

type StructValidator interface {
	Struct(s any) error
}
