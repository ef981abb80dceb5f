package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/hrms-dev/hrms/backend/internal/token"
	"github.com/hrms-dev/hrms/backend/internal/utils"
)

type RegisterInput struct {
	Name         string         `json:"name" validate:"required"`
	Email        string         `json:"email" validate:"required,email"`
	Password     string         `json:"password" validate:"required,min=6"`
	Role         domain.Role    `json:"role" validate:"omitempty,oneof=admin hr employee"`
	EmployeeData *EmployeeInput `json:"employeeData" validate:"-"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordInput struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type AuthResult struct {
	Account *domain.Account
	Token   string
}

type AccountService struct {
	accounts      AccountStore
	employees     *EmployeeService
	hasher        PasswordHasher
	tokens        TokenIssuer
	cache         SessionCache
	mailer        MailPublisher
	validator     StructValidator
	otpExpiration time.Duration
}

type AccountServiceDeps struct {
	Accounts      AccountStore
	Employees     *EmployeeService
	Hasher        PasswordHasher
	Tokens        TokenIssuer
	Cache         SessionCache
	Mailer        MailPublisher
	Validator     StructValidator
	OTPExpiration time.Duration
}

func NewAccountService(deps AccountServiceDeps) *AccountService {
	return &AccountService{
		accounts:      deps.Accounts,
		employees:     deps.Employees,
		hasher:        deps.Hasher,
		tokens:        deps.Tokens,
		cache:         deps.Cache,
		mailer:        deps.Mailer,
		validator:     deps.Validator,
		otpExpiration: deps.OTPExpiration,
	}
}

func (s *AccountService) accountExists(ctx context.Context, email string) (bool, error) {
	_, err := s.accounts.FindAccountByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrAccountNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Register creates an account and, for employees that supplied employee data, the
// linked employee record. If the employee record cannot be stored the account is
// deleted again, so either both records exist afterwards or neither does.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = utils.NormalizeEmail(in.Email)
	if in.Role == "" {
		in.Role = domain.RoleEmployee
	}
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	exists, err := s.accountExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateAccount
	}

	provision := in.Role == domain.RoleEmployee && in.EmployeeData != nil
	if provision {
		exists, err := s.employees.exists(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateEmployee
		}
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: passwordHash,
		Role:         in.Role,
		IsActive:     true,
	}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	var employeeID string
	if provision {
		employee, err := s.provisionEmployee(ctx, account, in.EmployeeData)
		if err != nil {
			return nil, s.rollbackAccount(ctx, account, err)
		}
		employeeID = employee.EmployeeID
	}

	tokenString, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, err
	}

	s.sendMail(ctx, domain.MailMessage{
		Type: domain.MailTypeWelcome,
		To:   account.Email,
		Data: domain.WelcomeMailData{
			Name:       account.Name,
			Role:       account.Role,
			EmployeeID: employeeID,
		},
	})

	return &AuthResult{Account: account, Token: tokenString}, nil
}

func (s *AccountService) provisionEmployee(ctx context.Context, account *domain.Account, data *EmployeeInput) (*domain.Employee, error) {
	employee, err := data.toEmployee()
	if err != nil {
		return nil, err
	}

	if employee.FirstName == "" && employee.LastName == "" {
		employee.FirstName, employee.LastName = utils.SplitFullName(account.Name)
	}
	employee.Email = account.Email
	employee.Status = domain.EmployeeStatusActive

	if err := s.employees.insert(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// rollbackAccount removes an account whose employee record could not be stored.
func (s *AccountService) rollbackAccount(ctx context.Context, account *domain.Account, cause error) error {
	if err := s.accounts.DeleteAccount(context.WithoutCancel(ctx), account.ID); err != nil {
		slog.Error("failed to roll back account after employee provisioning failure",
			"account", account.ID, "email", account.Email, "cause", cause, "error", err)
		cause = errors.Join(cause, fmt.Errorf("roll back account: %w", err))
	}
	return &domain.EmployeeProvisioningError{Cause: cause}
}

func (s *AccountService) sendMail(ctx context.Context, msg domain.MailMessage) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.Publish(ctx, msg); err != nil {
		slog.Warn("failed to queue mail", "type", msg.Type, "to", msg.To, "error", err)
	}
}

func (s *AccountService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = utils.NormalizeEmail(in.Email)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	account, err := s.accounts.FindAccountByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !account.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	if err := s.hasher.Compare(account.PasswordHash, in.Password); err != nil {
		return nil, err
	}

	tokenString, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Account: account, Token: tokenString}, nil
}

// Authenticate resolves a bearer token to an active account.
func (s *AccountService) Authenticate(ctx context.Context, tokenString string) (*domain.Account, *token.Session, error) {
	if tokenString == "" {
		return nil, nil, domain.ErrTokenMissing
	}

	session, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, nil, err
	}

	revoked, err := s.cache.IsTokenRevoked(ctx, session.TokenID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, domain.ErrTokenInvalid
	}

	account, err := s.accounts.FindAccountByID(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, nil, domain.ErrTokenInvalid
		}
		return nil, nil, err
	}
	if !account.IsActive {
		return nil, nil, domain.ErrAccountDeactivated
	}

	return account, session, nil
}

// Logout revokes the session's token for the rest of its lifetime.
func (s *AccountService) Logout(ctx context.Context, session *token.Session) error {
	return s.cache.RevokeToken(ctx, session.TokenID, time.Until(session.ExpiresAt))
}

func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return s.accounts.FindAccountByID(ctx, id)
}

func (s *AccountService) SetAccountActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Account, error) {
	account, err := s.accounts.FindAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}

	account.IsActive = active
	if err := s.accounts.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// RequestPasswordReset mails a one time code to the account owner. Unknown emails
// succeed silently so the endpoint cannot be used to probe for accounts.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)

	account, err := s.accounts.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		return err
	}

	otp := utils.GenerateRandomOTP()
	if err := s.cache.SetResetOTP(ctx, account.Email, otp); err != nil {
		return err
	}

	return s.mailer.Publish(ctx, domain.MailMessage{
		Type: domain.MailTypeResetPassword,
		To:   account.Email,
		Data: domain.ResetPasswordMailData{
			Name:       account.Name,
			OTP:        otp,
			Expiration: int(s.otpExpiration.Minutes()),
		},
	})
}

func (s *AccountService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	in.Email = utils.NormalizeEmail(in.Email)
	if err := s.validator.Struct(in); err != nil {
		return err
	}

	otp, err := s.cache.ResetOTP(ctx, in.Email)
	if err != nil {
		return err
	}
	if otp != in.OTP {
		return domain.ErrInvalidOTP
	}

	account, err := s.accounts.FindAccountByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrInvalidOTP
		}
		return err
	}

	passwordHash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	account.PasswordHash = passwordHash
	if err := s.accounts.UpdateAccount(ctx, account); err != nil {
		return err
	}

	return s.cache.DeleteResetOTP(ctx, in.Email)
}

// EnsureInitialAdmin creates the bootstrap administrator unless an account with the
// same email already exists.
func (s *AccountService) EnsureInitialAdmin(ctx context.Context, name, email, password string) error {
	email = utils.NormalizeEmail(email)

	exists, err := s.accountExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	err = s.accounts.CreateAccount(ctx, &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	})
	var dupErr *domain.DuplicateKeyError
	if errors.As(err, &dupErr) {
		// another instance won the race
		return nil
	}
	return err
}
