package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/hrms-dev/hrms/backend/internal/token"
	"github.com/hrms-dev/hrms/backend/internal/utils"
	"github.com/stretchr/testify/require"
)

type fakeAccountStore struct {
	mu        sync.Mutex
	accounts  map[uuid.UUID]domain.Account
	deleteErr error
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: map[uuid.UUID]domain.Account{}}
}

func (f *fakeAccountStore) FindAccountByEmail(_ context.Context, email string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (f *fakeAccountStore) FindAccountByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &a, nil
}

func (f *fakeAccountStore) CreateAccount(_ context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == account.Email {
			return &domain.DuplicateKeyError{Entity: "User", Field: "email"}
		}
	}
	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	f.accounts[account.ID] = *account
	return nil
}

func (f *fakeAccountStore) UpdateAccount(_ context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	account.UpdatedAt = time.Now()
	f.accounts[account.ID] = *account
	return nil
}

func (f *fakeAccountStore) DeleteAccount(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.accounts)
}

// fakeEmployeeStore enforces the same unique keys as the employees table.
type fakeEmployeeStore struct {
	mu        sync.Mutex
	employees []domain.Employee
	createErr error
	clock     time.Time
}

func newFakeEmployeeStore() *fakeEmployeeStore {
	return &fakeEmployeeStore{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeEmployeeStore) FindEmployeeByEmail(_ context.Context, email string) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.employees {
		if e.Email == email {
			return &e, nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (f *fakeEmployeeStore) FindEmployeeByID(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.employees {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (f *fakeEmployeeStore) CountEmployees(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.employees)), nil
}

func (f *fakeEmployeeStore) CreateEmployee(_ context.Context, employee *domain.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, e := range f.employees {
		if e.Email == employee.Email {
			return &domain.DuplicateKeyError{Entity: "Employee", Field: "email"}
		}
		if e.EmployeeID == employee.EmployeeID {
			return &domain.DuplicateKeyError{Entity: "Employee", Field: "employeeId"}
		}
	}
	f.clock = f.clock.Add(time.Minute)
	employee.ID = uuid.New()
	employee.CreatedAt = f.clock
	employee.UpdatedAt = f.clock
	f.employees = append(f.employees, *employee)
	return nil
}

func (f *fakeEmployeeStore) UpdateEmployee(_ context.Context, employee *domain.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.employees {
		if e.ID == employee.ID {
			employee.EmployeeID = e.EmployeeID
			f.employees[i] = *employee
			return nil
		}
	}
	return domain.ErrEmployeeNotFound
}

func (f *fakeEmployeeStore) DeleteEmployee(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.employees {
		if e.ID == id {
			f.employees = append(f.employees[:i], f.employees[i+1:]...)
			return nil
		}
	}
	return domain.ErrEmployeeNotFound
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (f *fakeEmployeeStore) ListEmployees(_ context.Context, filter domain.EmployeeFilter) ([]*domain.Employee, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matches := []*domain.Employee{}
	for _, e := range f.employees {
		if filter.Search != "" && !containsFold(e.FirstName, filter.Search) && !containsFold(e.LastName, filter.Search) &&
			!containsFold(e.Email, filter.Search) && !containsFold(e.EmployeeID, filter.Search) {
			continue
		}
		if filter.Department != "" && e.Department != filter.Department {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		e := e
		matches = append(matches, &e)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })

	total := int64(len(matches))
	start := min(int(filter.Offset), len(matches))
	end := len(matches)
	if filter.Limit > 0 {
		end = min(start+int(filter.Limit), len(matches))
	}
	return matches[start:end], total, nil
}

func (f *fakeEmployeeStore) EmployeeStats(context.Context) (*domain.EmployeeStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stats := &domain.EmployeeStats{DepartmentStats: []domain.DepartmentCount{}}
	byDepartment := map[domain.Department]int64{}
	for _, e := range f.employees {
		stats.TotalEmployees++
		switch e.Status {
		case domain.EmployeeStatusActive:
			stats.ActiveEmployees++
		case domain.EmployeeStatusInactive:
			stats.InactiveEmployees++
		case domain.EmployeeStatusTerminated:
			stats.TerminatedEmployees++
		}
		byDepartment[e.Department]++
	}
	for d, c := range byDepartment {
		stats.DepartmentStats = append(stats.DepartmentStats, domain.DepartmentCount{Department: d, Count: c})
	}
	sort.Slice(stats.DepartmentStats, func(i, j int) bool {
		a, b := stats.DepartmentStats[i], stats.DepartmentStats[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Department < b.Department
	})
	return stats, nil
}

func (f *fakeEmployeeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.employees)
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type fakeCache struct {
	mu      sync.Mutex
	otps    map[string]string
	revoked map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{otps: map[string]string{}, revoked: map[string]time.Duration{}}
}

func (f *fakeCache) SetResetOTP(_ context.Context, email, otp string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.otps[email] = otp
	return nil
}

func (f *fakeCache) ResetOTP(_ context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	otp, ok := f.otps[email]
	if !ok {
		return "", domain.ErrInvalidOTP
	}
	return otp, nil
}

func (f *fakeCache) DeleteResetOTP(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.otps, email)
	return nil
}

func (f *fakeCache) RevokeToken(_ context.Context, tokenID string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[tokenID] = ttl
	return nil
}

func (f *fakeCache) IsTokenRevoked(_ context.Context, tokenID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[tokenID]
	return ok, nil
}

type fakeMailer struct {
	mu       sync.Mutex
	messages []domain.MailMessage
	err      error
}

func (f *fakeMailer) Publish(_ context.Context, msg domain.MailMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeMailer) sent() []domain.MailMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.MailMessage(nil), f.messages...)
}

var errStoreDown = errors.New("store unavailable")

type testEnv struct {
	accounts  *fakeAccountStore
	employees *fakeEmployeeStore
	cache     *fakeCache
	mailer    *fakeMailer
	tokens    *token.Issuer
	employee  *EmployeeService
	account   *AccountService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	validator, err := utils.NewValidator()
	require.NoError(t, err)

	env := &testEnv{
		accounts:  newFakeAccountStore(),
		employees: newFakeEmployeeStore(),
		cache:     newFakeCache(),
		mailer:    &fakeMailer{},
		tokens:    token.NewIssuer("test-secret", time.Hour),
	}
	env.employee = NewEmployeeService(env.employees, NewIDAllocator(env.employees, "EMP", 4), validator, 10, 100)
	env.account = NewAccountService(AccountServiceDeps{
		Accounts:      env.accounts,
		Employees:     env.employee,
		Hasher:        fakeHasher{},
		Tokens:        env.tokens,
		Cache:         env.cache,
		Mailer:        env.mailer,
		Validator:     validator,
		OTPExpiration: 15 * time.Minute,
	})
	return env
}
