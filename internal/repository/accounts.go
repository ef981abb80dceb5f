package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `id, name, email, password_hash, role, is_active, created_at, updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	account := &domain.Account{}
	dst := []any{&account.ID, &account.Name, &account.Email, &account.PasswordHash, &account.Role, &account.IsActive, &account.CreatedAt, &account.UpdatedAt}
	if err := row.Scan(dst...); err != nil {
		return nil, translatePgError(err, domain.ErrAccountNotFound)
	}
	return account, nil
}

func (r *Repository) FindAccountByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

func (r *Repository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	return scanAccount(r.pool.QueryRow(ctx, query, email))
}

func (r *Repository) CreateAccount(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (name, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{account.Name, account.Email, account.PasswordHash, account.Role, account.IsActive}
	dst := []any{&account.ID, &account.CreatedAt, &account.UpdatedAt}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(dst...); err != nil {
		return translatePgError(err, domain.ErrAccountNotFound)
	}

	return nil
}

func (r *Repository) UpdateAccount(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET
			name = $1,
			password_hash = $2,
			role = $3,
			is_active = $4,
			updated_at = now()
		WHERE id = $5
		RETURNING email, created_at, updated_at
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{account.Name, account.PasswordHash, account.Role, account.IsActive, account.ID}
	dst := []any{&account.Email, &account.CreatedAt, &account.UpdatedAt}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(dst...); err != nil {
		return translatePgError(err, domain.ErrAccountNotFound)
	}

	return nil
}

func (r *Repository) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM accounts WHERE id = $1`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return translatePgError(err, domain.ErrAccountNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}
