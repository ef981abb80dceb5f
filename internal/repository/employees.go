package repository

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, employee_id, first_name, last_name, email, phone, department, position, salary, hire_date, status, address, emergency_contact, created_at, updated_at`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func employeeDst(employee *domain.Employee) []any {
	return []any{
		&employee.ID, &employee.EmployeeID, &employee.FirstName, &employee.LastName, &employee.Email,
		&employee.Phone, &employee.Department, &employee.Position, &employee.Salary, &employee.HireDate,
		&employee.Status, &employee.Address, &employee.EmergencyContact, &employee.CreatedAt, &employee.UpdatedAt,
	}
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	employee := &domain.Employee{}
	if err := row.Scan(employeeDst(employee)...); err != nil {
		return nil, translatePgError(err, domain.ErrEmployeeNotFound)
	}
	return employee, nil
}

func (r *Repository) FindEmployeeByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	return scanEmployee(r.pool.QueryRow(ctx, query, id))
}

func (r *Repository) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	return scanEmployee(r.pool.QueryRow(ctx, query, email))
}

func (r *Repository) CountEmployees(ctx context.Context) (int64, error) {
	query := `SELECT count(*) FROM employees`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) CreateEmployee(ctx context.Context, employee *domain.Employee) error {
	query := `
		INSERT INTO employees (
			employee_id, first_name, last_name, email, phone, department, position,
			salary, hire_date, status, address, emergency_contact
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{
		employee.EmployeeID, employee.FirstName, employee.LastName, employee.Email, employee.Phone,
		employee.Department, employee.Position, employee.Salary, employee.HireDate, employee.Status,
		employee.Address, employee.EmergencyContact,
	}
	dst := []any{&employee.ID, &employee.CreatedAt, &employee.UpdatedAt}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(dst...); err != nil {
		return translatePgError(err, domain.ErrEmployeeNotFound)
	}

	return nil
}

// UpdateEmployee overwrites every mutable column. employee_id is never updated.
func (r *Repository) UpdateEmployee(ctx context.Context, employee *domain.Employee) error {
	query := `
		UPDATE employees
		SET
			first_name = $1,
			last_name = $2,
			email = $3,
			phone = $4,
			department = $5,
			position = $6,
			salary = $7,
			hire_date = $8,
			status = $9,
			address = $10,
			emergency_contact = $11,
			updated_at = now()
		WHERE id = $12
		RETURNING employee_id, created_at, updated_at
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{
		employee.FirstName, employee.LastName, employee.Email, employee.Phone, employee.Department,
		employee.Position, employee.Salary, employee.HireDate, employee.Status, employee.Address,
		employee.EmergencyContact, employee.ID,
	}
	dst := []any{&employee.EmployeeID, &employee.CreatedAt, &employee.UpdatedAt}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(dst...); err != nil {
		return translatePgError(err, domain.ErrEmployeeNotFound)
	}

	return nil
}

func (r *Repository) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM employees WHERE id = $1`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}

	return nil
}

func employeeConditions(filter domain.EmployeeFilter) sq.And {
	conds := sq.And{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"first_name": pattern},
			sq.ILike{"last_name": pattern},
			sq.ILike{"email": pattern},
			sq.ILike{"employee_id": pattern},
		})
	}
	if filter.Department != "" {
		conds = append(conds, sq.Eq{"department": filter.Department})
	}
	if filter.Status != "" {
		conds = append(conds, sq.Eq{"status": filter.Status})
	}

	return conds
}

// ListEmployees returns one page of matching employees, newest first, together with
// the total number of matches.
func (r *Repository) ListEmployees(ctx context.Context, filter domain.EmployeeFilter) ([]*domain.Employee, int64, error) {
	countBuilder := psql.Select("count(*)").From("employees")
	listBuilder := psql.Select(employeeColumns).From("employees").OrderBy("created_at DESC")
	if conds := employeeConditions(filter); len(conds) > 0 {
		countBuilder = countBuilder.Where(conds)
		listBuilder = listBuilder.Where(conds)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		listBuilder = listBuilder.Limit(filter.Limit).Offset(filter.Offset)
	}
	listQuery, listArgs, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	employees := []*domain.Employee{}
	for rows.Next() {
		employee := &domain.Employee{}
		if err := rows.Scan(employeeDst(employee)...); err != nil {
			return nil, 0, err
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *Repository) EmployeeStats(ctx context.Context) (*domain.EmployeeStats, error) {
	statusQuery := `
		SELECT
			count(*),
			count(*) FILTER (WHERE status = 'Active'),
			count(*) FILTER (WHERE status = 'Inactive'),
			count(*) FILTER (WHERE status = 'Terminated')
		FROM employees
	`
	departmentQuery := `
		SELECT department, count(*) AS count
		FROM employees
		GROUP BY department
		ORDER BY count DESC, department
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	stats := &domain.EmployeeStats{}
	dst := []any{&stats.TotalEmployees, &stats.ActiveEmployees, &stats.InactiveEmployees, &stats.TerminatedEmployees}
	if err := r.pool.QueryRow(ctx, statusQuery).Scan(dst...); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, departmentQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats.DepartmentStats = []domain.DepartmentCount{}
	for rows.Next() {
		var dc domain.DepartmentCount
		if err := rows.Scan(&dc.Department, &dc.Count); err != nil {
			return nil, err
		}
		stats.DepartmentStats = append(stats.DepartmentStats, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
