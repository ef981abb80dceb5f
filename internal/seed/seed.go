// Package seed fills a development database with demo accounts and employees.
package seed

import (
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/hrms-dev/hrms/backend/internal/service"
	"github.com/hrms-dev/hrms/backend/internal/utils"
	"github.com/shopspring/decimal"
)

//go:embed data/sample_employees.csv
var sampleEmployeesCSV string

var requiredHeaders = []string{
	"firstName", "lastName", "email", "phone", "department", "position", "salary", "hireDate", "status",
}

type Importer interface {
	Import(ctx context.Context, employee *domain.Employee) error
}

type Registrar interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error)
}

// RandomEmployees imports n generated employees and returns how many were stored.
func RandomEmployees(ctx context.Context, importer Importer, n int, emailDomain string) int {
	inserted := 0
	for i := 0; i < n; i++ {
		employee := utils.GenerateRandomEmployee(emailDomain)
		if err := importer.Import(ctx, employee); err != nil {
			slog.Error("failed to insert employee", "email", employee.Email, "error", err)
			continue
		}
		inserted++
	}
	return inserted
}

// SampleEmployees imports the bundled sample employees, or the CSV read from r when
// r is not nil.
func SampleEmployees(ctx context.Context, importer Importer, r io.Reader) (int, error) {
	if r == nil {
		r = strings.NewReader(sampleEmployeesCSV)
	}

	employees, err := ParseEmployeesCSV(r)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, employee := range employees {
		if err := importer.Import(ctx, employee); err != nil {
			slog.Error("failed to insert employee", "email", employee.Email, "error", err)
			continue
		}
		slog.Info("inserted employee", "employee_id", employee.EmployeeID, "name", employee.FirstName+" "+employee.LastName)
		inserted++
	}
	return inserted, nil
}

// ParseEmployeesCSV reads employees from a CSV with a header row. Address and
// emergency contact columns are optional.
func ParseEmployeesCSV(r io.Reader) ([]*domain.Employee, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for _, header := range requiredHeaders {
		if !slices.Contains(headers, header) {
			return nil, fmt.Errorf("missing column %q", header)
		}
	}

	var employees []*domain.Employee
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		record := make(map[string]string, len(headers))
		for i, value := range row {
			record[headers[i]] = strings.TrimSpace(value)
		}

		employee, err := employeeFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		employees = append(employees, employee)
	}

	return employees, nil
}

func employeeFromRecord(record map[string]string) (*domain.Employee, error) {
	salary, err := decimal.NewFromString(record["salary"])
	if err != nil {
		return nil, fmt.Errorf("invalid salary %q", record["salary"])
	}

	hireDate, err := time.Parse(time.DateOnly, record["hireDate"])
	if err != nil {
		return nil, fmt.Errorf("invalid hireDate %q", record["hireDate"])
	}

	employee := &domain.Employee{
		FirstName:  record["firstName"],
		LastName:   record["lastName"],
		Email:      record["email"],
		Phone:      record["phone"],
		Department: domain.Department(record["department"]),
		Position:   record["position"],
		Salary:     salary,
		HireDate:   hireDate,
		Status:     domain.EmployeeStatus(record["status"]),
	}

	if record["street"] != "" || record["city"] != "" {
		employee.Address = &domain.Address{
			Street:  record["street"],
			City:    record["city"],
			State:   record["state"],
			ZipCode: record["zipCode"],
			Country: record["country"],
		}
	}
	if record["emergencyName"] != "" {
		employee.EmergencyContact = &domain.EmergencyContact{
			Name:         record["emergencyName"],
			Relationship: record["emergencyRelationship"],
			Phone:        record["emergencyPhone"],
		}
	}

	return employee, nil
}

// DemoAccounts registers the hr and employee logins used for manual testing. Accounts
// that already exist are skipped.
func DemoAccounts(ctx context.Context, registrar Registrar, emailDomain string) int {
	salary := decimal.NewFromInt(60000)
	demo := []service.RegisterInput{
		{Name: "HR Manager", Email: "hr@" + emailDomain, Password: "hr1234", Role: domain.RoleHR},
		{
			Name:     "Demo Employee",
			Email:    "employee@" + emailDomain,
			Password: "employee123",
			Role:     domain.RoleEmployee,
			EmployeeData: &service.EmployeeInput{
				Phone:      "+1234567000",
				Department: domain.DepartmentOperations,
				Position:   "Operations Coordinator",
				Salary:     &salary,
			},
		},
	}

	created := 0
	for _, in := range demo {
		if _, err := registrar.Register(ctx, in); err != nil {
			if errors.Is(err, domain.ErrDuplicateAccount) {
				slog.Info("demo account already exists", "email", in.Email)
				continue
			}
			slog.Error("failed to register demo account", "email", in.Email, "error", err)
			continue
		}
		created++
	}
	return created
}
