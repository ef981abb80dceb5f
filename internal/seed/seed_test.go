package seed

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/hrms-dev/hrms/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImporter struct {
	imported []*domain.Employee
	failOn   string
}

func (f *fakeImporter) Import(_ context.Context, employee *domain.Employee) error {
	if employee.Email == f.failOn {
		return &domain.DuplicateKeyError{Entity: "Employee", Field: "email"}
	}
	employee.EmployeeID = fmt.Sprintf("EMP%04d", len(f.imported)+1)
	f.imported = append(f.imported, employee)
	return nil
}

type fakeRegistrar struct {
	registered []service.RegisterInput
	existing   string
}

func (f *fakeRegistrar) Register(_ context.Context, in service.RegisterInput) (*service.AuthResult, error) {
	if in.Email == f.existing {
		return nil, domain.ErrDuplicateAccount
	}
	f.registered = append(f.registered, in)
	return &service.AuthResult{}, nil
}

func TestParseEmployeesCSV_Bundled(t *testing.T) {
	employees, err := ParseEmployeesCSV(strings.NewReader(sampleEmployeesCSV))
	require.NoError(t, err)
	require.Len(t, employees, 10)

	first := employees[0]
	assert.Equal(t, "John", first.FirstName)
	assert.Equal(t, "Smith", first.LastName)
	assert.Equal(t, domain.DepartmentIT, first.Department)
	assert.Equal(t, "75000", first.Salary.String())
	assert.Equal(t, "2022-01-15", first.HireDate.Format("2006-01-02"))
	require.NotNil(t, first.Address)
	assert.Equal(t, "New York", first.Address.City)
	require.NotNil(t, first.EmergencyContact)
	assert.Equal(t, "Spouse", first.EmergencyContact.Relationship)

	assert.Equal(t, domain.EmployeeStatusInactive, employees[6].Status)
}

func TestParseEmployeesCSV_Errors(t *testing.T) {
	_, err := ParseEmployeesCSV(strings.NewReader("firstName,lastName\nJohn,Smith\n"))
	assert.ErrorContains(t, err, `missing column "email"`)

	header := "firstName,lastName,email,phone,department,position,salary,hireDate,status\n"
	_, err = ParseEmployeesCSV(strings.NewReader(header + "John,Smith,j@company.com,1,IT,Dev,lots,2022-01-15,Active\n"))
	assert.ErrorContains(t, err, "line 2: invalid salary")

	_, err = ParseEmployeesCSV(strings.NewReader(header + "John,Smith,j@company.com,1,IT,Dev,100,15/01/2022,Active\n"))
	assert.ErrorContains(t, err, "invalid hireDate")
}

func TestParseEmployeesCSV_OptionalColumns(t *testing.T) {
	employees, err := ParseEmployeesCSV(strings.NewReader(
		"firstName,lastName,email,phone,department,position,salary,hireDate,status\n" +
			"Ann,Lee,ann@company.com,555,Sales,Rep,41000.50,2024-02-01,\n",
	))
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Nil(t, employees[0].Address)
	assert.Nil(t, employees[0].EmergencyContact)
	assert.Empty(t, employees[0].Status)
	assert.Equal(t, "41000.5", employees[0].Salary.String())
}

func TestSampleEmployees(t *testing.T) {
	importer := &fakeImporter{failOn: "kevin.lee@company.com"}

	inserted, err := SampleEmployees(context.Background(), importer, nil)
	require.NoError(t, err)
	assert.Equal(t, 9, inserted)
	assert.Len(t, importer.imported, 9)
}

func TestRandomEmployees(t *testing.T) {
	importer := &fakeImporter{}

	inserted := RandomEmployees(context.Background(), importer, 5, "example.org")
	assert.Equal(t, 5, inserted)
	for _, employee := range importer.imported {
		assert.True(t, strings.HasSuffix(employee.Email, "@example.org"))
		assert.NotEmpty(t, employee.FirstName)
	}
}

func TestDemoAccounts(t *testing.T) {
	registrar := &fakeRegistrar{existing: "hr@hrms.com"}

	created := DemoAccounts(context.Background(), registrar, "hrms.com")
	assert.Equal(t, 1, created)
	require.Len(t, registrar.registered, 1)
	assert.Equal(t, "employee@hrms.com", registrar.registered[0].Email)
	assert.NotNil(t, registrar.registered[0].EmployeeData)
}
