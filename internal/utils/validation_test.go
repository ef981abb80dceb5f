package utils

import (
	"testing"
	"time"

	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEmployee() *domain.Employee {
	return &domain.Employee{
		EmployeeID: "EMP0001",
		FirstName:  "John",
		LastName:   "Smith",
		Email:      "john.smith@company.com",
		Phone:      "+1234567890",
		Department: domain.DepartmentIT,
		Position:   "Senior Developer",
		Salary:     decimal.NewFromInt(75000),
		HireDate:   time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:     domain.EmployeeStatusActive,
	}
}

func TestValidator_ValidEmployee(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Struct(validEmployee()))
}

func TestValidator_ReportsEveryField(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	e := validEmployee()
	e.FirstName = ""
	e.Department = "Legal"
	e.Salary = decimal.NewFromInt(-1)

	err = v.Struct(e)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 3)
	assert.Contains(t, verr.Errors[0], "firstName")
	assert.Contains(t, verr.Errors[1], "department")
	assert.Contains(t, verr.Errors[2], "salary")
}

func TestValidator_InvalidStatus(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	e := validEmployee()
	e.Status = "Retired"

	var verr *domain.ValidationError
	require.ErrorAs(t, v.Struct(e), &verr)
	assert.Contains(t, verr.Error(), "status")
}

func TestSplitFullName(t *testing.T) {
	first, last := SplitFullName("  Jane Mary  Doe ")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Mary Doe", last)

	first, last = SplitFullName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Equal(t, "N/A", last)
}

func TestNormalizeEmployee(t *testing.T) {
	e := validEmployee()
	e.Email = "  John.Smith@Company.COM "
	e.FirstName = " John "

	NormalizeEmployee(e)

	assert.Equal(t, "john.smith@company.com", e.Email)
	assert.Equal(t, "John", e.FirstName)
}

func TestGenerateRandomEmployee_IsValid(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		e := GenerateRandomEmployee("company.com")
		e.EmployeeID = "EMP0001"
		assert.NoError(t, v.Struct(e))
	}
}

func TestBcryptHasher(t *testing.T) {
	h := &BcryptHasher{Cost: 4}

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, "secret123"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), domain.ErrInvalidCredentials)
}
