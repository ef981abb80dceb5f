package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// salary is sent to the front end as a plain JSON number
	decimal.MarshalJSONWithoutQuotes = true
}

type Department string

const (
	DepartmentIT         Department = "IT"
	DepartmentHR         Department = "HR"
	DepartmentFinance    Department = "Finance"
	DepartmentMarketing  Department = "Marketing"
	DepartmentOperations Department = "Operations"
	DepartmentSales      Department = "Sales"
)

var Departments = []Department{
	DepartmentIT,
	DepartmentHR,
	DepartmentFinance,
	DepartmentMarketing,
	DepartmentOperations,
	DepartmentSales,
}

type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "Active"
	EmployeeStatusInactive   EmployeeStatus = "Inactive"
	EmployeeStatusTerminated EmployeeStatus = "Terminated"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

type Employee struct {
	ID               uuid.UUID         `json:"id"`
	EmployeeID       string            `json:"employeeId" validate:"required"`
	FirstName        string            `json:"firstName" validate:"required"`
	LastName         string            `json:"lastName" validate:"required"`
	Email            string            `json:"email" validate:"required,email"`
	Phone            string            `json:"phone" validate:"required"`
	Department       Department        `json:"department" validate:"required,oneof=IT HR Finance Marketing Operations Sales"`
	Position         string            `json:"position" validate:"required"`
	Salary           decimal.Decimal   `json:"salary" validate:"gte=0"`
	HireDate         time.Time         `json:"hireDate" validate:"required"`
	Status           EmployeeStatus    `json:"status" validate:"required,oneof=Active Inactive Terminated"`
	Address          *Address          `json:"address,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// EmployeeFilter is the store-level listing query. Offset and Limit are already
// resolved from the page number.
type EmployeeFilter struct {
	Search     string
	Department Department
	Status     EmployeeStatus
	Limit      uint64
	Offset     uint64
}

type DepartmentCount struct {
	Department Department `json:"_id"`
	Count      int64      `json:"count"`
}

type EmployeeStats struct {
	TotalEmployees      int64             `json:"totalEmployees"`
	ActiveEmployees     int64             `json:"activeEmployees"`
	InactiveEmployees   int64             `json:"inactiveEmployees"`
	TerminatedEmployees int64             `json:"terminatedEmployees"`
	DepartmentStats     []DepartmentCount `json:"departmentStats"`
}
