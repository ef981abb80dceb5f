package service

import (
	"context"
	"fmt"
)

type EmployeeCounter interface {
	CountEmployees(ctx context.Context) (int64, error)
}

// IDAllocator derives the next human readable employee id from the current number of
// employees. Two concurrent calls can return the same id; the unique index on
// employee_id rejects the second insert.
type IDAllocator struct {
	counter EmployeeCounter
	prefix  string
	width   int
}

func NewIDAllocator(counter EmployeeCounter, prefix string, width int) *IDAllocator {
	return &IDAllocator{
		counter: counter,
		prefix:  prefix,
		width:   width,
	}
}

func (a *IDAllocator) Next(ctx context.Context) (string, error) {
	count, err := a.counter.CountEmployees(ctx)
	if err != nil {
		return "", fmt.Errorf("allocate employee id: %w", err)
	}

	return fmt.Sprintf("%s%0*d", a.prefix, a.width, count+1), nil
}
