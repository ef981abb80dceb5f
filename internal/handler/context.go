package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/hrms-dev/hrms/backend/internal/token"
)

type ContextKey string

var (
	RequestIDCtxKey ContextKey = "requestID"
	AccountCtxKey   ContextKey = "account"
	SessionCtxKey   ContextKey = "session"
	EmployeeIDCtx   ContextKey = "employeeID"
	AccountIDCtx    ContextKey = "accountID"
)

func accountFromContext(ctx context.Context) *domain.Account {
	return ctx.Value(AccountCtxKey).(*domain.Account)
}

func sessionFromContext(ctx context.Context) *token.Session {
	return ctx.Value(SessionCtxKey).(*token.Session)
}

func idFromContext(ctx context.Context, key ContextKey) uuid.UUID {
	return ctx.Value(key).(uuid.UUID)
}
