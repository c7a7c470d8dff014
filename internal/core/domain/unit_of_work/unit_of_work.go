package uow

import (
	"context"
	"wonderchain/internal/core/domain/place"
	"wonderchain/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	Sessions() user.SessionRepository
	PasswordResetTokens() user.PasswordResetTokenRepository
	Places() place.Repository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
