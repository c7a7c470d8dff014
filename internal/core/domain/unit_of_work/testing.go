package uow

import (
	"context"
	"fmt"
	"wonderchain/internal/core/domain/place"
	"wonderchain/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	UserRepository               *user.FakeUserRepository
	SessionRepository            *user.FakeSessionRepository
	PasswordResetTokenRepository *user.FakePasswordResetTokenRepository
	PlaceRepository              *place.FakeRepository
	WasRollbackCalled            bool
	WasCommitCalled              bool
	CommitError                  error
}

func NewFakeUnitOfWorkContext(
	userRepository *user.FakeUserRepository,
	sessionRepository *user.FakeSessionRepository,
	passwordResetTokenRepository *user.FakePasswordResetTokenRepository,
	placeRepository *place.FakeRepository,
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		UserRepository:               userRepository,
		SessionRepository:            sessionRepository,
		PasswordResetTokenRepository: passwordResetTokenRepository,
		PlaceRepository:              placeRepository,
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	if c.CommitError != nil {
		return c.CommitError
	}
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) Sessions() user.SessionRepository {
	return c.SessionRepository
}

func (c *FakeUnitOfWorkContext) PasswordResetTokens() user.PasswordResetTokenRepository {
	return c.PasswordResetTokenRepository
}

func (c *FakeUnitOfWorkContext) Places() place.Repository {
	return c.PlaceRepository
}

type FakeUnitOfWork struct {
	Context     *FakeUnitOfWorkContext
	ReturnError bool
	BeginCount  int
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	userRepository := user.NewFakeUserRepository()
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			userRepository,
			user.NewFakeSessionRepository(userRepository),
			user.NewFakePasswordResetTokenRepository(),
			place.NewFakeRepository(),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.ReturnError {
		return nil, fmt.Errorf("could not begin unit of work")
	}
	u.BeginCount++
	return u.Context, nil
}
