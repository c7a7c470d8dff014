package user

import (
	"context"
	"time"
	c "wonderchain/internal/core/domain/common"
)

type CreateUserInput struct {
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
	SetLastLoginAt(ctx context.Context, id ID, at time.Time) error
	// LockByID holds the user row until the surrounding transaction ends.
	LockByID(ctx context.Context, id ID) error
}

type CreateSessionInput struct {
	UserID    ID
	Token     SessionToken
	CreatedAt time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) error
	GetUserByToken(ctx context.Context, token SessionToken) (User, error)
	Delete(ctx context.Context, token SessionToken) (userID ID, err error)
	DeleteByUserID(ctx context.Context, userID ID) (count int64, err error)
}

type SessionTokenGenerator interface {
	GenerateToken() SessionToken
}

type CreatePasswordResetTokenInput struct {
	UserID    ID
	Digest    PasswordResetTokenDigest
	CreatedAt time.Time
	ExpiresAt time.Time
}

type PasswordResetTokenRepository interface {
	Create(ctx context.Context, input CreatePasswordResetTokenInput) (PasswordResetToken, error)
	// InvalidateActive marks every unused token of the user that has not
	// expired at the given moment as used.
	InvalidateActive(ctx context.Context, userID ID, at time.Time) (count int64, err error)
	// GetActiveByDigest returns ErrInvalidPasswordResetToken if there is no
	// unused token with the digest that is still valid at the given moment.
	GetActiveByDigest(ctx context.Context, digest PasswordResetTokenDigest, at time.Time) (PasswordResetToken, error)
	// GetActiveByDigestForUpdate behaves as GetActiveByDigest and locks the
	// row until the end of the transaction.
	GetActiveByDigestForUpdate(
		ctx context.Context,
		digest PasswordResetTokenDigest,
		at time.Time,
	) (PasswordResetToken, error)
	// MarkUsed returns ErrInvalidPasswordResetToken if the token is already used.
	MarkUsed(ctx context.Context, id PasswordResetTokenID) error
}
