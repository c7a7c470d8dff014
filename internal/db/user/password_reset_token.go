package user

import (
	"context"
	"errors"
	"time"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/domain/user"
	"wonderchain/internal/db"

	"github.com/jackc/pgx/v4"
)

const TOKEN_HASH_CONSTRAINT_NAME = "password_reset_token_hash_idx"

var ErrDuplicateTokenDigest = errors.New("password reset token digest already exists")

const tokenColumns = `id, user_id, token_hash, created_at, expires_at, used`

type PgxPasswordResetTokenRepository struct {
	db db.DBTX
}

func NewPgxPasswordResetTokenRepository(conn db.DBTX) *PgxPasswordResetTokenRepository {
	if conn == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxPasswordResetTokenRepository{db: conn}
}

func (r *PgxPasswordResetTokenRepository) Create(
	ctx context.Context,
	input user.CreatePasswordResetTokenInput,
) (t user.PasswordResetToken, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO password_reset_token (user_id, token_hash, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING `+tokenColumns,
		int64(input.UserID),
		string(input.Digest),
		input.CreatedAt,
		input.ExpiresAt,
	)
	t, err = scanToken(row)
	if db.IsUniqueViolation(err, TOKEN_HASH_CONSTRAINT_NAME) {
		return t, ErrDuplicateTokenDigest
	}
	return t, err
}

func (r *PgxPasswordResetTokenRepository) InvalidateActive(
	ctx context.Context,
	userID user.ID,
	at time.Time,
) (count int64, err error) {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE password_reset_token SET used = true
		WHERE user_id = $1 AND NOT used AND expires_at > $2`,
		int64(userID),
		at,
	)
	if err != nil {
		return count, err
	}
	return tag.RowsAffected(), nil
}

func (r *PgxPasswordResetTokenRepository) GetActiveByDigest(
	ctx context.Context,
	digest user.PasswordResetTokenDigest,
	at time.Time,
) (t user.PasswordResetToken, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+tokenColumns+` FROM password_reset_token
		WHERE token_hash = $1 AND NOT used AND expires_at > $2`,
		string(digest),
		at,
	)
	return r.get(row)
}

func (r *PgxPasswordResetTokenRepository) GetActiveByDigestForUpdate(
	ctx context.Context,
	digest user.PasswordResetTokenDigest,
	at time.Time,
) (t user.PasswordResetToken, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+tokenColumns+` FROM password_reset_token
		WHERE token_hash = $1 AND NOT used AND expires_at > $2
		FOR UPDATE`,
		string(digest),
		at,
	)
	return r.get(row)
}

func (r *PgxPasswordResetTokenRepository) get(row pgx.Row) (t user.PasswordResetToken, err error) {
	t, err = scanToken(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, user.ErrInvalidPasswordResetToken
	}
	return t, err
}

func (r *PgxPasswordResetTokenRepository) MarkUsed(ctx context.Context, id user.PasswordResetTokenID) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE password_reset_token SET used = true WHERE id = $1 AND NOT used`,
		int64(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrInvalidPasswordResetToken
	}
	return nil
}

func scanToken(row pgx.Row) (t user.PasswordResetToken, err error) {
	var (
		id     int64
		userID int64
		digest string
	)
	err = row.Scan(&id, &userID, &digest, &t.CreatedAt, &t.ExpiresAt, &t.Used)
	if err != nil {
		return t, err
	}
	t.ID = user.PasswordResetTokenID(id)
	t.UserID = user.ID(userID)
	t.Digest = user.PasswordResetTokenDigest(digest)
	return t, nil
}
