package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
	"time"
	c "wonderchain/internal/core/domain/common"
)

type FakePasswordHasher struct {
	HashedCount int
}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	h.HashedCount++
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeSessionTokenGenerator struct {
	Token string
}

func NewFakeSessionTokenGenerator(token string) *FakeSessionTokenGenerator {
	return &FakeSessionTokenGenerator{Token: token}
}

func (g *FakeSessionTokenGenerator) GenerateToken() SessionToken {
	return SessionToken(g.Token)
}

type FakePasswordResetSecretGenerator struct {
	Secrets     []PasswordResetSecret
	ReturnError bool
	generated   int
}

// NewFakePasswordResetSecretGenerator returns the given secrets in order,
// repeating the last one when exhausted.
func NewFakePasswordResetSecretGenerator(secrets ...string) *FakePasswordResetSecretGenerator {
	g := &FakePasswordResetSecretGenerator{}
	for _, s := range secrets {
		g.Secrets = append(g.Secrets, PasswordResetSecret(s))
	}
	return g
}

func (g *FakePasswordResetSecretGenerator) GenerateSecret() (s PasswordResetSecret, err error) {
	if g.ReturnError || len(g.Secrets) == 0 {
		return s, fmt.Errorf("could not generate password reset secret")
	}
	ix := g.generated
	if ix >= len(g.Secrets) {
		ix = len(g.Secrets) - 1
	}
	g.generated++
	return g.Secrets[ix], nil
}

type FakeUserRepository struct {
	Users       []User
	LockedIDs   []ID
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	u = User{
		ID:           maxID + 1,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by email")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password for user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetLastLoginAt(ctx context.Context, id ID, at time.Time) error {
	if r.ReturnError {
		return fmt.Errorf("could not set last login time for user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].LastLoginAt = c.NewOptional(at, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) LockByID(ctx context.Context, id ID) error {
	if r.ReturnError {
		return fmt.Errorf("could not lock user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.LockedIDs = append(r.LockedIDs, id)
	for _, u := range r.Users {
		if u.ID == id {
			return nil
		}
	}
	return ErrUserDoesNotExist
}

type FakeSessionRepository struct {
	UserIdByToken  map[SessionToken]ID
	UserRepository UserRepository
	ReturnError    bool
	lock           sync.Mutex
}

func NewFakeSessionRepository(userRepository UserRepository) *FakeSessionRepository {
	return &FakeSessionRepository{
		UserIdByToken:  make(map[SessionToken]ID),
		UserRepository: userRepository,
	}
}

func (r *FakeSessionRepository) Create(ctx context.Context, input CreateSessionInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not create session for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.UserIdByToken[input.Token] = input.UserID
	return nil
}

func (r *FakeSessionRepository) GetUserByToken(ctx context.Context, token SessionToken) (u User, err error) {
	r.lock.Lock()
	userId, ok := r.UserIdByToken[token]
	r.lock.Unlock()
	if !ok {
		return u, ErrUserDoesNotExist
	}
	return r.UserRepository.GetByID(ctx, userId)
}

func (r *FakeSessionRepository) Delete(ctx context.Context, token SessionToken) (ID, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	userID, ok := r.UserIdByToken[token]
	if !ok {
		return ID(0), ErrSessionDoesNotExist
	}
	delete(r.UserIdByToken, token)
	return userID, nil
}

func (r *FakeSessionRepository) DeleteByUserID(ctx context.Context, userID ID) (count int64, err error) {
	if r.ReturnError {
		return count, fmt.Errorf("could not delete sessions of user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for token, id := range r.UserIdByToken {
		if id == userID {
			delete(r.UserIdByToken, token)
			count++
		}
	}
	return count, nil
}

type FakePasswordResetTokenRepository struct {
	Tokens      []PasswordResetToken
	ReturnError bool
	// MarkUsedError is returned by MarkUsed when set.
	MarkUsedError error
	lock          sync.Mutex
}

func NewFakePasswordResetTokenRepository() *FakePasswordResetTokenRepository {
	return &FakePasswordResetTokenRepository{}
}

func (r *FakePasswordResetTokenRepository) Create(
	ctx context.Context,
	input CreatePasswordResetTokenInput,
) (t PasswordResetToken, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not create password reset token for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	t = PasswordResetToken{
		ID:        PasswordResetTokenID(len(r.Tokens) + 1),
		UserID:    input.UserID,
		Digest:    input.Digest,
		CreatedAt: input.CreatedAt,
		ExpiresAt: input.ExpiresAt,
	}
	r.Tokens = append(r.Tokens, t)
	return t, nil
}

func (r *FakePasswordResetTokenRepository) InvalidateActive(
	ctx context.Context,
	userID ID,
	at time.Time,
) (count int64, err error) {
	if r.ReturnError {
		return count, fmt.Errorf("could not invalidate password reset tokens of user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, t := range r.Tokens {
		if t.UserID == userID && t.IsUsable(at) {
			r.Tokens[ix].Used = true
			count++
		}
	}
	return count, nil
}

func (r *FakePasswordResetTokenRepository) GetActiveByDigest(
	ctx context.Context,
	digest PasswordResetTokenDigest,
	at time.Time,
) (t PasswordResetToken, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not get password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, t := range r.Tokens {
		if t.Digest == digest && t.IsUsable(at) {
			return t, nil
		}
	}
	return t, ErrInvalidPasswordResetToken
}

func (r *FakePasswordResetTokenRepository) GetActiveByDigestForUpdate(
	ctx context.Context,
	digest PasswordResetTokenDigest,
	at time.Time,
) (PasswordResetToken, error) {
	return r.GetActiveByDigest(ctx, digest, at)
}

func (r *FakePasswordResetTokenRepository) MarkUsed(ctx context.Context, id PasswordResetTokenID) error {
	if r.MarkUsedError != nil {
		return r.MarkUsedError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, t := range r.Tokens {
		if t.ID == id {
			if t.Used {
				return ErrInvalidPasswordResetToken
			}
			r.Tokens[ix].Used = true
			return nil
		}
	}
	return ErrInvalidPasswordResetToken
}

// UsableCount returns the number of tokens of the user that can be redeemed at the given moment.
func (r *FakePasswordResetTokenRepository) UsableCount(userID ID, at time.Time) int {
	r.lock.Lock()
	defer r.lock.Unlock()
	count := 0
	for _, t := range r.Tokens {
		if t.UserID == userID && t.IsUsable(at) {
			count++
		}
	}
	return count
}
