package user

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const PasswordResetSecretLength = 64

// PasswordResetSecret is handed to the user once and is never stored.
type PasswordResetSecret string

func (s PasswordResetSecret) String() string {
	return "***"
}

// IsWellFormed reports whether the secret looks like one produced by
// a PasswordResetSecretGenerator (hex encoded, fixed length).
func (s PasswordResetSecret) IsWellFormed() bool {
	if len(s) != PasswordResetSecretLength {
		return false
	}
	_, err := hex.DecodeString(string(s))
	return err == nil
}

// Digest returns the only form of the secret that is persisted.
func (s PasswordResetSecret) Digest() PasswordResetTokenDigest {
	sum := sha256.Sum256([]byte(s))
	return PasswordResetTokenDigest(hex.EncodeToString(sum[:]))
}

type PasswordResetTokenDigest string

type PasswordResetTokenID int64

type PasswordResetToken struct {
	ID        PasswordResetTokenID
	UserID    ID
	Digest    PasswordResetTokenDigest
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}

// IsUsable reports whether the token can still be redeemed at the given moment.
func (t *PasswordResetToken) IsUsable(at time.Time) bool {
	return !t.Used && t.ExpiresAt.After(at)
}

type PasswordResetSecretGenerator interface {
	GenerateSecret() (PasswordResetSecret, error)
}
