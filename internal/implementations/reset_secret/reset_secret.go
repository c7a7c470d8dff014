package resetsecret

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"wonderchain/internal/core/domain/user"
)

// secretBytes is the amount of entropy in a secret, hex encoding doubles it
// to user.PasswordResetSecretLength characters.
const secretBytes = user.PasswordResetSecretLength / 2

type Generator struct {
	random io.Reader
}

func NewGenerator() *Generator {
	return &Generator{random: rand.Reader}
}

func (g *Generator) GenerateSecret() (secret user.PasswordResetSecret, err error) {
	b := make([]byte, secretBytes)
	if _, err := io.ReadFull(g.random, b); err != nil {
		return secret, err
	}
	return user.PasswordResetSecret(hex.EncodeToString(b)), nil
}
