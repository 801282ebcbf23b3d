package share

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	tokenChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tokenLength = 32
	maxAttempts = 5
)

var ErrTokenSpaceExhausted = errors.New("failed to generate unique share token")

// TokenChecker reports whether a token is already attached to a record.
type TokenChecker interface {
	TokenExists(ctx context.Context, token string) (bool, error)
}

func generateToken() (string, error) {
	alphabet := big.NewInt(int64(len(tokenChars)))
	b := make([]byte, tokenLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabet)
		if err != nil {
			return "", err
		}
		b[i] = tokenChars[n.Int64()]
	}
	return string(b), nil
}

// ValidToken rejects anything that could not have been issued, so lookups
// for garbage never reach the store.
func ValidToken(token string) bool {
	if len(token) != tokenLength {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
