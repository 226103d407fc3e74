package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// publicTokenBytes is the entropy of a public receipt token (128 bits).
const publicTokenBytes = 16

// NewPublicToken returns a random URL-safe token, 22 characters long.
func NewPublicToken() (string, error) {
	b := make([]byte, publicTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate public token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
