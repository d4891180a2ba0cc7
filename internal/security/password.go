// Package security covers credential hashing and session token
// generation for the API server.
package security

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen is enforced wherever credentials are created.
const MinPasswordLen = 8

// sessionTokenBytes of entropy per token, before base64 encoding.
const sessionTokenBytes = 32

var ErrPasswordTooShort = errors.New("password is too short")

func HashPassword(pw string) (string, error) {
	if len(pw) < MinPasswordLen {
		return "", ErrPasswordTooShort
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// NewSessionToken returns an URL-safe random session token.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
