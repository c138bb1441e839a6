// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"io"
	"strings"

	"donorhub/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

// scrypt cost parameters. Changing them invalidates every stored record.
const (
	scryptN       = 16384
	scryptR       = 8
	scryptP       = 1
	scryptKeyLen  = 64
	scryptSaltLen = 16

	recordSeparator = ":"
)

// scryptHasher implements PasswordHasher with scrypt.
// Records have the form "<saltHex>:<derivedKeyHex>"; the hex salt string itself is the scrypt salt.
type scryptHasher struct {
	random io.Reader
}

// NewScryptHasher is the constructor for scryptHasher.
func NewScryptHasher() service.PasswordHasher {
	return &scryptHasher{random: rand.Reader}
}

// Hash derives a fresh salted record for the password.
func (h *scryptHasher) Hash(password string) (string, error) {
	saltBytes := make([]byte, scryptSaltLen)
	if _, err := io.ReadFull(h.random, saltBytes); err != nil {
		return "", errors.Wrap(err, "failed to generate salt")
	}
	salt := hex.EncodeToString(saltBytes)

	derived, err := deriveKey(password, salt)
	if err != nil {
		return "", err
	}

	return salt + recordSeparator + hex.EncodeToString(derived), nil
}

// Check recomputes the key with the record's salt and compares in constant time.
func (h *scryptHasher) Check(password, record string) bool {
	salt, expectedHex, found := strings.Cut(record, recordSeparator)
	if !found || salt == "" || expectedHex == "" {
		return false
	}

	expected, err := hex.DecodeString(expectedHex)
	if err != nil || len(expected) != scryptKeyLen {
		return false
	}

	derived, err := deriveKey(password, salt)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(derived, expected) == 1
}

func deriveKey(password, salt string) ([]byte, error) {
	derived, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive scrypt key")
	}

	return derived, nil
}
