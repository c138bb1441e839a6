// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
type PasswordHasher interface {
	// Hash derives an opaque credential record from a plaintext password.
	// Two calls with the same input yield different records.
	Hash(password string) (string, error)

	// Check reports whether the password matches the record.
	// A malformed or empty record is a mismatch, never an error.
	Check(password, record string) bool
}
