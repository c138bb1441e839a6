// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the canonical account record (the Identity). It holds the credential
// hash and the fields shared by every role; role-specific data lives in a profile.
type User struct {
	ID           uuid.UUID // Assigned by the store on creation.
	Email        string    // Unique across all users; used as the login identifier.
	PasswordHash string    // Opaque "salt:hash" credential record. Never leaves the service.
	Name         string    // Display or legal name.
	City         string    // City of residence or operation.
	Region       string    // Two-letter state code.
	PostalCode   string    // Optional postal code.
	Role         Role      // DONOR or COMPANY. May be empty if registration carried no role.
	AvatarPath   string    // Public path of the stored avatar image, empty when none.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserFields is a partial update of the mutable, non-credential fields of a User.
// Nil pointers leave the corresponding field untouched.
type UserFields struct {
	Name       *string
	City       *string
	Region     *string
	PostalCode *string
}

// IsEmpty reports whether no field is set.
func (f UserFields) IsEmpty() bool {
	return f.Name == nil && f.City == nil && f.Region == nil && f.PostalCode == nil
}

// Apply copies every set field onto the user.
func (f UserFields) Apply(u *User) {
	if f.Name != nil {
		u.Name = *f.Name
	}
	if f.City != nil {
		u.City = *f.City
	}
	if f.Region != nil {
		u.Region = *f.Region
	}
	if f.PostalCode != nil {
		u.PostalCode = *f.PostalCode
	}
}
