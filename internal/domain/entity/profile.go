package entity

import (
	"time"

	"github.com/google/uuid"
)

// BloodType is one of the eight ABO/Rh combinations.
type BloodType string

const (
	BloodTypeAPositive  BloodType = "A+"
	BloodTypeANegative  BloodType = "A-"
	BloodTypeBPositive  BloodType = "B+"
	BloodTypeBNegative  BloodType = "B-"
	BloodTypeABPositive BloodType = "AB+"
	BloodTypeABNegative BloodType = "AB-"
	BloodTypeOPositive  BloodType = "O+"
	BloodTypeONegative  BloodType = "O-"
)

// IsValid checks if the BloodType is one of the known combinations.
func (b BloodType) IsValid() bool {
	switch b {
	case BloodTypeAPositive, BloodTypeANegative,
		BloodTypeBPositive, BloodTypeBNegative,
		BloodTypeABPositive, BloodTypeABNegative,
		BloodTypeOPositive, BloodTypeONegative:
		return true
	default:
		return false
	}
}

// DonorProfile holds data specific to the DONOR role.
type DonorProfile struct {
	ID        uuid.UUID
	UserID    uuid.UUID // Owner. Exactly one donor profile per user.
	TaxID     string    // 11-digit individual tax id.
	BloodType BloodType
	BirthDate time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyProfile holds data specific to the COMPANY role.
type CompanyProfile struct {
	ID              uuid.UUID
	UserID          uuid.UUID // Owner. Exactly one company profile per user.
	TaxID           string    // 14-digit company tax id, unique.
	InstitutionName string
	FacilityCode    string // 7-digit health facility registry code.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
