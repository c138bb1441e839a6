package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserView is the sanitized projection of a User handed to callers.
// It has no credential field, so serializing it can never leak the hash.
type UserView struct {
	ID         uuid.UUID    `json:"id"`
	Email      string       `json:"email"`
	Name       string       `json:"name"`
	City       string       `json:"city"`
	Region     string       `json:"uf"`
	PostalCode string       `json:"zipcode,omitempty"`
	Role       Role         `json:"personType"`
	AvatarPath string       `json:"avatarPath,omitempty"`
	Donor      *DonorView   `json:"donor,omitempty"`
	Company    *CompanyView `json:"company,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// DonorView is the outward shape of a DonorProfile.
type DonorView struct {
	ID        uuid.UUID `json:"id"`
	TaxID     string    `json:"cpf"`
	BloodType BloodType `json:"bloodType"`
	BirthDate string    `json:"birthDate"`
}

// CompanyView is the outward shape of a CompanyProfile.
type CompanyView struct {
	ID              uuid.UUID `json:"id"`
	TaxID           string    `json:"cnpj"`
	InstitutionName string    `json:"institutionName"`
	FacilityCode    string    `json:"cnes"`
}

// BirthDateLayout is the calendar-date layout used for birth dates on the wire.
const BirthDateLayout = "2006-01-02"

// View builds a fresh sanitized projection. The receiver is not modified.
func (u *User) View() *UserView {
	if u == nil {
		return nil
	}

	return &UserView{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		City:       u.City,
		Region:     u.Region,
		PostalCode: u.PostalCode,
		Role:       u.Role,
		AvatarPath: u.AvatarPath,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// WithDonor attaches a donor profile to the view.
func (v *UserView) WithDonor(p *DonorProfile) *UserView {
	if v == nil || p == nil {
		return v
	}
	v.Donor = &DonorView{
		ID:        p.ID,
		TaxID:     p.TaxID,
		BloodType: p.BloodType,
		BirthDate: p.BirthDate.Format(BirthDateLayout),
	}

	return v
}

// WithCompany attaches a company profile to the view.
func (v *UserView) WithCompany(p *CompanyProfile) *UserView {
	if v == nil || p == nil {
		return v
	}
	v.Company = &CompanyView{
		ID:              p.ID,
		TaxID:           p.TaxID,
		InstitutionName: p.InstitutionName,
		FacilityCode:    p.FacilityCode,
	}

	return v
}
