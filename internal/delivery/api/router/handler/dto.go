package handler

import (
	"strings"
	"time"
	"unicode"

	"donorhub/internal/domain/entity"
	"donorhub/internal/usecase"

	"github.com/google/uuid"
)

const birthDateLayout = "2006-01-02"

// RegisterRequest is the body of POST /users.
// Donor and company fields sit next to the common ones; personType picks which set is read.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email,max=255"`
	Password   string `json:"password" validate:"required,password"`
	Name       string `json:"name" validate:"required,max=255"`
	City       string `json:"city" validate:"required,max=100"`
	Region     string `json:"uf" validate:"required,len=2,alpha,uppercase"`
	PostalCode string `json:"zipcode" validate:"omitempty,max=9"`
	PersonType string `json:"personType" validate:"omitempty,oneof=DONOR COMPANY"`

	CPF       string `json:"cpf" validate:"required_if=PersonType DONOR,omitempty,number,len=11"`
	BloodType string `json:"bloodType" validate:"required_if=PersonType DONOR,omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	BirthDate string `json:"birthDate" validate:"required_if=PersonType DONOR,omitempty,datetime=2006-01-02"`

	CNPJ            string `json:"cnpj" validate:"required_if=PersonType COMPANY,omitempty,number,len=14"`
	InstitutionName string `json:"institutionName" validate:"required_if=PersonType COMPANY,omitempty,max=255"`
	CNES            string `json:"cnes" validate:"required_if=PersonType COMPANY,omitempty,number,len=7"`
}

func (r *RegisterRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.City = strings.TrimSpace(r.City)
	r.Region = strings.TrimSpace(r.Region)
	r.PostalCode = strings.TrimSpace(r.PostalCode)
	r.CPF = digitsOnly(r.CPF)
	r.CNPJ = digitsOnly(r.CNPJ)
	r.CNES = strings.TrimSpace(r.CNES)
	r.InstitutionName = strings.TrimSpace(r.InstitutionName)
}

// toInput assumes the request already passed validation.
func (r *RegisterRequest) toInput() *usecase.RegisterInput {
	input := &usecase.RegisterInput{
		Email:      r.Email,
		Password:   r.Password,
		Name:       r.Name,
		City:       r.City,
		Region:     r.Region,
		PostalCode: r.PostalCode,
		Role:       entity.Role(r.PersonType),
	}

	switch input.Role {
	case entity.RoleDonor:
		birthDate, _ := time.Parse(birthDateLayout, r.BirthDate)
		input.Profile = usecase.DonorDetails{
			TaxID:     r.CPF,
			BloodType: entity.BloodType(r.BloodType),
			BirthDate: birthDate,
		}
	case entity.RoleCompany:
		input.Profile = usecase.CompanyDetails{
			TaxID:           r.CNPJ,
			InstitutionName: r.InstitutionName,
			FacilityCode:    r.CNES,
		}
	}

	return input
}

// AuthenticateRequest is the body of POST /users/authenticate.
type AuthenticateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest is the body of PUT /users/change-password/:id.
type ChangePasswordRequest struct {
	Old string `json:"old" validate:"required"`
	New string `json:"new" validate:"required,password"`
}

// UpdateUserRequest is the body of PUT /users/:id. Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=255"`
	City       *string `json:"city" validate:"omitempty,min=1,max=100"`
	Region     *string `json:"uf" validate:"omitempty,len=2,alpha,uppercase"`
	PostalCode *string `json:"zipcode" validate:"omitempty,max=9"`
}

func (r *UpdateUserRequest) toFields() entity.UserFields {
	return entity.UserFields{
		Name:       r.Name,
		City:       r.City,
		Region:     r.Region,
		PostalCode: r.PostalCode,
	}
}

// SaveDonorProfileRequest is the body of PUT /users/:id/profile for donors.
type SaveDonorProfileRequest struct {
	CPF       string `json:"cpf" validate:"required,number,len=11"`
	BloodType string `json:"bloodType" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	BirthDate string `json:"birthDate" validate:"required,datetime=2006-01-02"`
}

// SaveCompanyProfileRequest is the body of PUT /users/:id/profile for companies.
type SaveCompanyProfileRequest struct {
	CNPJ            string `json:"cnpj" validate:"required,number,len=14"`
	InstitutionName string `json:"institutionName" validate:"required,max=255"`
	CNES            string `json:"cnes" validate:"required,number,len=7"`
}

// SaveProfileRequest is decoded first to learn which profile body was sent.
type SaveProfileRequest struct {
	PersonType string `json:"personType" validate:"required,oneof=DONOR COMPANY"`

	SaveDonorProfileRequest   `validate:"-"`
	SaveCompanyProfileRequest `validate:"-"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// AvatarResponse is returned after a successful upload.
type AvatarResponse struct {
	UserID     uuid.UUID        `json:"userId"`
	AvatarPath string           `json:"avatarPath"`
	User       *entity.UserView `json:"user"`
}

// digitsOnly strips punctuation so "123.456.789-00" and "12345678900" are the same tax id.
func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}

		return -1
	}, s)
}
