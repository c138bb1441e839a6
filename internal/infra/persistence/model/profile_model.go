package model

import (
	"time"

	"github.com/google/uuid"
)

// DonorProfileModel mirrors the 'donor_profiles' table. UserID references users.id (UUID).
type DonorProfileModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	TaxID     string    `gorm:"column:tax_id;type:varchar(11);not null"`
	BloodType string    `gorm:"type:varchar(3);not null"`
	BirthDate time.Time `gorm:"type:date;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (DonorProfileModel) TableName() string {
	return "donor_profiles"
}

// CompanyProfileModel mirrors the 'company_profiles' table. UserID references users.id (UUID).
type CompanyProfileModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	TaxID           string    `gorm:"column:tax_id;type:varchar(14);uniqueIndex;not null"`
	InstitutionName string    `gorm:"type:varchar(255);not null"`
	FacilityCode    string    `gorm:"type:varchar(7);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (CompanyProfileModel) TableName() string {
	return "company_profiles"
}

// All lists every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&DonorProfileModel{},
		&CompanyProfileModel{},
	}
}
