// Package model holds the GORM persistence models. They never leave the postgres package boundary as-is.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via gen_random_uuid().
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	City         string    `gorm:"type:varchar(255)"`
	Region       string    `gorm:"column:uf;type:varchar(2)"`
	PostalCode   *string   `gorm:"column:zipcode;type:varchar(20)"`
	Role         *string   `gorm:"column:person_type;type:varchar(20)"`
	AvatarPath   *string   `gorm:"type:varchar(512)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	DonorProfile   *DonorProfileModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CompanyProfile *CompanyProfileModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
