package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EditableCompanyInfo is the part of a company profile that the owning
// employer may overwrite.
type EditableCompanyInfo struct {
	Name          string  `gorm:"type:text;not null" json:"company_name"`
	Industry      *string `gorm:"type:text" json:"industry,omitempty"`
	Location      *string `gorm:"type:text" json:"location,omitempty"`
	Website       *string `gorm:"type:text" json:"website,omitempty"`
	Description   *string `gorm:"type:text" json:"description,omitempty"`
	EmployeeCount *int    `json:"no_of_employees,omitempty"`
}

// Company is the gorm model for an employer-owned company record.
// Exactly one company exists per employer user; it is created in the same
// transaction as the owning user during employer registration.
type Company struct {
	ID      uint      `gorm:"primaryKey;autoIncrement;->" json:"company_id"`
	OwnerID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;<-:create" json:"user_id"`
	Owner   User      `gorm:"foreignKey:OwnerID;references:ID" json:"-"`
	EditableCompanyInfo
	Verified  bool           `gorm:"not null;default:false" json:"verified"`
	CreatedAt time.Time      `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Jobs     []Job     `gorm:"foreignKey:CompanyID" json:"-"`
	Contacts []Contact `gorm:"foreignKey:CompanyID" json:"-"`
}
