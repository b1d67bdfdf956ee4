package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile extension rows are owned exclusively by one seeker. Every query
// against them must filter by user_id; delete-by-id alone would let one user
// reach into another's profile.

// Skill is a named skill on a seeker profile, unique per user.
type Skill struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_skills_user_name;<-:create" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Name        string    `gorm:"type:text;not null;uniqueIndex:idx_skills_user_name" json:"skill_name"`
	Proficiency string    `gorm:"type:text" json:"proficiency_level"`
}

// Education is a schooling entry on a seeker profile.
type Education struct {
	ID                uint       `gorm:"primaryKey;autoIncrement;->" json:"id"`
	UserID            uuid.UUID  `gorm:"type:uuid;not null;index;<-:create" json:"user_id"`
	User              User       `gorm:"foreignKey:UserID;references:ID" json:"-"`
	School            string     `gorm:"type:text;not null" json:"school_name"`
	SchoolLocation    *string    `gorm:"type:text" json:"school_location,omitempty"`
	Degree            string     `gorm:"type:text;not null" json:"degree"`
	FieldOfStudy      *string    `gorm:"type:text" json:"field_of_study,omitempty"`
	StartDate         time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate           *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	CurrentlyStudying bool       `gorm:"not null;default:false" json:"currently_studying"`
	GPA               *string    `gorm:"type:text" json:"gpa,omitempty"`
	Honors            *string    `gorm:"type:text" json:"honors_awards,omitempty"`
}

// Certification is a certification entry on a seeker profile.
type Certification struct {
	ID               uint       `gorm:"primaryKey;autoIncrement;->" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index;<-:create" json:"user_id"`
	User             User       `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Name             string     `gorm:"type:text;not null" json:"certification_name"`
	IssuingAuthority *string    `gorm:"type:text" json:"issuing_authority,omitempty"`
	IssueDate        *time.Time `gorm:"type:date" json:"issue_date,omitempty"`
}

// Language is a spoken-language entry on a seeker profile, unique per user.
type Language struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_languages_user_name;<-:create" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Name        string    `gorm:"type:text;not null;uniqueIndex:idx_languages_user_name" json:"language_name"`
	Proficiency string    `gorm:"type:text" json:"proficiency_level"`
}
