package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Employment types accepted for Job.EmploymentType. The column is a closed
// enumeration, not free text.
const (
	EmploymentFullTime   = "Full-time"
	EmploymentPartTime   = "Part-time"
	EmploymentContract   = "Contract"
	EmploymentInternship = "Internship"
	EmploymentRemote     = "Remote"
)

// EmploymentTypes lists every accepted employment type.
var EmploymentTypes = []string{
	EmploymentFullTime,
	EmploymentPartTime,
	EmploymentContract,
	EmploymentInternship,
	EmploymentRemote,
}

// ValidEmploymentType reports whether t is one of the accepted employment types.
func ValidEmploymentType(t string) bool {
	for _, known := range EmploymentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// EditableJobInfo is the part of a job post that the owning employer may
// create and overwrite.
type EditableJobInfo struct {
	Title          string         `gorm:"type:text;not null" json:"job_title"`
	Description    string         `gorm:"type:text" json:"job_description"`
	Location       string         `gorm:"type:text" json:"location"`
	EmploymentType string         `gorm:"type:text;not null" json:"employment_type"`
	SalaryRange    string         `gorm:"type:text" json:"salary_range"`
	Deadline       *time.Time     `gorm:"type:timestamp" json:"application_deadline,omitempty"`
	ExternalURL    string         `gorm:"type:text" json:"job_url"`
	Tags           pq.StringArray `gorm:"type:text[]" json:"tags"`
}

// Job is the gorm model for a job posting owned by a company.
// Deleting a job soft-deletes the row so archived applications keep a valid
// reference.
type Job struct {
	ID        uint    `gorm:"primaryKey;autoIncrement;->" json:"job_id"`
	CompanyID uint    `gorm:"not null;index;<-:create" json:"company_id"`
	Company   Company `gorm:"foreignKey:CompanyID;references:ID" json:"-"`
	EditableJobInfo
	PostedDate time.Time      `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"posted_date"`
	Active     bool           `gorm:"not null;default:true" json:"is_active"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Applications []Application `gorm:"foreignKey:JobID" json:"-"`
}

// JobListing is a job row joined with its company name, the shape returned by
// the catalog endpoints.
type JobListing struct {
	Job         `gorm:"embedded"`
	CompanyName string `json:"company_name"`
}
