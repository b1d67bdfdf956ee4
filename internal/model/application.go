package model

import (
	"time"

	"github.com/google/uuid"
)

// Application status labels. StatusApplied is the state every new application
// starts in; StatusAccepted and StatusRejected are terminal. Employers may
// move an application to any of the five labels. StatusArchived is set
// internally when the job or its company is deleted and cannot be set through
// the API.
const (
	StatusApplied   = "Applied"
	StatusInReview  = "In Review"
	StatusInterview = "Interview Scheduled"
	StatusAccepted  = "Accepted"
	StatusRejected  = "Rejected"
	StatusArchived  = "Archived"
)

// SettableStatuses lists the status labels an employer may assign.
var SettableStatuses = []string{
	StatusApplied,
	StatusInReview,
	StatusInterview,
	StatusAccepted,
	StatusRejected,
}

// ValidStatus reports whether s is a label an employer may assign.
func ValidStatus(s string) bool {
	for _, known := range SettableStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Application records a seeker's intent against a job. The composite unique
// index on (user_id, job_id) is the correctness backstop for duplicate
// submissions; handler-level pre-checks only exist for a friendlier error.
type Application struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;->" json:"application_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_job;<-:create" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID;references:ID" json:"-"`
	JobID       uint      `gorm:"not null;uniqueIndex:idx_applications_user_job;<-:create" json:"job_id"`
	Job         Job       `gorm:"foreignKey:JobID;references:ID" json:"-"`
	SubmittedAt time.Time `gorm:"type:date;not null" json:"application_date"`
	Status      string    `gorm:"type:text;not null" json:"status"`
	ResumeRef   string    `gorm:"type:text" json:"resume"`
	CoverLetter string    `gorm:"type:text" json:"cover_letter"`
}

// UserApplication is an application joined with job and company columns, the
// shape a seeker sees on their dashboard.
type UserApplication struct {
	Application    `gorm:"embedded"`
	JobTitle       string `json:"job_title"`
	CompanyName    string `json:"company_name"`
	JobLocation    string `json:"location"`
	EmploymentType string `json:"employment_type"`
}

// CompanyApplication is an application joined with applicant contact columns,
// the shape an employer sees when triaging.
type CompanyApplication struct {
	Application    `gorm:"embedded"`
	JobTitle       string  `json:"job_title"`
	ApplicantName  string  `json:"applicant_name"`
	ApplicantEmail string  `json:"applicant_email"`
	ApplicantPhone *string `json:"applicant_phone,omitempty"`
}

// ApplicationStats is computed fresh from current rows on every request,
// never cached.
type ApplicationStats struct {
	Total       int64            `json:"total"`
	ThisMonth   int64            `json:"this_month"`
	SuccessRate float64          `json:"success_rate"`
	ByStatus    map[string]int64 `json:"by_status"`
}
