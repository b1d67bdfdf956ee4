package model

import (
	"time"

	"github.com/google/uuid"
)

// Role values stored in User.Role. Role is fixed at registration and never
// changes afterwards.
const (
	RoleSeeker   = "job_seeker"
	RoleEmployer = "employer"
	RoleAdmin    = "admin"
)

// EditableUserInfo is the part of a user profile that profile edits may
// overwrite. Email, role and credential live outside of it on purpose.
type EditableUserInfo struct {
	FullName string  `gorm:"type:text" json:"full_name"`
	Phone    *string `gorm:"type:text" json:"phone,omitempty"`
	Location *string `gorm:"type:text" json:"location,omitempty"`
	Sex      *string `gorm:"type:text" json:"sex,omitempty"`
}

// User is the gorm model for both job seekers and employers.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"user_id"`
	Email    string    `gorm:"type:text;uniqueIndex;not null;<-:create" json:"email"`
	Password string    `gorm:"type:text;not null" json:"-"`
	Role     string    `gorm:"type:text;not null;<-:create" json:"user_type"`
	EditableUserInfo
	Active    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
