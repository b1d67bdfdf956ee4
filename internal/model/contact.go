package model

// Contact is an employer-curated recruiter contact. Readable by everyone,
// writable only by the owning company. No dependents, so deletion is plain.
type Contact struct {
	ID        uint    `gorm:"primaryKey;autoIncrement;->" json:"contact_id"`
	CompanyID uint    `gorm:"not null;index;<-:create" json:"company_id"`
	Company   Company `gorm:"foreignKey:CompanyID;references:ID" json:"-"`

	Name  string  `gorm:"type:text;not null" json:"contact_name"`
	Title *string `gorm:"type:text" json:"job_title,omitempty"`
	Email string  `gorm:"type:text;not null" json:"email"`
	Phone *string `gorm:"type:text" json:"phone,omitempty"`
}

// ContactListing is a contact joined with its company name, the shape seekers
// browse when hunting recruiter emails.
type ContactListing struct {
	Contact     `gorm:"embedded"`
	CompanyName string `json:"company_name"`
}
