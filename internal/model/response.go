package model

// LoginResponse is the payload returned on successful login. Company is
// populated only for employer accounts.
type LoginResponse struct {
	User        User     `json:"user"`
	Company     *Company `json:"company,omitempty"`
	AccessToken string   `json:"access_token"`
}

// RegisterResponse is the payload returned on successful seeker registration.
type RegisterResponse struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

// RegisterEmployerResponse is the payload returned on successful employer
// registration. Both IDs come out of a single transaction.
type RegisterEmployerResponse struct {
	UserID      string `json:"user_id"`
	CompanyID   uint   `json:"company_id"`
	AccessToken string `json:"access_token"`
}
