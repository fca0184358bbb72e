package models

import "time"

type SystemAdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginRequest struct {
	InstitutionID string `json:"institutionId" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
}

// UserLoginRequest accepts either username+password credentials or a one-shot
// temporary login code; exactly one mode must be supplied.
type UserLoginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	LoginCode string `json:"loginCode"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type UserInfo struct {
	ID              string   `json:"id"`
	UserType        string   `json:"userType"`
	Name            string   `json:"name"`
	Email           string   `json:"email,omitempty"`
	InstitutionID   string   `json:"institutionId,omitempty"`
	InstitutionName string   `json:"institutionName,omitempty"`
	Authorities     []string `json:"authorities"`
}

type LoginResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         UserInfo  `json:"user"`
}

type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
