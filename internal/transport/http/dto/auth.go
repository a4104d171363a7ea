package dto

import "github.com/baechuer/peoplehub/internal/domain"

// Required auth fields are checked by the auth service; tags here only bound size.

type SignupRequest struct {
	Username        string `json:"username" validate:"omitempty,max=50"`
	Email           string `json:"email" validate:"omitempty,email,max=254"`
	Password        string `json:"password" validate:"omitempty,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"omitempty,max=72"`
}

type VerifyRequest struct {
	Email            string `json:"email" validate:"omitempty,max=254"`
	VerificationCode string `json:"verificationCode" validate:"omitempty,max=12"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"omitempty,max=254"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,max=254"`
	Password string `json:"password" validate:"omitempty,max=72"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email" validate:"omitempty,max=254"`
	ResetCode       string `json:"resetCode" validate:"omitempty,max=12"`
	NewPassword     string `json:"newPassword" validate:"omitempty,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"omitempty,max=72"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"omitempty,max=72"`
	NewPassword     string `json:"newPassword" validate:"omitempty,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"omitempty,max=72"`
}

// RefreshRequest carries the refresh token for clients that do not keep cookies.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"omitempty,max=4096"`
}

type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=superadmin admin employee user"`
}

// ---- responses ----

type UserResponse struct {
	Message string                `json:"message"`
	User    domain.AccountSummary `json:"user"`
}

type LoginResponse struct {
	Message     string                `json:"message"`
	User        domain.AccountSummary `json:"user"`
	AccessToken string                `json:"accessToken"`
	ExpiresAt   int64                 `json:"expiresAt"`

	RefreshToken     string `json:"refreshToken"`
	RefreshExpiresAt int64  `json:"refreshExpiresAt"`
}
