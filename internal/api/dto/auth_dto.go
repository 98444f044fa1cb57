package dto

import (
	"time"

	"github.com/spec-kit/blog-service/internal/domain"
)

// SignUpRequest payload for new users.
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email,min=5,max=50"`
	Password string `json:"password" validate:"required,alphanum,min=8,max=20"`
}

// SignInRequest payload for login.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email,min=5,max=50"`
	Password string `json:"password" validate:"required,alphanum,min=8,max=20"`
}

// SendCodeRequest payload for requesting a verification code.
type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email,min=5,max=50"`
}

// VerifyCodeRequest payload for submitting a verification code.
type VerifyCodeRequest struct {
	Email            string `json:"email" validate:"required,email,min=5,max=50"`
	VerificationCode string `json:"verificationCode" validate:"required,numeric,len=6"`
}

// UserResponse is the client-facing projection of a user. Credential and
// verification-code fields have no place here by construction.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse maps a domain user onto the response shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Verified:  user.Verified,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
