package dto

import (
	"strings"

	"github.com/spec-kit/family-service/internal/validation"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=3"`
}

// Normalize trims whitespace so padded input does not sneak past the
// minimum-length rules.
func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
}

var registerReasons = map[string]string{
	"Username.required": "username_required",
	"Username.min":      "username_min",
	"Username.max":      "username_max",
	"Email.required":    "email_required",
	"Email.email":       "email_invalid",
	"Password":          "password_min",
}

// FieldErrors reports every invalid field as a field→reason-key map.
func (r RegisterRequest) FieldErrors(v *validation.Validator) map[string]string {
	return v.FieldErrors(r, nil, registerReasons)
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is a user stripped of credentials.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
