package models

import (
	"github.com/go-playground/validator/v10"
)

type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username" validate:"required"`
	Email        string `db:"email" json:"email" validate:"required"`
	PasswordHash string `db:"password_hash" json:"-"`
}

// SignupRequest is the POST /api/signup payload. Presence checks only,
// the store enforces uniqueness.
type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *SignupRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
