package types

import (
	"fmt"
)

// RegisterUserRequest is the payload for creating a dashboard account.
// Accounts start in pending status until approved.
type RegisterUserRequest struct {
	FullName   string `json:"full_name" validate:"required,min=1,max=255"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Username   string `json:"username" validate:"required,min=3,max=100"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	Department string `json:"department" validate:"required,min=1,max=100"`
}

func (r RegisterUserRequest) Validate() error {
	if r.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if len(r.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	if r.Department == "" {
		return fmt.Errorf("department is required")
	}
	return nil
}

// LoginRequest accepts either username or email plus a password
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if r.Username == "" && r.Email == "" {
		return fmt.Errorf("username or email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}
