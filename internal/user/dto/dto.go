package dto

import "github.com/fekuna/omnipos-catalog-admin/internal/model"

type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserInput is the PUT /auth/update body. A nil Password leaves the
// stored credential untouched.
type UpdateUserInput struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (in *UpdateUserInput) IsEmpty() bool {
	return in.Name == nil && in.Email == nil && in.Password == nil
}

// AuthResponse is returned by sign-in and sign-up.
type AuthResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type UserResponse struct {
	User model.User `json:"user"`
}
