package response

import "letly-be-svc/internal/models"

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  *models.User `json:"user"`
}
