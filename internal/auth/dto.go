package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/nmoussa/shopzone-backend/pkg/db/models"
)

// RegisterInput captures the fields needed to create an account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginInput captures the credential pair.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshInput carries the expired access token plus the refresh token that
// proves session ownership.
type RefreshInput struct {
	AccessToken  string
	RefreshToken string
}

// UserDTO is the read shape for the authenticated user.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResultDTO bundles the user with a fresh token pair.
type AuthResultDTO struct {
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
}

// TokenPairDTO is the refresh response shape.
type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// NewUserDTO maps a user model to its read shape.
func NewUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	}
}
