package users

import (
	"github.com/nmoussa/shopzone-backend/pkg/db/models"
)

// CreateUserDTO carries the fields needed to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}

// ToModel maps the DTO onto a fresh user model.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		IsActive:     true,
	}
}
