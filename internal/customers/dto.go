package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/nmoussa/shopzone-backend/pkg/db/models"
)

// ProfileDTO is the read shape for the customer profile.
type ProfileDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Phone     *string   `json:"phone,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddressDTO is the read shape for a postal address.
type AddressDTO struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	HouseNo    string    `json:"house_no"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewProfileDTO maps a profile model to its read shape.
func NewProfileDTO(profile models.Profile) ProfileDTO {
	return ProfileDTO{
		ID:        profile.ID,
		UserID:    profile.UserID,
		Phone:     profile.Phone,
		ImageURL:  profile.ImageURL,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

// NewAddressDTO maps an address model to its read shape.
func NewAddressDTO(address models.Address) AddressDTO {
	return AddressDTO{
		ID:         address.ID,
		UserID:     address.UserID,
		HouseNo:    address.HouseNo,
		Street:     address.Street,
		City:       address.City,
		PostalCode: address.PostalCode,
		Country:    address.Country,
		CreatedAt:  address.CreatedAt,
		UpdatedAt:  address.UpdatedAt,
	}
}
