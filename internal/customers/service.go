package customers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nmoussa/shopzone-backend/pkg/db"
	"github.com/nmoussa/shopzone-backend/pkg/db/models"
	pkgerrors "github.com/nmoussa/shopzone-backend/pkg/errors"
)

type customerRepository interface {
	CreateProfile(ctx context.Context, profile *models.Profile) error
	FindProfileByUser(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	SaveProfile(ctx context.Context, profile *models.Profile) error
	CreateAddress(ctx context.Context, address *models.Address) error
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	FindAddressForUser(ctx context.Context, addressID, userID uuid.UUID) (*models.Address, error)
	SaveAddress(ctx context.Context, address *models.Address) error
	DeleteAddress(ctx context.Context, addressID, userID uuid.UUID) (int64, error)
}

// ProfileInput captures the writable profile fields.
type ProfileInput struct {
	Phone    *string
	ImageURL *string
}

// AddressInput captures the fields for creating an address.
type AddressInput struct {
	HouseNo    string
	Street     string
	City       string
	PostalCode string
	Country    string
}

// UpdateAddressInput captures partial address mutations.
type UpdateAddressInput struct {
	HouseNo    *string
	Street     *string
	City       *string
	PostalCode *string
	Country    *string
}

// Service exposes customer profile and address operations.
type Service interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*ProfileDTO, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*ProfileDTO, error)
	CreateAddress(ctx context.Context, userID uuid.UUID, input AddressInput) (*AddressDTO, error)
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]AddressDTO, error)
	GetAddress(ctx context.Context, userID, addressID uuid.UUID) (*AddressDTO, error)
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input UpdateAddressInput) (*AddressDTO, error)
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error
}

// ServiceParams groups dependencies for the customers service.
type ServiceParams struct {
	CustomerRepo customerRepository
}

type service struct {
	repo customerRepository
}

// NewService builds a customers service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CustomerRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer repo is required")
	}
	return &service{repo: params.CustomerRepo}, nil
}

// CreateProfile opens the user's 1:1 profile. A duplicate insert surfaces
// from the storage constraint as a validation error.
func (s *service) CreateProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*ProfileDTO, error) {
	profile := &models.Profile{
		ID:       uuid.New(),
		UserID:   userID,
		Phone:    input.Phone,
		ImageURL: input.ImageURL,
	}
	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		if db.IsUniqueViolation(err, "profiles_user_id_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "profile already exists for this user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create profile")
	}
	dto := NewProfileDTO(*profile)
	return &dto, nil
}

// GetProfile loads the user's profile.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	profile, err := s.ownedProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := NewProfileDTO(*profile)
	return &dto, nil
}

// UpdateProfile applies a partial update to the writable profile fields.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*ProfileDTO, error) {
	profile, err := s.ownedProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Phone != nil {
		profile.Phone = input.Phone
	}
	if input.ImageURL != nil {
		profile.ImageURL = input.ImageURL
	}

	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save profile")
	}
	dto := NewProfileDTO(*profile)
	return &dto, nil
}

// CreateAddress adds a postal address for the user.
func (s *service) CreateAddress(ctx context.Context, userID uuid.UUID, input AddressInput) (*AddressDTO, error) {
	address := &models.Address{
		ID:         uuid.New(),
		UserID:     userID,
		HouseNo:    input.HouseNo,
		Street:     input.Street,
		City:       input.City,
		PostalCode: input.PostalCode,
		Country:    input.Country,
	}
	if err := s.repo.CreateAddress(ctx, address); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create address")
	}
	dto := NewAddressDTO(*address)
	return &dto, nil
}

// ListAddresses returns every address the user has on file.
func (s *service) ListAddresses(ctx context.Context, userID uuid.UUID) ([]AddressDTO, error) {
	rows, err := s.repo.ListAddresses(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	dtos := make([]AddressDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, NewAddressDTO(row))
	}
	return dtos, nil
}

// GetAddress loads a single address owned by the user.
func (s *service) GetAddress(ctx context.Context, userID, addressID uuid.UUID) (*AddressDTO, error) {
	address, err := s.ownedAddress(ctx, addressID, userID)
	if err != nil {
		return nil, err
	}
	dto := NewAddressDTO(*address)
	return &dto, nil
}

// UpdateAddress applies a partial update to an owned address.
func (s *service) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input UpdateAddressInput) (*AddressDTO, error) {
	address, err := s.ownedAddress(ctx, addressID, userID)
	if err != nil {
		return nil, err
	}

	if input.HouseNo != nil {
		address.HouseNo = *input.HouseNo
	}
	if input.Street != nil {
		address.Street = *input.Street
	}
	if input.City != nil {
		address.City = *input.City
	}
	if input.PostalCode != nil {
		address.PostalCode = *input.PostalCode
	}
	if input.Country != nil {
		address.Country = *input.Country
	}

	if err := s.repo.SaveAddress(ctx, address); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save address")
	}
	dto := NewAddressDTO(*address)
	return &dto, nil
}

// DeleteAddress removes an address unless an order still references it.
func (s *service) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	rows, err := s.repo.DeleteAddress(ctx, addressID, userID)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "address is referenced by existing orders")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete address")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	return nil
}

func (s *service) ownedProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.repo.FindProfileByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return profile, nil
}

func (s *service) ownedAddress(ctx context.Context, addressID, userID uuid.UUID) (*models.Address, error) {
	address, err := s.repo.FindAddressForUser(ctx, addressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
	}
	return address, nil
}
