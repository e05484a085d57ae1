package customers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nmoussa/shopzone-backend/pkg/db/models"
)

// Repository encapsulates customer profile and address persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a customers repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateProfile inserts the 1:1 profile row. The profiles_user_id_key unique
// constraint rejects a second profile; callers translate that violation.
func (r *Repository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// FindProfileByUser loads the user's profile.
func (r *Repository) FindProfileByUser(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile persists changed profile fields.
func (r *Repository) SaveProfile(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// CreateAddress inserts a new address for a user.
func (r *Repository) CreateAddress(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

// ListAddresses returns the user's addresses, oldest first.
func (r *Repository) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var rows []models.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindAddressForUser loads an address scoped to its owner.
func (r *Repository) FindAddressForUser(ctx context.Context, addressID, userID uuid.UUID) (*models.Address, error) {
	var address models.Address
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// SaveAddress persists changed address fields.
func (r *Repository) SaveAddress(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

// DeleteAddress removes an address scoped to its owner. Orders reference
// addresses with RESTRICT, so the database refuses to delete one that is
// still attached to an order; callers translate that violation.
func (r *Repository) DeleteAddress(ctx context.Context, addressID, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&models.Address{})
	return res.RowsAffected, res.Error
}
