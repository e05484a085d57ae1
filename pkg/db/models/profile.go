package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the 1:1 customer profile. The user_id unique index rejects a
// second profile for the same user at the storage layer.
type Profile struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:profiles_user_id_key"`
	Phone     *string   `gorm:"column:phone"`
	ImageURL  *string   `gorm:"column:image_url"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
