package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart holds a user's in-progress shopping selection. The user_id unique
// index enforces one cart per user at the storage layer; duplicate creation
// surfaces as a constraint violation, not a racy existence check.
type Cart struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:carts_user_id_key"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
