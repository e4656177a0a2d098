package models

import (
	"time"

	"github.com/google/uuid"
)

// Address is one saved delivery address in a user's address book.
type Address struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Label       string    `gorm:"column:label;not null"`
	AddressLine string    `gorm:"column:address_line;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
