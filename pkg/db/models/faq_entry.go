package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// FAQEntry backs the scripted chatbot: any keyword appearing as a substring
// of the user's message selects the canned reply.
type FAQEntry struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Keywords  pq.StringArray `gorm:"column:keywords;type:text[];not null"`
	Reply     string         `gorm:"column:reply;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}
