package entity

import (
	"time"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
)

// Design is a named styling saved by a user.
type Design struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    int64           `gorm:"not null;index"`
	Name      string          `gorm:"not null"`
	Styling   styling.Options `gorm:"type:jsonb;serializer:json;not null"`
}
