package entity

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID           int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	FirstName    string
	Username     string
	Localisation string
	Email        string
	ExportFormat string
	ExportSize   int
	// RecentColors holds custom colors, most recent first.
	RecentColors pq.StringArray `gorm:"type:text[]"`
}
