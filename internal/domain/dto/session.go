package dto

import (
	"time"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
)

// Session is the in-progress design of one user.
type Session struct {
	UserID    int64           `json:"userId"`
	// Content is never written to storage.
	Content   string          `json:"-"`
	Styling   styling.Options `json:"styling"`
	Format    string          `json:"format"`
	Size      int             `json:"size"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
