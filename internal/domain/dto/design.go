package dto

import "time"

// DesignListItem is a saved design without its styling payload.
type DesignListItem struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
