package location

import (
	"time"

	"github.com/spf13/viper"
)

// Load resolves the configured time zone, UTC when none is set.
func Load() (*time.Location, error) {
	name := viper.GetString("settings.timezone")
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}
