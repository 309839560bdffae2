package location

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Cleanup(viper.Reset)

	loc, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	viper.Set("settings.timezone", "Europe/Moscow")
	loc, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())

	viper.Set("settings.timezone", "Mars/Olympus")
	_, err = Load()
	assert.Error(t, err)
}
