package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Badsnus/qr-crafter-bot/pkg/logger/types"
)

func TestInitNamedAndHook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Config{Debug: true, Output: &buf, NoColor: true}))
	t.Cleanup(func() { logHook = nil })

	var got []types.Log
	SetLogHook(func(log types.Log) { got = append(got, log) })

	l, err := Named("render")
	require.NoError(t, err)
	assert.Equal(t, "render", l.Name)

	l.Warnf("slow render: %dms", 120)
	Sync()

	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "main.render")
	assert.Contains(t, buf.String(), "slow render: 120ms")

	require.NotEmpty(t, got)
	last := got[len(got)-1]
	assert.Equal(t, zapcore.WarnLevel, last.Level)
	assert.Equal(t, "main.render", last.LoggerName)
	assert.Equal(t, "slow render: 120ms", last.Message)
}
