package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContent(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		valid   bool
		message string
	}{
		{"url", "https://example.com", true, ""},
		{"empty", "", false, "Please enter some content"},
		{"whitespace only", "   \n\t ", false, "Please enter some content"},
		{"exactly max", strings.Repeat("a", 1000), true, ""},
		{"max with padding", "  " + strings.Repeat("a", 1000) + "  ", true, ""},
		{"too long", strings.Repeat("a", 1001), false, "Content is too long (max 1000 characters)"},
		{"multibyte within limit", strings.Repeat("я", 1000), true, ""},
		{"multibyte too long", strings.Repeat("я", 1001), false, "Content is too long (max 1000 characters)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Content(tt.text)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestContentIsDeterministic(t *testing.T) {
	assert.Equal(t, Content("hello"), Content("hello"))
}

func TestHexColor(t *testing.T) {
	assert.True(t, HexColor("#3B82F6", nil))
	assert.True(t, HexColor("#ffffff", nil))
	assert.True(t, HexColor(" #000000 ", nil))
	assert.False(t, HexColor("#fff", nil))
	assert.False(t, HexColor("3B82F6", nil))
	assert.False(t, HexColor("#GGGGGG", nil))
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("user@example.com", nil))
	assert.False(t, Email("not an email", nil))
	assert.False(t, Email("Name <user@example.com>", nil))
}

func TestDesignName(t *testing.T) {
	assert.True(t, DesignName("Brand blue", nil))
	assert.False(t, DesignName("   ", nil))
	assert.False(t, DesignName(strings.Repeat("x", 41), nil))
}
