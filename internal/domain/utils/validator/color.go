package validator

import (
	"regexp"
	"strings"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// HexColor accepts colors typed by hand in the #RRGGBB form.
func HexColor(color string, _ map[string]interface{}) bool {
	return hexColorRe.MatchString(strings.TrimSpace(color))
}
