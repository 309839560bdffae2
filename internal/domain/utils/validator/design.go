package validator

import (
	"strings"
	"unicode/utf8"
)

func DesignName(name string, _ map[string]interface{}) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n >= 1 && n <= 40
}
