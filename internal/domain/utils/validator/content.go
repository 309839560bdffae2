package validator

import (
	"strings"
	"unicode/utf8"
)

const MaxContentLength = 1000

const (
	msgContentEmpty   = "Please enter some content"
	msgContentTooLong = "Content is too long (max 1000 characters)"
)

// Result is the outcome of a validation. Message is empty when Valid is true.
type Result struct {
	Valid   bool
	Message string
}

// Content checks the text that is going to be encoded. Surrounding whitespace
// is ignored and length is counted in characters, not bytes.
func Content(text string) Result {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		return Result{Message: msgContentEmpty}
	case utf8.RuneCountInString(trimmed) > MaxContentLength:
		return Result{Message: msgContentTooLong}
	default:
		return Result{Valid: true}
	}
}
