package errorz

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCallbackData = errors.New("invalid callback data")
	ErrExportInProgress    = errors.New("export already in progress")
	ErrUnsupportedFormat   = errors.New("unsupported export format")
	ErrSessionNotFound     = errors.New("session not found")
	ErrInvalidSize         = errors.New("invalid export size")
)

// ValidationError is returned when the content to encode is rejected before rendering.
// Message is meant to be shown inline to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RenderError wraps a failure of the QR renderer.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render qr code: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// ExportError wraps a failure while encoding or saving an exported file.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export qr code: %v", e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
