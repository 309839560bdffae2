package styling

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type DotType string

const (
	DotSquare        DotType = "square"
	DotDots          DotType = "dots"
	DotRounded       DotType = "rounded"
	DotExtraRounded  DotType = "extra-rounded"
	DotClassy        DotType = "classy"
	DotClassyRounded DotType = "classy-rounded"
)

// DotTypes lists dot shapes in picker order.
var DotTypes = []DotType{
	DotSquare,
	DotDots,
	DotRounded,
	DotExtraRounded,
	DotClassy,
	DotClassyRounded,
}

type CornerSquareType string

const (
	CornerSquareSquare  CornerSquareType = "square"
	CornerSquareDot     CornerSquareType = "dot"
	CornerSquareRounded CornerSquareType = "rounded"
)

var CornerSquareTypes = []CornerSquareType{CornerSquareSquare, CornerSquareDot, CornerSquareRounded}

type CornerDotType string

const (
	CornerDotSquare  CornerDotType = "square"
	CornerDotDot     CornerDotType = "dot"
	CornerDotRounded CornerDotType = "rounded"
)

var CornerDotTypes = []CornerDotType{CornerDotSquare, CornerDotDot, CornerDotRounded}

// shapeLabel turns "classy-rounded" into "Classy Rounded".
// Casers are stateful, so a new one is created per call.
func shapeLabel(value string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(value, "-", " "))
}

func (t DotType) Valid() bool {
	for _, v := range DotTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (t DotType) Label() string { return shapeLabel(string(t)) }

func ParseDotType(s string) (DotType, error) {
	t := DotType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown dot type %q", s)
	}
	return t, nil
}

func (t CornerSquareType) Valid() bool {
	for _, v := range CornerSquareTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (t CornerSquareType) Label() string { return shapeLabel(string(t)) }

func ParseCornerSquareType(s string) (CornerSquareType, error) {
	t := CornerSquareType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown corner square type %q", s)
	}
	return t, nil
}

func (t CornerDotType) Valid() bool {
	for _, v := range CornerDotTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (t CornerDotType) Label() string { return shapeLabel(string(t)) }

func ParseCornerDotType(s string) (CornerDotType, error) {
	t := CornerDotType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown corner dot type %q", s)
	}
	return t, nil
}
