package qr

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// finderSize is the side of a finder pattern in modules, finderDotSize the side
// of its center and finderDotOffset the distance from the pattern edge to it.
const (
	finderSize      = 7
	finderDotSize   = 3
	finderDotOffset = 2
)

type matrix struct {
	size int
	dark [][]bool
}

func recoveryLevel(level string) (qrcode.RecoveryLevel, error) {
	switch strings.ToUpper(level) {
	case "L":
		return qrcode.Low, nil
	case "M":
		return qrcode.Medium, nil
	case "", "Q":
		return qrcode.High, nil
	case "H":
		return qrcode.Highest, nil
	default:
		return 0, fmt.Errorf("unknown error correction level %q", level)
	}
}

// newMatrix encodes data and returns the symbol without its quiet zone.
func newMatrix(data, level string) (matrix, error) {
	lvl, err := recoveryLevel(level)
	if err != nil {
		return matrix{}, err
	}
	q, err := qrcode.New(data, lvl)
	if err != nil {
		return matrix{}, err
	}
	return trimQuietZone(q.Bitmap()), nil
}

// trimQuietZone cuts the bitmap down to the bounding box of its dark modules.
// Finder patterns touch three edges of the symbol, so the box is exactly the symbol.
func trimQuietZone(bitmap [][]bool) matrix {
	top, left := len(bitmap), len(bitmap)
	bottom, right := -1, -1
	for y, row := range bitmap {
		for x, v := range row {
			if !v {
				continue
			}
			top, bottom = min(top, y), max(bottom, y)
			left, right = min(left, x), max(right, x)
		}
	}
	if bottom < 0 {
		return matrix{}
	}

	size := max(bottom-top, right-left) + 1
	dark := make([][]bool, size)
	for y := range dark {
		dark[y] = make([]bool, size)
		for x := range dark[y] {
			sy, sx := top+y, left+x
			if sy < len(bitmap) && sx < len(bitmap[sy]) {
				dark[y][x] = bitmap[sy][sx]
			}
		}
	}
	return matrix{size: size, dark: dark}
}

func (m matrix) isDark(row, col int) bool {
	if row < 0 || col < 0 || row >= m.size || col >= m.size {
		return false
	}
	return m.dark[row][col]
}

// inFinder reports whether a module belongs to one of the three finder patterns.
func (m matrix) inFinder(row, col int) bool {
	n := m.size
	return (row < finderSize && col < finderSize) ||
		(row < finderSize && col >= n-finderSize) ||
		(row >= n-finderSize && col < finderSize)
}
