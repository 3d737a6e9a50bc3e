package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownColor is returned by ParseColor for names outside the palette.
var ErrUnknownColor = errors.New("unknown color")

// Color is one of the fixed label colors.
type Color string

// Label colors. No other value is valid in a document.
const (
	ColorGreen  Color = "#61bd4f"
	ColorYellow Color = "#f2d600"
	ColorOrange Color = "#ff9f1a"
	ColorRed    Color = "#eb5a46"
	ColorPurple Color = "#c377e0"
	ColorBlue   Color = "#0079bf"
	ColorSky    Color = "#00c2e0"
	ColorLime   Color = "#51e898"
	ColorPink   Color = "#ff78cb"
	ColorBlack  Color = "#344563"
)

// Colors lists the valid label colors in palette order.
var Colors = []Color{
	ColorGreen, ColorYellow, ColorOrange, ColorRed, ColorPurple,
	ColorBlue, ColorSky, ColorLime, ColorPink, ColorBlack,
}

// Valid reports whether c is one of Colors.
func (c Color) Valid() bool {
	for _, v := range Colors {
		if c == v {
			return true
		}
	}
	return false
}

var colorNames = map[string]Color{
	"green":  ColorGreen,
	"yellow": ColorYellow,
	"orange": ColorOrange,
	"red":    ColorRed,
	"purple": ColorPurple,
	"blue":   ColorBlue,
	"sky":    ColorSky,
	"lime":   ColorLime,
	"pink":   ColorPink,
	"black":  ColorBlack,
}

// ParseColor accepts a palette name such as "red" or a hex value from
// Colors.
func ParseColor(s string) (Color, error) {
	if c, ok := colorNames[strings.ToLower(s)]; ok {
		return c, nil
	}
	if c := Color(strings.ToLower(s)); c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColor, s)
}
