// Package palette picks display colours for categories.
package palette

import (
	"math/rand/v2"
	"strings"
)

// flat is the set of flat UI colours a new category can be given.
var flat = []string{
	"#1ABC9C", "#16A085", "#2ECC71", "#27AE60",
	"#3498DB", "#2980B9", "#9B59B6", "#8E44AD",
	"#34495E", "#2C3E50", "#F1C40F", "#F39C12",
	"#E67E22", "#D35400", "#E74C3C", "#C0392B",
	"#ECF0F1", "#BDC3C7", "#95A5A6", "#7F8C8D",
}

// Random returns a colour from the flat palette.
func Random() string {
	return flat[rand.IntN(len(flat))]
}

// Colours returns a copy of the palette.
func Colours() []string {
	out := make([]string, len(flat))
	copy(out, flat)
	return out
}

// Normalize upper-cases a hex colour and expands the #RGB short form.
func Normalize(hex string) string {
	hex = strings.ToUpper(hex)
	if len(hex) == 4 {
		return string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	return hex
}
