// Package textkey derives comparison keys for item titles: a folded key for
// case- and diacritic-insensitive substring search, and a per-rune collation
// used to order titles.
package textkey

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = runes.Remove(runes.In(unicode.Mn))

// Fold returns s with combining marks removed and case folded, so that
// "Café", "CAFE" and "cafe" share the key "cafe".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, stripMarks, norm.NFC, cases.Fold())
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// EscapeLike escapes the LIKE wildcards in s using backslash, for use with
// `LIKE ? ESCAPE '\'`.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

type weight struct {
	base   rune
	marked bool
	lower  bool
}

// weigh splits r into its base letter and a diacritic flag. Only a
// decomposition whose trailing runes are all nonspacing marks counts as
// marked; Hangul syllables decompose into jamo and keep their own code point.
func weigh(r rune) weight {
	w := weight{base: r, lower: unicode.IsLower(r)}
	decomposed := norm.NFD.String(string(r))
	if first, size := utf8.DecodeRuneInString(decomposed); size < len(decomposed) && onlyMarks(decomposed[size:]) {
		w.base = first
		w.marked = true
	}
	w.base = unicode.ToLower(w.base)
	return w
}

func onlyMarks(s string) bool {
	for _, r := range s {
		if !unicode.Is(unicode.Mn, r) {
			return false
		}
	}
	return true
}

func (a weight) compare(b weight) int {
	switch {
	case a.base != b.base:
		if a.base < b.base {
			return -1
		}
		return 1
	case a.marked != b.marked:
		if !a.marked {
			return -1
		}
		return 1
	case a.lower != b.lower:
		if !a.lower {
			return -1
		}
		return 1
	}
	return 0
}

// Compare orders two titles rune by rune. Letters interleave by case with the
// upper-case form first (A < a < B < b), unaccented before accented, and the
// first differing rune decides. A proper prefix sorts first.
func Compare(a, b string) int {
	for a != "" && b != "" {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		if c := weigh(ra).compare(weigh(rb)); c != 0 {
			return c
		}
		a, b = a[na:], b[nb:]
	}
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	}
	return 1
}
