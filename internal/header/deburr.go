package header

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// apostrophes are dropped before splitting, so "Driver's" stays one word.
var apostrophes = strings.NewReplacer("'", "", "’", "")

// letters that carry no combining mark and do not decompose under NFD.
var ligatures = strings.NewReplacer(
	"Æ", "Ae", "æ", "ae", "Ø", "O", "ø", "o",
	"Ð", "D", "ð", "d", "Þ", "Th", "þ", "th", "ß", "ss",
	"Đ", "D", "đ", "d", "Ħ", "H", "ħ", "h", "ı", "i",
	"Ĳ", "IJ", "ĳ", "ij", "Ŀ", "L", "ŀ", "l", "Ł", "L", "ł", "l",
	"ŉ", "n", "Œ", "Oe", "œ", "oe", "ſ", "s", "Ŧ", "T", "ŧ", "t",
)

// Deburr strips diacritics ("Café" -> "Cafe") and spells out ligatures ("Æ" -> "Ae").
func Deburr(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return ligatures.Replace(out)
}
