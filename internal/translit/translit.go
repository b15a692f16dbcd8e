// Package translit normalizes search text so that queries match stored city
// names across scripts: case differences and diacritics are folded away
// before substring comparison.
package translit

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes, drops combining marks, then recomposes, turning
// e.g. "Orléans" into "Orleans" and "Köln" into "Koln".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold returns s uppercased with diacritics removed. Stored localized names
// are folded with the same function at backfill time, so a folded query
// substring-matches them regardless of the input script or accents.
func Fold(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	// Casers are stateful, so build one per call.
	return cases.Upper(language.Und).String(folded)
}
