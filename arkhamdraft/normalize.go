package arkhamdraft

import (
	"strings"
)

var replacer = strings.NewReplacer(
	// Quotes and commas and whatnot
	"''", "",
	"“", "",
	"”", "",
	"\"", "",
	"'", "",
	"’", "",
	",", "",
	":", "",
	".", "",
	"!", "",
	"?", "",
	"-", "",

	// Accented characters showing up in card titles
	"â", "a",
	"á", "a",
	"à", "a",
	"é", "e",
	"í", "i",
	"ñ", "n",
	"ö", "o",
	"ó", "o",
	"û", "u",
	"ü", "u",
)

// Normalize replaces uncommon elements of card and pack names with
// simpler versions, for less-strict comparisons.
func Normalize(str string) string {
	return replacer.Replace(strings.ToLower(strings.TrimSpace(str)))
}

// Equals compares strings after both are Normalize-d.
func Equals(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
