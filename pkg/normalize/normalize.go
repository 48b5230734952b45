// Package normalize canonicalizes free-text football team names into
// comparable keys. Every equality or similarity comparison in the venue
// registry goes through Key; skipping it on any path silently breaks
// alias resolution.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and removes combining marks, so that
// "Atlético" and "Atletico" produce the same key.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// legalTokens are club legal-form and honorific tokens that carry no
// identity: "Real Valladolid CF" and "Valladolid" are the same club.
// Tokens are matched space-delimited against the lowered, accent-stripped
// name.
var legalTokens = []string{
	" fc ",
	" cf ",
	" ud ",
	" cd ",
	" sd ",
	" real ",
	" club ",
	" deportivo ",
	" atletico ",
}

// Key returns the canonical comparison key for a team display name.
// It is a pure function: deterministic, no side effects. Empty input
// yields an empty key.
func Key(name string) string {
	if name == "" {
		return ""
	}

	text, _, err := transform.String(stripMarks, name)
	if err != nil {
		// Transform failures are limited to malformed UTF-8; fall back to
		// the raw input rather than dropping the name entirely.
		text = name
	}
	text = strings.ToLower(text)

	// Pad so tokens match at the edges too.
	text = " " + text + " "
	for _, token := range legalTokens {
		text = strings.ReplaceAll(text, token, " ")
	}

	return strings.Join(strings.Fields(text), " ")
}

// Equal reports whether two display names canonicalize to the same key.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}
