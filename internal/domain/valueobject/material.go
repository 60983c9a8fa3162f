package valueobject

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Material is an immutable value object holding a material name as the
// caller sent it together with its normalized categorical form.
type Material struct {
	raw        string
	normalized string
}

// NewMaterial wraps raw input and normalizes it. Any string is accepted.
func NewMaterial(raw string) Material {
	return Material{
		raw:        raw,
		normalized: NormalizeMaterial(raw),
	}
}

// NormalizeMaterial trims surrounding whitespace and title-cases every word,
// so " plastic " becomes "Plastic" and "mixed PAPER" becomes "Mixed Paper".
// An apostrophe starts a new word ("o'neil" becomes "O'Neil").
// Applying it twice yields the same result as applying it once.
func NormalizeMaterial(s string) string {
	parts := strings.Split(strings.TrimSpace(s), "'")
	for i, p := range parts {
		// A Caser keeps state between calls, so one is built per part.
		parts[i] = cases.Title(language.Und).String(p)
	}
	return strings.Join(parts, "'")
}

// Raw returns the unmodified input.
func (m Material) Raw() string {
	return m.raw
}

// Normalized returns the category used as the model feature.
func (m Material) Normalized() string {
	return m.normalized
}

// String returns the normalized representation.
func (m Material) String() string {
	return m.normalized
}
