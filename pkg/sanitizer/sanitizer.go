// Package sanitizer normalizes customer-entered form fields before they are
// validated and sent upstream.
//
// All functions are idempotent and handle empty input gracefully. Full names
// are restricted to letters and spaces, matching what the booking form
// accepts as the customer types; every other field is trimmed and its inner
// whitespace collapsed.
package sanitizer

import (
	"regexp"
	"strings"

	"bookline/pkg/model"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var reLettersAndSpaces = regexp.MustCompile(`[^A-Za-z ]`)

func trim(s string) string {
	return strings.TrimSpace(s)
}

func dropNonLetters(s string) string {
	return reLettersAndSpaces.ReplaceAllString(s, "")
}

// FilterName keeps only letters and spaces, then trims and collapses the
// remaining whitespace.
func FilterName(input string) string {
	p := Pipeline{
		dropNonLetters,
		TrimAndNormalize,
	}
	return p.Apply(input)
}

// SanitizeProfileDraft returns a cleaned copy of the draft: the full name
// filtered to letters and spaces, every field trimmed.
func SanitizeProfileDraft(draft model.ProfileDraft) model.ProfileDraft {
	return model.ProfileDraft{
		FullName: FilterName(draft.FullName),
		Email:    trim(draft.Email),
		Address:  TrimAndNormalize(draft.Address),
	}
}
