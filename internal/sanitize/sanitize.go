// Package sanitize strips markup from user-generated text. Reviews, bios,
// and display names are plain text in Flicktrack; anything that looks like
// HTML in them is hostile or accidental, and either way it must not reach
// the database.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton bluemonday policy. StrictPolicy removes every tag
// and attribute; no formatting survives.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text strips all HTML from user-provided text and trims the result. Call it
// on every free-text field before storing it.
func Text(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(getPolicy().Sanitize(input))
}

// TextPtr applies Text through a pointer, preserving nil.
func TextPtr(input *string) *string {
	if input == nil {
		return nil
	}
	cleaned := Text(*input)
	return &cleaned
}
