package helpers

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

func strict() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// PlainText strips every HTML element from model-generated text and trims
// it. Entities escaped by the policy are decoded again so "5 < 6" survives.
func PlainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict().Sanitize(s)))
}

// PlainTexts applies PlainText to each item and drops items left empty.
// The result is never nil.
func PlainTexts(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := PlainText(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}
