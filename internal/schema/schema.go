// Package schema validates and normalizes note content before it reaches
// persistence. The same rules apply on the create and update paths.
package schema

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxContentLength bounds note content, counted in runes.
const MaxContentLength = 5000

var (
	ErrContentMissing = errors.New("note content is missing")
	ErrContentEmpty   = errors.New("note content cannot be empty or whitespace only")
	ErrContentTooLong = fmt.Errorf("note content cannot exceed %d characters", MaxContentLength)
)

// ValidateContent trims leading and trailing whitespace and checks the
// result against the content rules. Internal whitespace is preserved
// verbatim. On success the trimmed content is returned.
func ValidateContent(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrContentEmpty
	}

	if utf8.RuneCountInString(trimmed) > MaxContentLength {
		return "", ErrContentTooLong
	}

	return trimmed, nil
}
