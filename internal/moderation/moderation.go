// Package moderation applies heuristic checks to user-submitted text before it
// is persisted. This is advisory filtering, not a security boundary: false
// positives and negatives are acceptable, but the thresholds are part of the
// observable contract.
package moderation

import (
	"errors"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/cases"
)

const (
	maxLength      = 1000
	maxLinks       = 2
	maxRepeatedRun = 14 // a run longer than this (>= 15 identical chars) is rejected
)

var (
	ErrEmpty         = errors.New("text is empty")
	ErrTooLong       = errors.New("text is too long")
	ErrTooManyLinks  = errors.New("text contains too many links")
	ErrBlockedTerm   = errors.New("text contains a blocked term")
	ErrRepeatedChars = errors.New("text contains excessive repeated characters")
)

// defaultBlocklist is intentionally small; extend via MODERATION_BLOCKLIST.
var defaultBlocklist = []string{
	"spam",
}

// Filter holds the case-folded, deduplicated term blocklist.
type Filter struct {
	blocklist []string
}

// NewFilter builds a filter from the built-in blocklist plus an optional
// comma-separated extension.
func NewFilter(extra string) *Filter {
	fold := cases.Fold()

	seen := make(map[string]bool)
	var terms []string
	add := func(term string) {
		term = fold.String(strings.TrimSpace(term))
		if term == "" || seen[term] {
			return
		}
		seen[term] = true
		terms = append(terms, term)
	}

	for _, term := range defaultBlocklist {
		add(term)
	}
	for _, term := range strings.Split(extra, ",") {
		add(term)
	}

	return &Filter{blocklist: terms}
}

// Moderate runs the checks in a fixed order; the first failing check wins:
// empty, too long, too many links, blocked term, repeated characters.
func (f *Filter) Moderate(input string) error {
	text := strings.TrimSpace(input)
	if text == "" {
		return ErrEmpty
	}

	if utf16Length(text) > maxLength {
		return ErrTooLong
	}

	lower := strings.ToLower(text)
	if strings.Count(lower, "http://")+strings.Count(lower, "https://") > maxLinks {
		return ErrTooManyLinks
	}

	folded := cases.Fold().String(text)
	for _, term := range f.blocklist {
		if strings.Contains(folded, term) {
			return ErrBlockedTerm
		}
	}

	if longestRun(text) > maxRepeatedRun {
		return ErrRepeatedChars
	}

	return nil
}

// utf16Length counts UTF-16 code units, matching how web clients measure the
// same limit.
func utf16Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// longestRun returns the length of the longest run of one repeated character.
func longestRun(s string) int {
	var prev rune
	run, longest := 0, 0
	for _, r := range s {
		if run > 0 && r == prev {
			run++
		} else {
			run = 1
			prev = r
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
