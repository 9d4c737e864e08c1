package moderation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerateAcceptsPlainText(t *testing.T) {
	f := NewFilter("")

	assert.NoError(t, f.Moderate("what a great shot, love the light here"))
	assert.NoError(t, f.Moderate("check https://example.com and http://example.org"))
}

func TestModerateEmpty(t *testing.T) {
	f := NewFilter("")

	assert.ErrorIs(t, f.Moderate(""), ErrEmpty)
	assert.ErrorIs(t, f.Moderate("   \n\t  "), ErrEmpty)
}

func TestModerateLength(t *testing.T) {
	f := NewFilter("")

	assert.NoError(t, f.Moderate(strings.Repeat("ab", 500)))
	assert.ErrorIs(t, f.Moderate(strings.Repeat("ab", 500)+"c"), ErrTooLong)
}

func TestModerateLengthCountsUTF16CodeUnits(t *testing.T) {
	f := NewFilter("")

	// Astral-plane runes occupy two UTF-16 code units each
	emoji := "\U0001F4F7"
	assert.NoError(t, f.Moderate(strings.Repeat(emoji, 500)))
	assert.ErrorIs(t, f.Moderate(strings.Repeat(emoji, 501)), ErrTooLong)
}

func TestModerateLinks(t *testing.T) {
	f := NewFilter("")

	assert.NoError(t, f.Moderate("links: https://a.com https://b.com"))
	assert.ErrorIs(t, f.Moderate("links: https://a.com https://b.com https://c.com"), ErrTooManyLinks)
	// Scheme matching is case-insensitive
	assert.ErrorIs(t, f.Moderate("HTTPS://a.com HTTP://b.com HtTpS://c.com"), ErrTooManyLinks)
}

func TestModerateBlockedTerm(t *testing.T) {
	f := NewFilter("")

	assert.ErrorIs(t, f.Moderate("this is spam"), ErrBlockedTerm)
	assert.ErrorIs(t, f.Moderate("this is SPAM"), ErrBlockedTerm)
	// Match inside a longer word
	assert.ErrorIs(t, f.Moderate("antispammer"), ErrBlockedTerm)
}

func TestModerateBlocklistExtension(t *testing.T) {
	f := NewFilter("scam, Fraud ,")

	assert.ErrorIs(t, f.Moderate("an obvious scam"), ErrBlockedTerm)
	assert.ErrorIs(t, f.Moderate("total FRAUD"), ErrBlockedTerm)
	// Default list still applies
	assert.ErrorIs(t, f.Moderate("spam again"), ErrBlockedTerm)
	assert.NoError(t, f.Moderate("legitimate comment"))
}

func TestModerateRepeatedChars(t *testing.T) {
	f := NewFilter("")

	assert.NoError(t, f.Moderate("wow"+strings.Repeat("!", 14)))
	assert.ErrorIs(t, f.Moderate("wow"+strings.Repeat("!", 15)), ErrRepeatedChars)
}

func TestModerateCheckOrder(t *testing.T) {
	f := NewFilter("")

	// Too long wins over later checks even when the text also has too many
	// links, blocked terms and repeated runs
	text := strings.Repeat("x", 1001) + " spam https://a.com https://b.com https://c.com " + strings.Repeat("!", 20)
	assert.ErrorIs(t, f.Moderate(text), ErrTooLong)

	// Links win over blocked terms
	text = "spam https://a.com https://b.com https://c.com"
	assert.ErrorIs(t, f.Moderate(text), ErrTooManyLinks)

	// Blocked term wins over repeated chars
	text = "spam " + strings.Repeat("!", 20)
	assert.ErrorIs(t, f.Moderate(text), ErrBlockedTerm)
}

func TestModerateTrimsBeforeChecking(t *testing.T) {
	f := NewFilter("")

	// Surrounding whitespace does not count against the length limit
	require.NoError(t, f.Moderate("  "+strings.Repeat("ab", 500)+"  "))
}
