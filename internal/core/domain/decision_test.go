package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateOzet(t *testing.T) {
	t.Run("short summary unchanged", func(t *testing.T) {
		assert.Equal(t, "kısa özet", TruncateOzet("kısa özet"))
	})

	t.Run("exactly at the limit unchanged", func(t *testing.T) {
		s := strings.Repeat("a", OzetMaxLen)
		assert.Equal(t, s, TruncateOzet(s))
	})

	t.Run("long summary truncated with marker", func(t *testing.T) {
		s := strings.Repeat("a", OzetMaxLen+50)
		got := TruncateOzet(s)
		assert.Len(t, []rune(got), OzetMaxLen+3)
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		// Turkish text is multi-byte; 250 runes must survive intact.
		s := strings.Repeat("ş", OzetMaxLen)
		assert.Equal(t, s, TruncateOzet(s))
	})
}

func TestIDMatches(t *testing.T) {
	assert.True(t, IDMatches("42", 42))
	assert.True(t, IDMatches(" 42 ", 42))
	assert.False(t, IDMatches("43", 42))
	assert.False(t, IDMatches("", 42))
	assert.False(t, IDMatches("42a", 42))
}

func TestSearchFilters_IsZero(t *testing.T) {
	assert.True(t, SearchFilters{}.IsZero())
	assert.False(t, SearchFilters{Keyword: "x"}.IsZero())
	assert.False(t, SearchFilters{ID: 1}.IsZero())
	assert.False(t, SearchFilters{Year: 2011}.IsZero())
}
