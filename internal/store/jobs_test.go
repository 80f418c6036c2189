package store

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short string untouched", "Go Developer", 300, "Go Developer"},
		{"ascii cut at limit", "abcdef", 3, "abc"},
		{"multibyte rune not split", "Développeur Go", 2, "D"},
		{"cut lands on rune boundary", "Développeur Go", 3, "Dé"},
		{"emoji not split", "Go ✅ remote", 5, "Go "},
		{"empty", "", 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got), "truncation must keep valid UTF-8")
			assert.LessOrEqual(t, len(got), tt.max)
		})
	}
}

func TestTruncateLongMultibyteTitle(t *testing.T) {
	title := strings.Repeat("é", maxTitleLen) // 2 bytes per rune
	got := truncate(title, maxTitleLen)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), maxTitleLen)
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	if got := nullIfEmpty("language"); assert.NotNil(t, got) {
		assert.Equal(t, "language", *got)
	}
}
