package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseNewlines(t *testing.T) {
	tests := []struct {
		name           string
		in             string
		maxConsecutive int
		want           string
	}{
		{"collapses runs", "a\n\n\n\nb", 1, "a\n\nb"},
		{"keeps single blank line", "a\n\nb", 1, "a\n\nb"},
		{"zero removes blank lines", "a\n\n\nb", 0, "a\nb"},
		{"whitespace-only lines are blank", "a\n \n\t\nb", 1, "a\n\nb"},
		{"windows endings", "a\r\n\r\n\r\nb", 1, "a\n\nb"},
		{"trims edges", "\n\na\n\n", 1, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CollapseNewlines(tt.in, tt.maxConsecutive))
		})
	}
}

func TestStripAccessibilityHashtagLabels(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"inline label", "Read more hashtag #EdTech today", "Read more #EdTech today"},
		{"standalone line", "Great news\nhashtag\n#Hiring", "Great news\n#Hiring"},
		{"case insensitive", "Hashtag #Go", "#Go"},
		{"plain hashtag untouched", "We love #golang", "We love #golang"},
		{"word containing hashtag untouched", "the hashtagging trend", "the hashtagging trend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripAccessibilityHashtagLabels(tt.in))
		})
	}
}

func TestNormalizeJobMessageSpacing(t *testing.T) {
	in := "Title\nRegion: Berlin\nCompany\nLocation: Berlin, Germany\nEasy Apply: ✅\nDetails"
	want := "Title\nRegion: Berlin\n\nCompany\n\nLocation: Berlin, Germany\nEasy Apply: ✅\n\nDetails"
	assert.Equal(t, want, NormalizeJobMessageSpacing(in))
}

func TestNormalizeJobMessageSpacingSwallowsExtraBlanks(t *testing.T) {
	in := "Region: Berlin\n\n\n\nNext"
	assert.Equal(t, "Region: Berlin\n\nNext", NormalizeJobMessageSpacing(in))
}

func TestLimitWords(t *testing.T) {
	assert.Equal(t, "one two", LimitWords("one two", 5))
	assert.Equal(t, "one two ...", LimitWords("one two three", 2))
	assert.Equal(t, "", LimitWords("", 3))
}

func TestHTMLLink(t *testing.T) {
	assert.Equal(t,
		`<a href="https://example.com/?a=1&amp;b=2">A &amp; B</a>`,
		HTMLLink("https://example.com/?a=1&b=2", "A & B"))
}

func TestTelegramTextPurify(t *testing.T) {
	assert.Equal(t, "C- Developer - Friends", TelegramTextPurify("C# Developer & Friends"))
}

func TestHashtagBlock(t *testing.T) {
	assert.Equal(t, "\n\n#go\n#kafka",
		HashtagBlock("We run Go services on Kafka", []string{"go", "kafka", "rust"}))
	assert.Equal(t, "", HashtagBlock("Frontend role", []string{"go"}))
	assert.Equal(t, "", HashtagBlock("anything", nil))
}
