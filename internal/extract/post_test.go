package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSocialCounts(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   SocialCounts
	}{
		{
			name:   "full set",
			labels: []string{"1,024 reactions", "37 comments", "5 shares"},
			want:   SocialCounts{Reactions: 1024, Comments: 37, Shares: 5},
		},
		{
			name:   "singular forms",
			labels: []string{"1 reaction", "1 comment", "1 share"},
			want:   SocialCounts{Reactions: 1, Comments: 1, Shares: 1},
		},
		{
			name:   "unparsable labels skipped",
			labels: []string{"reactions", "about this post", "12 likes", "9 comments"},
			want:   SocialCounts{Comments: 9},
		},
		{
			name: "empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSocialCounts(tt.labels))
		})
	}
}

func TestSocialCountsViews(t *testing.T) {
	c := SocialCounts{Reactions: 10, Comments: 2, Shares: 3}
	assert.Equal(t, 15, c.Views())
	assert.Equal(t, 0, SocialCounts{}.Views())
}
