package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"linkedin-radar/internal/extract"
	"linkedin-radar/internal/models"
)

func TestMatchedKeywords(t *testing.T) {
	keywords := []models.Keyword{
		{ID: 1, Name: "Go", Words: "go,golang"},
		{ID: 2, Name: "Data", Words: "spark, kafka"},
		{ID: 3, Name: "Rust", Words: "rust"},
	}

	d := extract.CardDetail{
		Title:       extract.Present("Golang Developer"),
		Company:     extract.Present("Acme"),
		Location:    extract.Present("Berlin"),
		Description: extract.Present("You will maintain our Kafka consumers."),
	}

	matched := MatchedKeywords(d, keywords)
	ids := make([]int64, len(matched))
	for i, k := range matched {
		ids[i] = k.ID
	}
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestMatchedKeywordsCountsEachKeywordOnce(t *testing.T) {
	keywords := []models.Keyword{{ID: 1, Words: "go,golang"}}
	d := extract.CardDetail{
		Title:       extract.Present("Go / Golang Developer"),
		Description: extract.Present("go go go"),
	}
	assert.Len(t, MatchedKeywords(d, keywords), 1)
}

func TestFoundInDescription(t *testing.T) {
	keywords := []models.Keyword{
		{ID: 1, Words: "go,golang"},
		{ID: 2, Words: "spark, kafka"},
		{ID: 3, Words: "rust"},
	}

	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"first token per keyword", "We use Go and Kafka in production", "go, kafka"},
		{"substring matching is per token", "Golang and Spark pipelines", "go, spark"},
		{"no hits", "Frontend position", ""},
		{"empty description", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FoundInDescription(tt.description, keywords))
		})
	}
}
