package filter

import (
	"strings"

	"linkedin-radar/internal/extract"
	"linkedin-radar/internal/models"
)

// MatchedKeywords returns the search keywords whose tokens appear in the
// card's combined title, company, location and description. Informational
// only: the result is attached to the stored record, never used to reject.
func MatchedKeywords(detail extract.CardDetail, keywords []models.Keyword) []models.Keyword {
	haystack := strings.ToLower(strings.Join([]string{
		detail.Title.Or(""),
		detail.Company.Or(""),
		detail.Location.Or(""),
		detail.Description.Or(""),
	}, " "))

	var matched []models.Keyword
	for _, keyword := range keywords {
		for _, token := range keyword.Tokens() {
			if token != "" && strings.Contains(haystack, strings.ToLower(token)) {
				matched = append(matched, keyword)
				break
			}
		}
	}
	return matched
}

// FoundInDescription re-scans the description alone and returns the first
// matching token of each keyword, comma-joined for hashtag-style display.
func FoundInDescription(description string, keywords []models.Keyword) string {
	descLower := strings.ToLower(description)
	var found []string
	for _, keyword := range keywords {
		for _, token := range keyword.Tokens() {
			if token != "" && strings.Contains(descLower, strings.ToLower(token)) {
				found = append(found, token)
				break
			}
		}
	}
	return strings.Join(found, ", ")
}
