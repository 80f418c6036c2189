package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"linkedin-radar/internal/extract"
	"linkedin-radar/internal/models"
)

func detail(title, company, location, lang string, easyApply bool) extract.CardDetail {
	return extract.CardDetail{
		Title:     extract.Present(title),
		Company:   extract.Present(company),
		Location:  extract.Present(location),
		Language:  extract.Present(lang),
		EasyApply: extract.Present(easyApply),
	}
}

func TestEvaluate(t *testing.T) {
	filters := []models.IgnoreFilter{
		{Place: models.FilterTitle, Keyword: "senior", Enable: true},
		{Place: models.FilterCompany, Keyword: "staffing", Enable: true},
		{Place: models.FilterCompany, Keyword: "google", Enable: true},
		{Place: models.FilterLocation, Keyword: "on-site", Enable: true},
		{Place: models.FilterTitle, Keyword: "lead", Enable: false},
	}

	tests := []struct {
		name          string
		detail        extract.CardDetail
		easyApplyOnly bool
		wantEligible  bool
		wantReason    string
	}{
		{
			name:         "clean card passes",
			detail:       detail("Go Developer", "Acme", "Berlin", "en", true),
			wantEligible: true,
		},
		{
			name:          "easy apply gate first",
			detail:        detail("Senior Go Developer", "Acme", "Berlin", "de", false),
			easyApplyOnly: true,
			wantReason:    ReasonEasyApply,
		},
		{
			name:       "non english rejected",
			detail:     detail("Go Developer", "Acme", "Berlin", "de", true),
			wantReason: ReasonLanguage,
		},
		{
			name: "missing language rejected",
			detail: extract.CardDetail{
				Title:     extract.Present("Go Developer"),
				EasyApply: extract.Present(true),
			},
			wantReason: ReasonLanguage,
		},
		{
			name:       "title filter reports its place",
			detail:     detail("Senior Go Developer", "Acme", "Berlin", "en", true),
			wantReason: models.FilterTitle,
		},
		{
			name:       "company filter is case insensitive",
			detail:     detail("Go Developer", "Global STAFFING GmbH", "Berlin", "en", true),
			wantReason: models.FilterCompany,
		},
		{
			name:       "company filter matches the parent brand",
			detail:     detail("Go Developer", "Google Inc", "Berlin", "en", true),
			wantReason: models.FilterCompany,
		},
		{
			name:         "unrelated company passes the same filter",
			detail:       detail("Go Developer", "Alphabet", "Berlin", "en", true),
			wantEligible: true,
		},
		{
			name:       "location filter matches substrings",
			detail:     detail("Go Developer", "Acme", "Berlin (On-Site)", "en", true),
			wantReason: models.FilterLocation,
		},
		{
			name:         "disabled filter is skipped",
			detail:       detail("Lead Go Developer", "Acme", "Berlin", "en", true),
			wantEligible: true,
		},
		{
			name: "missing field never matches a filter",
			detail: extract.CardDetail{
				Title:     extract.Present("Go Developer"),
				Language:  extract.Present("en"),
				EasyApply: extract.Present(true),
			},
			wantEligible: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligible, reason := Evaluate(tt.detail, tt.easyApplyOnly, filters)
			assert.Equal(t, tt.wantEligible, eligible)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestMatchesIgnoredAccount(t *testing.T) {
	accounts := []string{"Evil Corp Recruiting", "Spam Agency"}

	tests := []struct {
		name string
		want bool
	}{
		{"Evil Corp Recruiting", true},
		{"evil corp recruiting gmbh", true}, // account contained in name
		{"Evil Corp", true},                 // name contained in account
		{"Spam Agency", true},
		{"Acme", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchesIgnoredAccount(tt.name, accounts), tt.name)
	}
}

func TestContainsIgnoredKeyword(t *testing.T) {
	keywords := []string{"crypto", "mlm"}

	kw, found := ContainsIgnoredKeyword("Join our CRYPTO revolution", keywords)
	assert.True(t, found)
	assert.Equal(t, "crypto", kw)

	_, found = ContainsIgnoredKeyword("We are hiring Go engineers", keywords)
	assert.False(t, found)

	_, found = ContainsIgnoredKeyword("anything", nil)
	assert.False(t, found)
}
