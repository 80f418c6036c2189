// Package filter decides whether a crawled card is worth notifying about.
//
// Evaluation is pure: it takes an extracted snapshot plus the search's
// rules and touches no storage, so it can be unit-tested in isolation.
package filter

import (
	"strings"

	"linkedin-radar/internal/extract"
	"linkedin-radar/internal/models"
)

// Rejection reasons for the ordered gates.
const (
	ReasonEasyApply = "easy_apply"
	ReasonLanguage  = "language"
)

// Evaluate applies a search's rules to one extracted card, short-circuiting
// on the first failure. The returned reason is empty when eligible.
//
// Matching is intentionally simple substring checking: rejected records are
// retained for re-review, so false positives are cheap, while false
// negatives let undesired jobs through.
func Evaluate(detail extract.CardDetail, easyApplyOnly bool, filters []models.IgnoreFilter) (bool, string) {
	if easyApplyOnly && !detail.EasyApply.Or(false) {
		return false, ReasonEasyApply
	}

	// Exactly "en" passes; anything else, including failed detection, rejects.
	if lang, ok := detail.Language.Get(); !ok || lang != "en" {
		return false, ReasonLanguage
	}

	for _, f := range filters {
		if !f.Enable {
			continue
		}
		var field extract.Extracted[string]
		switch f.Place {
		case models.FilterTitle:
			field = detail.Title
		case models.FilterCompany:
			field = detail.Company
		case models.FilterLocation:
			field = detail.Location
		default:
			continue
		}
		// A missing field can never match a filter keyword.
		value, ok := field.Get()
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(value), f.Keyword) {
			return false, f.Place
		}
	}

	return true, ""
}

// MatchesIgnoredAccount reports whether name matches any ignored account of
// the search. Both containment directions count, so partial account names
// still hit.
func MatchesIgnoredAccount(name string, accounts []string) bool {
	if name == "" {
		return false
	}
	nameLower := strings.ToLower(name)
	for _, account := range accounts {
		if account == "" {
			continue
		}
		accountLower := strings.ToLower(account)
		if strings.Contains(nameLower, accountLower) || strings.Contains(accountLower, nameLower) {
			return true
		}
	}
	return false
}

// ContainsIgnoredKeyword reports whether body contains any of the
// lower-cased keywords, and which one hit first.
func ContainsIgnoredKeyword(body string, keywords []string) (string, bool) {
	bodyLower := strings.ToLower(body)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(bodyLower, kw) {
			return kw, true
		}
	}
	return "", false
}
