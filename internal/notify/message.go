// Package notify formats matched records and delivers them to channels.
package notify

import (
	"strconv"
	"strings"
)

// JobData is the snapshot that a rendered notification is built from.
type JobData struct {
	ID          int64  `json:"id"`
	NetworkID   string `json:"network_id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Language    string `json:"language"`
	CompanySize string `json:"company_size"`
	EasyApply   bool   `json:"easy_apply"`
}

// EasyApplyMark is the marker substituted for the easy_apply placeholder.
func EasyApplyMark(easyApply bool) string {
	if easyApply {
		return "✅"
	}
	return "❌"
}

// RenderJobMessage substitutes a search's template placeholders with job
// data, then applies the spacing rules.
//
// Placeholders are plain words replaced literally, in a fixed order:
// lang, title, location, company, size, easy_apply, id, keywords, url.
func RenderJobMessage(template string, job JobData, keywords []string, coverLetter string) string {
	message := template
	message = strings.ReplaceAll(message, "lang", strings.ToUpper(job.Language))
	message = strings.ReplaceAll(message, "title", job.Title)
	message = strings.ReplaceAll(message, "location", job.Location)
	message = strings.ReplaceAll(message, "company", job.Company)
	message = strings.ReplaceAll(message, "size", job.CompanySize)
	message = strings.ReplaceAll(message, "easy_apply", EasyApplyMark(job.EasyApply))
	message = strings.ReplaceAll(message, "id", strconv.FormatInt(job.ID, 10))
	message = strings.ReplaceAll(message, "keywords", HashtagBlock(job.Description, keywords))
	// One blank line before the URL.
	message = strings.ReplaceAll(message, "url", "\n\n"+job.URL)

	if coverLetter != "" {
		message = message + "\n\n" + coverLetter
	}

	message = NormalizeJobMessageSpacing(message)
	return CollapseNewlines(message, 1)
}
