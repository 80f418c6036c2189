// Text normalization helpers for outgoing messages.

package notify

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	standaloneHashtagLabel = regexp.MustCompile(`(?im)^[ \t]*hashtag[ \t]*$\n?`)
	inlineHashtagLabel     = regexp.MustCompile(`(?i)\bhashtag\s+(#[\w_])`)
)

// CollapseNewlines collapses runs of blank lines down to maxConsecutive.
// A blank line is a line containing only whitespace. Line endings are
// normalized to \n and the result is trimmed at both ends.
func CollapseNewlines(text string, maxConsecutive int) string {
	if maxConsecutive < 0 {
		maxConsecutive = 0
	}
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	normalized = strings.TrimSpace(normalized)

	run := regexp.MustCompile(fmt.Sprintf(`\n(?:[ \t]*\n){%d,}`, maxConsecutive+1))
	return run.ReplaceAllString(normalized, strings.Repeat("\n", maxConsecutive+1))
}

// StripAccessibilityHashtagLabels removes LinkedIn's screen-reader "hashtag"
// labels while keeping real hashtags: standalone "hashtag" lines are dropped,
// and "hashtag #EdTech" becomes "#EdTech".
func StripAccessibilityHashtagLabels(text string) string {
	text = standaloneHashtagLabel.ReplaceAllString(text, "")
	return inlineHashtagLabel.ReplaceAllString(text, "$1")
}

// NormalizeJobMessageSpacing enforces single-blank-line spacing:
// one blank line after "Region:" and "Easy Apply:" lines, one blank line
// before a "Location:" line.
func NormalizeJobMessageSpacing(text string) string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	normalized = strings.TrimSpace(normalized)

	lines := strings.Split(normalized, "\n")
	var result []string

	startsWith := func(label, line string) bool {
		return strings.HasPrefix(strings.ToLower(strings.TrimLeft(line, " \t")), label)
	}

	i := 0
	for i < len(lines) {
		line := lines[i]
		result = append(result, line)

		if startsWith("region:", line) || startsWith("easy apply:", line) {
			// Swallow existing blank lines and emit exactly one.
			j := i + 1
			for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
				j++
			}
			if j < len(lines) {
				result = append(result, "")
			}
			i = j
			continue
		}

		if i+1 < len(lines) && startsWith("location:", lines[i+1]) {
			if len(result) > 0 && result[len(result)-1] != "" {
				result = append(result, "")
			}
		}
		i++
	}

	return strings.TrimSpace(strings.Join(result, "\n"))
}

// LimitWords truncates text to maxWords, appending an ellipsis when cut.
func LimitWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ") + " ..."
}

// HTMLLink renders an escaped anchor tag.
func HTMLLink(url, text string) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(url), html.EscapeString(text))
}

// TelegramTextPurify replaces characters Telegram treats specially in
// scraped text.
func TelegramTextPurify(text string) string {
	return strings.NewReplacer("#", "-", "&", "-").Replace(text)
}

// HashtagBlock returns a "#kw" line per keyword found in body, preceded by
// one blank line, or "" when nothing matches.
func HashtagBlock(body string, keywords []string) string {
	bodyLower := strings.ToLower(body)
	var hits []string
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(bodyLower, strings.ToLower(kw)) {
			hits = append(hits, "#"+kw)
		}
	}
	if len(hits) == 0 {
		return ""
	}
	return "\n\n" + strings.Join(hits, "\n")
}
