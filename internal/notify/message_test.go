package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleJob() JobData {
	return JobData{
		ID:          42,
		NetworkID:   "4000012345",
		URL:         "https://www.linkedin.com/jobs/view/4000012345",
		Title:       "Backend Developer",
		Company:     "Acme",
		Location:    "Berlin, Germany",
		Description: "We run Go services in production.",
		Language:    "en",
		CompanySize: "51-200",
		EasyApply:   true,
	}
}

func TestRenderJobMessage(t *testing.T) {
	template := "title at company (size)\nRegion: location\neasy_apply keywords url"

	got := RenderJobMessage(template, sampleJob(), []string{"go", "rust"}, "")

	assert.Contains(t, got, "Backend Developer at Acme (51-200)")
	assert.Contains(t, got, "Region: Berlin, Germany")
	assert.Contains(t, got, EasyApplyMark(true))
	assert.Contains(t, got, "#go")
	assert.NotContains(t, got, "#rust", "only description hits become hashtags")
	assert.Contains(t, got, "https://www.linkedin.com/jobs/view/4000012345")
	assert.NotContains(t, got, "\n\n\n", "blank runs are collapsed")
}

func TestRenderJobMessageSimpleTemplate(t *testing.T) {
	job := JobData{Company: "Acme", Location: "NYC", URL: "http://x"}
	got := RenderJobMessage("Job at company in location. url", job, nil, "")
	assert.Equal(t, "Job at Acme in NYC. \n\nhttp://x", got)
}

func TestRenderJobMessageLanguageIsUppercased(t *testing.T) {
	got := RenderJobMessage("Lang: lang url", sampleJob(), nil, "")
	assert.Contains(t, got, "Lang: EN")
}

func TestRenderJobMessageAppendsCoverLetter(t *testing.T) {
	letter := "Dear hiring team, I build backend services in Go."
	got := RenderJobMessage("title url", sampleJob(), nil, letter)
	assert.Contains(t, got, letter)

	got = RenderJobMessage("title url", sampleJob(), nil, "")
	assert.NotContains(t, got, "Dear hiring team")
}

func TestRenderJobMessageURLOnOwnParagraph(t *testing.T) {
	got := RenderJobMessage("title url", sampleJob(), nil, "")
	assert.Contains(t, got, "Backend Developer \n\nhttps://")
}

func TestEasyApplyMark(t *testing.T) {
	assert.Equal(t, "✅", EasyApplyMark(true))
	assert.Equal(t, "❌", EasyApplyMark(false))
}
