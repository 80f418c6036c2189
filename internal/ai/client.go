// Package ai generates cover letters for matched jobs. The pipeline
// tolerates its absence: a nil Generator means notifications go out
// without a letter.
package ai

import (
	"context"
	"fmt"
)

// Generator produces a cover letter from a profile summary and a job
// description.
type Generator interface {
	Generate(ctx context.Context, profileSummary, jobDescription string) (string, error)
}

func buildSystemPrompt() string {
	return `You are a professional cover letter writer.
I will provide a short summary of a candidate's profile and a job description.

Task:
1. Write a concise, specific cover letter (under 200 words) connecting the candidate's background to the role.
2. Do not invent experience the profile summary does not mention.
3. Return only the letter text, no salutation placeholders, no markdown.`
}

func buildUserPrompt(profileSummary, jobDescription string) string {
	return fmt.Sprintf("Candidate profile:\n%s\n\nJob description:\n%s", profileSummary, jobDescription)
}
