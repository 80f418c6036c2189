package store

import (
	"context"
	"fmt"
	"unicode/utf8"

	"linkedin-radar/internal/models"
)

// Field limits carried over from the record schema.
const (
	maxTitleLen    = 300
	maxLocationLen = 200
	maxCompanyLen  = 100
	maxLanguageLen = 40
)

// UpsertJob stores one crawled card, keyed on its network id: re-crawling
// the same identifier updates the existing row. created reports whether the
// row was inserted for the first time, which is what gates notification.
// Cards without a network id are plain inserts.
func (r *Repository) UpsertJob(ctx context.Context, job *models.Job) (id int64, created bool, err error) {
	if job.NetworkID == "" {
		err = r.db.QueryRow(ctx, `
			INSERT INTO jobs (url, title, company, location, description, language,
			                  company_size, easy_apply, search_id, eligible, rejected_reason)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id`,
			job.URL, job.Title, job.Company, job.Location, job.Description, job.Language,
			job.CompanySize, job.EasyApply, job.SearchID, job.Eligible, nullIfEmpty(job.RejectedReason)).
			Scan(&id)
		if err != nil {
			return 0, false, fmt.Errorf("failed to insert job: %w", err)
		}
		return id, true, nil
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO jobs (network_id, url, title, company, location, description, language,
		                  company_size, easy_apply, search_id, eligible, rejected_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (network_id) DO UPDATE SET
			url = EXCLUDED.url,
			title = EXCLUDED.title,
			company = EXCLUDED.company,
			location = EXCLUDED.location,
			description = EXCLUDED.description,
			language = EXCLUDED.language,
			company_size = EXCLUDED.company_size,
			easy_apply = EXCLUDED.easy_apply,
			search_id = EXCLUDED.search_id,
			eligible = EXCLUDED.eligible,
			rejected_reason = EXCLUDED.rejected_reason
		RETURNING id, (xmax = 0)`,
		job.NetworkID, job.URL, job.Title, job.Company, job.Location, job.Description, job.Language,
		job.CompanySize, job.EasyApply, job.SearchID, job.Eligible, nullIfEmpty(job.RejectedReason)).
		Scan(&id, &created)
	if err != nil {
		return 0, false, fmt.Errorf("failed to upsert job %s: %w", job.NetworkID, err)
	}
	return id, created, nil
}

// SetMatchedKeywords replaces the matched-keyword set of a job.
func (r *Repository) SetMatchedKeywords(ctx context.Context, jobID int64, keywordIDs []int64) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM job_matched_keywords WHERE job_id = $1`, jobID); err != nil {
		return fmt.Errorf("failed to clear matched keywords for job %d: %w", jobID, err)
	}
	for _, keywordID := range keywordIDs {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO job_matched_keywords (job_id, keyword_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, jobID, keywordID); err != nil {
			return fmt.Errorf("failed to attach keyword %d to job %d: %w", keywordID, jobID, err)
		}
	}
	return nil
}

// UpdateFoundKeywords stores the comma-separated tokens found in the job's
// description.
func (r *Repository) UpdateFoundKeywords(ctx context.Context, jobID int64, found string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE jobs SET found_keywords = $1 WHERE id = $2`, found, jobID)
	if err != nil {
		return fmt.Errorf("failed to update found keywords for job %d: %w", jobID, err)
	}
	return nil
}

// GetJobKeywordScan loads what the deferred description re-scan needs: the
// job's description and its search's keywords.
func (r *Repository) GetJobKeywordScan(ctx context.Context, jobID int64) (string, []models.Keyword, error) {
	var description string
	var searchID *int64
	err := r.db.QueryRow(ctx,
		`SELECT description, search_id FROM jobs WHERE id = $1`, jobID).
		Scan(&description, &searchID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load job %d: %w", jobID, err)
	}
	if searchID == nil {
		return description, nil, nil
	}
	keywords, err := r.searchKeywords(ctx, *searchID)
	if err != nil {
		return "", nil, err
	}
	return description, keywords, nil
}

// CreateIgnoredJob appends a rejected card, truncated to column limits.
func (r *Repository) CreateIgnoredJob(ctx context.Context, ig *models.IgnoredJob) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO ignored_jobs (url, title, company, location, description, language, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ig.URL,
		truncate(ig.Title, maxTitleLen),
		truncate(ig.Company, maxCompanyLen),
		truncate(ig.Location, maxLocationLen),
		ig.Description,
		truncate(ig.Language, maxLanguageLen),
		ig.Reason)
	if err != nil {
		return fmt.Errorf("failed to store ignored job: %w", err)
	}
	return nil
}

// RecentIgnoredJobs returns the newest rejected cards, most recent first.
func (r *Repository) RecentIgnoredJobs(ctx context.Context, limit int) ([]models.IgnoredJob, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, url, title, company, location, description, language, reason
		FROM ignored_jobs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ignored jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.IgnoredJob
	for rows.Next() {
		var ig models.IgnoredJob
		if err := rows.Scan(&ig.ID, &ig.URL, &ig.Title, &ig.Company, &ig.Location,
			&ig.Description, &ig.Language, &ig.Reason); err != nil {
			return nil, err
		}
		jobs = append(jobs, ig)
	}
	return jobs, rows.Err()
}

// ListTagNames returns all tag names for the ignored-job scan.
func (r *Repository) ListTagNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// truncate cuts s to at most max bytes without splitting a rune, so the
// result is always valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
