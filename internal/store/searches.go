package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"linkedin-radar/internal/models"
)

// GetJobSearch loads one search with its keywords, enabled ignore filters,
// ignored accounts and output channel, the full snapshot a crawl needs.
func (r *Repository) GetJobSearch(ctx context.Context, id int64) (*models.JobSearch, error) {
	js := models.JobSearch{ID: id}
	var (
		message        *string
		lastCrawlAt    *time.Time
		lastCrawlCount *int
		channelID      *int64
		channelName    *string
		channelChatID  *int64
	)

	err := r.db.QueryRow(ctx, `
		SELECT s.url, s.name, s.enable, s.message, s.priority, s.page_count,
		       s.just_easy_apply, s.last_crawl_at, s.last_crawl_count,
		       c.id, c.name, c.chat_id
		FROM job_searches s
		LEFT JOIN channels c ON c.id = s.output_channel_id
		WHERE s.id = $1`, id).
		Scan(&js.URL, &js.Name, &js.Enable, &message, &js.Priority, &js.PageCount,
			&js.JustEasyApply, &lastCrawlAt, &lastCrawlCount,
			&channelID, &channelName, &channelChatID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("job search %d not found", id)
		}
		return nil, fmt.Errorf("failed to load job search %d: %w", id, err)
	}

	if message != nil {
		js.Message = *message
	}
	js.LastCrawlAt = lastCrawlAt
	if lastCrawlCount != nil {
		js.LastCrawlCount = *lastCrawlCount
	}
	if channelID != nil {
		js.OutputChannel = &models.Channel{ID: *channelID}
		if channelName != nil {
			js.OutputChannel.Name = *channelName
		}
		if channelChatID != nil {
			js.OutputChannel.ChatID = *channelChatID
		}
	}

	if js.Keywords, err = r.searchKeywords(ctx, id); err != nil {
		return nil, err
	}
	if js.IgnoreFilters, err = r.searchIgnoreFilters(ctx, id); err != nil {
		return nil, err
	}
	if js.IgnoredAccounts, err = r.searchIgnoredAccounts(ctx, id); err != nil {
		return nil, err
	}
	return &js, nil
}

func (r *Repository) searchKeywords(ctx context.Context, searchID int64) ([]models.Keyword, error) {
	rows, err := r.db.Query(ctx, `
		SELECT k.id, k.name, k.words
		FROM keywords k
		JOIN job_search_keywords jk ON jk.keyword_id = k.id
		WHERE jk.job_search_id = $1
		ORDER BY k.id`, searchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load keywords: %w", err)
	}
	defer rows.Close()

	var keywords []models.Keyword
	for rows.Next() {
		var k models.Keyword
		if err := rows.Scan(&k.ID, &k.Name, &k.Words); err != nil {
			return nil, err
		}
		keywords = append(keywords, k)
	}
	return keywords, rows.Err()
}

func (r *Repository) searchIgnoreFilters(ctx context.Context, searchID int64) ([]models.IgnoreFilter, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.id, f.place, f.keyword, f.enable, f.category_id
		FROM ignore_filters f
		JOIN job_search_ignore_filters jf ON jf.ignore_filter_id = f.id
		WHERE jf.job_search_id = $1 AND f.enable
		ORDER BY f.id`, searchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignore filters: %w", err)
	}
	defer rows.Close()

	var filters []models.IgnoreFilter
	for rows.Next() {
		var f models.IgnoreFilter
		if err := rows.Scan(&f.ID, &f.Place, &f.Keyword, &f.Enable, &f.CategoryID); err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, rows.Err()
}

func (r *Repository) searchIgnoredAccounts(ctx context.Context, searchID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.account_name
		FROM ignored_accounts a
		JOIN ignored_account_job_searches aj ON aj.ignored_account_id = a.id
		WHERE aj.job_search_id = $1 AND a.account_name IS NOT NULL`, searchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignored accounts: %w", err)
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

// ListEnabledJobSearches returns enabled searches, highest priority first.
// Relations are not loaded; crawl tasks fetch the full snapshot themselves.
func (r *Repository) ListEnabledJobSearches(ctx context.Context) ([]models.JobSearch, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, priority, page_count
		FROM job_searches
		WHERE enable
		ORDER BY priority DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job searches: %w", err)
	}
	defer rows.Close()

	var searches []models.JobSearch
	for rows.Next() {
		js := models.JobSearch{Enable: true}
		if err := rows.Scan(&js.ID, &js.Name, &js.Priority, &js.PageCount); err != nil {
			return nil, err
		}
		searches = append(searches, js)
	}
	return searches, rows.Err()
}

// UpdateJobSearchCrawl stamps the last crawl time and result count.
func (r *Repository) UpdateJobSearchCrawl(ctx context.Context, id int64, at time.Time, count int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE job_searches SET last_crawl_at = $1, last_crawl_count = $2 WHERE id = $3`,
		at, count, id)
	if err != nil {
		return fmt.Errorf("failed to update crawl stats for search %d: %w", id, err)
	}
	return nil
}

// GetExpressionSearch loads one expression search with its ignored-category
// keywords, ignored accounts and output channel.
func (r *Repository) GetExpressionSearch(ctx context.Context, id int64) (*models.ExpressionSearch, error) {
	es := models.ExpressionSearch{ID: id}
	var (
		channelID     *int64
		channelChatID *int64
	)

	err := r.db.QueryRow(ctx, `
		SELECT s.url, s.name, s.enable, s.last_crawl_at, c.id, c.chat_id
		FROM expression_searches s
		LEFT JOIN channels c ON c.id = s.output_channel_id
		WHERE s.id = $1`, id).
		Scan(&es.URL, &es.Name, &es.Enable, &es.LastCrawlAt, &channelID, &channelChatID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("expression search %d not found", id)
		}
		return nil, fmt.Errorf("failed to load expression search %d: %w", id, err)
	}
	if channelID != nil {
		es.OutputChannel = &models.Channel{ID: *channelID}
		if channelChatID != nil {
			es.OutputChannel.ChatID = *channelChatID
		}
	}

	// Keywords of enabled filters in the search's enabled categories.
	rows, err := r.db.Query(ctx, `
		SELECT f.keyword
		FROM ignore_filters f
		JOIN ignore_filter_categories cat ON cat.id = f.category_id
		JOIN expression_search_ignore_categories ec ON ec.category_id = cat.id
		WHERE ec.expression_search_id = $1 AND f.enable AND cat.enable`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignored keywords: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kw string
		if err := rows.Scan(&kw); err != nil {
			return nil, err
		}
		es.IgnoredKeywords = append(es.IgnoredKeywords, kw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	accounts, err := r.db.Query(ctx, `
		SELECT a.account_name
		FROM ignored_accounts a
		JOIN ignored_account_expression_searches ae ON ae.ignored_account_id = a.id
		WHERE ae.expression_search_id = $1 AND a.account_name IS NOT NULL`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignored accounts: %w", err)
	}
	defer accounts.Close()
	for accounts.Next() {
		var name string
		if err := accounts.Scan(&name); err != nil {
			return nil, err
		}
		es.IgnoredAccounts = append(es.IgnoredAccounts, name)
	}
	return &es, accounts.Err()
}

// ListEnabledExpressionSearches returns enabled expression searches without
// relations.
func (r *Repository) ListEnabledExpressionSearches(ctx context.Context) ([]models.ExpressionSearch, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name FROM expression_searches WHERE enable ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list expression searches: %w", err)
	}
	defer rows.Close()

	var searches []models.ExpressionSearch
	for rows.Next() {
		es := models.ExpressionSearch{Enable: true}
		if err := rows.Scan(&es.ID, &es.Name); err != nil {
			return nil, err
		}
		searches = append(searches, es)
	}
	return searches, rows.Err()
}

// UpdateExpressionSearchCrawl stamps the last crawl time.
func (r *Repository) UpdateExpressionSearchCrawl(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE expression_searches SET last_crawl_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to update crawl stats for expression search %d: %w", id, err)
	}
	return nil
}
