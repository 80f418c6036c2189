package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"linkedin-radar/internal/models"
)

// GetSocialChannel loads one crawlable channel.
func (r *Repository) GetSocialChannel(ctx context.Context, id int64) (*models.SocialChannel, error) {
	ch := models.SocialChannel{ID: id}
	err := r.db.QueryRow(ctx,
		`SELECT name, url, last_crawl_at FROM social_channels WHERE id = $1`, id).
		Scan(&ch.Name, &ch.URL, &ch.LastCrawlAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("social channel %d not found", id)
		}
		return nil, fmt.Errorf("failed to load social channel %d: %w", id, err)
	}
	return &ch, nil
}

// ListSocialChannels returns every crawlable channel.
func (r *Repository) ListSocialChannels(ctx context.Context) ([]models.SocialChannel, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, url, last_crawl_at FROM social_channels ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list social channels: %w", err)
	}
	defer rows.Close()

	var channels []models.SocialChannel
	for rows.Next() {
		var ch models.SocialChannel
		if err := rows.Scan(&ch.ID, &ch.Name, &ch.URL, &ch.LastCrawlAt); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

// UpdateSocialChannelCrawl stamps the channel's last crawl time.
func (r *Repository) UpdateSocialChannelCrawl(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE social_channels SET last_crawl_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to update crawl time for channel %d: %w", id, err)
	}
	return nil
}

// UpsertPost stores one channel post, keyed on its network id. Re-crawls
// refresh the body and counts.
func (r *Repository) UpsertPost(ctx context.Context, post *models.Post) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO posts (channel_id, network_id, body, share_count, views_count)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (network_id) DO UPDATE SET
			body = EXCLUDED.body,
			share_count = EXCLUDED.share_count,
			views_count = EXCLUDED.views_count`,
		post.ChannelID, post.NetworkID, post.Body, post.ShareCount, post.ViewsCount)
	if err != nil {
		return fmt.Errorf("failed to upsert post %s: %w", post.NetworkID, err)
	}
	return nil
}
