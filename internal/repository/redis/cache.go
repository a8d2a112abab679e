package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/auraleaf/aura-api/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	feedCacheKey = "feed:posts"
	feedCacheTTL = 30 * time.Second
)

// FeedCache caches the assembled feed page in Redis. A short TTL keeps the
// feed fresh even if an invalidation is missed.
type FeedCache struct {
	client *Client
}

// NewFeedCache creates a new feed cache
func NewFeedCache(client *Client) *FeedCache {
	return &FeedCache{client: client}
}

// GetPosts returns the cached feed page, reporting a miss on any error
func (c *FeedCache) GetPosts(ctx context.Context) ([]domain.Post, bool) {
	data, err := c.client.rdb.Get(ctx, feedCacheKey).Bytes()
	if err != nil {
		return nil, false // cache miss
	}

	var posts []domain.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		log.Warn().Err(err).Msg("failed to unmarshal cached feed, dropping entry")
		c.client.rdb.Del(ctx, feedCacheKey)
		return nil, false
	}

	return posts, true
}

// SetPosts caches the feed page
func (c *FeedCache) SetPosts(ctx context.Context, posts []domain.Post) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return err
	}

	return c.client.rdb.Set(ctx, feedCacheKey, data, feedCacheTTL).Err()
}

// Invalidate drops the cached feed page
func (c *FeedCache) Invalidate(ctx context.Context) error {
	return c.client.rdb.Del(ctx, feedCacheKey).Err()
}
