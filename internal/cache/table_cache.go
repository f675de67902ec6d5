package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"datachat/internal/pkg/tabular"
)

// TableCache keeps parsed tables in redis keyed by dataset id, so repeated
// searches against the same dataset skip re-parsing the source file.
// Dataset ids are fresh UUIDs per upload, so entries only need explicit
// invalidation on bulk clear.
type TableCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewTableCache(client *redisv9.Client, ttl time.Duration) *TableCache {
	if ttl <= 0 {
		ttl = 300 * time.Second
	}
	return &TableCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *TableCache) Get(ctx context.Context, datasetID string) (*tabular.Table, bool, error) {
	raw, err := c.client.Get(ctx, c.tableKey(datasetID)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get table failed: %w", err)
	}

	var table tabular.Table
	if err := json.Unmarshal([]byte(raw), &table); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached table failed: %w", err)
	}
	return &table, true, nil
}

func (c *TableCache) Set(ctx context.Context, datasetID string, table *tabular.Table) error {
	payload, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("marshal table cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.tableKey(datasetID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set table failed: %w", err)
	}
	return nil
}

func (c *TableCache) Invalidate(ctx context.Context, datasetID string) error {
	if err := c.client.Del(ctx, c.tableKey(datasetID)).Err(); err != nil {
		return fmt.Errorf("redis delete table failed: %w", err)
	}
	return nil
}

func (c *TableCache) tableKey(datasetID string) string {
	return fmt.Sprintf("dataset:table:%s", datasetID)
}
