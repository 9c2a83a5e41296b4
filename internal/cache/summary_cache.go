package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plantmetrics/backend-go/internal/config"
	"github.com/plantmetrics/backend-go/internal/domain"
	"github.com/plantmetrics/backend-go/internal/metrics"
)

const (
	kpiSummaryKeyPrefix = "metrics:summary"
	scanBatchSize       = 100
)

// KpiSummaryCache caches resolved dashboard summaries per tenant and
// industry.
type KpiSummaryCache interface {
	GetSummary(ctx context.Context, tenantID string, industry domain.IndustryType) (metrics.Summary, bool, error)
	SetSummary(ctx context.Context, tenantID string, industry domain.IndustryType, summary metrics.Summary) error
	InvalidateTenant(ctx context.Context, tenantID string) error
}

type redisKpiSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopKpiSummaryCache struct{}

func NewKpiSummaryCache(cfg config.CacheConfig) (KpiSummaryCache, error) {
	if !cfg.Enabled {
		return &noopKpiSummaryCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisKpiSummaryCache{client: client, ttl: ttl}, nil
}

func NewNoopKpiSummaryCache() KpiSummaryCache {
	return &noopKpiSummaryCache{}
}

func (c *redisKpiSummaryCache) GetSummary(ctx context.Context, tenantID string, industry domain.IndustryType) (metrics.Summary, bool, error) {
	key := buildKpiSummaryKey(tenantID, industry)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary metrics.Summary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode kpi summary cache: %w", err)
	}

	return summary, true, nil
}

func (c *redisKpiSummaryCache) SetSummary(ctx context.Context, tenantID string, industry domain.IndustryType, summary metrics.Summary) error {
	key := buildKpiSummaryKey(tenantID, industry)
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode kpi summary cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisKpiSummaryCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	prefix := fmt.Sprintf("%s:%s:", kpiSummaryKeyPrefix, tenantID)
	return deleteKeysWithPrefix(ctx, c.client, prefix, scanBatchSize)
}

func (n *noopKpiSummaryCache) GetSummary(ctx context.Context, tenantID string, industry domain.IndustryType) (metrics.Summary, bool, error) {
	return nil, false, nil
}

func (n *noopKpiSummaryCache) SetSummary(ctx context.Context, tenantID string, industry domain.IndustryType, summary metrics.Summary) error {
	return nil
}

func (n *noopKpiSummaryCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	return nil
}

func buildKpiSummaryKey(tenantID string, industry domain.IndustryType) string {
	return fmt.Sprintf("%s:%s:%s", kpiSummaryKeyPrefix, tenantID, industry)
}
