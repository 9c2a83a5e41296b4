package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plantmetrics/backend-go/internal/config"
	"github.com/plantmetrics/backend-go/internal/domain"
)

const forecastKeyPrefix = "forecast:plan"

// ForecastCache caches the derived demand plan per tenant.
type ForecastCache interface {
	GetPlan(ctx context.Context, tenantID string) (*domain.DemandPlan, bool, error)
	SetPlan(ctx context.Context, tenantID string, plan *domain.DemandPlan) error
	Invalidate(ctx context.Context, tenantID string) error
}

type redisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopForecastCache struct{}

func NewForecastCache(cfg config.CacheConfig) (ForecastCache, error) {
	if !cfg.Enabled {
		return &noopForecastCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisForecastCache{client: client, ttl: ttl}, nil
}

func NewNoopForecastCache() ForecastCache {
	return &noopForecastCache{}
}

func (c *redisForecastCache) GetPlan(ctx context.Context, tenantID string) (*domain.DemandPlan, bool, error) {
	payload, err := c.client.Get(ctx, buildForecastKey(tenantID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var plan domain.DemandPlan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return nil, false, fmt.Errorf("decode demand plan cache: %w", err)
	}

	return &plan, true, nil
}

func (c *redisForecastCache) SetPlan(ctx context.Context, tenantID string, plan *domain.DemandPlan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode demand plan cache: %w", err)
	}

	if err := c.client.Set(ctx, buildForecastKey(tenantID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisForecastCache) Invalidate(ctx context.Context, tenantID string) error {
	if err := c.client.Del(ctx, buildForecastKey(tenantID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (n *noopForecastCache) GetPlan(ctx context.Context, tenantID string) (*domain.DemandPlan, bool, error) {
	return nil, false, nil
}

func (n *noopForecastCache) SetPlan(ctx context.Context, tenantID string, plan *domain.DemandPlan) error {
	return nil
}

func (n *noopForecastCache) Invalidate(ctx context.Context, tenantID string) error {
	return nil
}

func buildForecastKey(tenantID string) string {
	return fmt.Sprintf("%s:%s", forecastKeyPrefix, tenantID)
}
