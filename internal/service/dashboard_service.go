package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/plantmetrics/backend-go/internal/cache"
	"github.com/plantmetrics/backend-go/internal/domain"
	"github.com/plantmetrics/backend-go/internal/metrics"
	"github.com/plantmetrics/backend-go/internal/repository"
)

// DashboardSummary is the resolved KPI dashboard for one tenant.
type DashboardSummary struct {
	Industry      domain.IndustryType `json:"industry"`
	IndustryLabel string              `json:"industry_label"`
	Kpis          metrics.Summary     `json:"kpis"`
}

type DashboardService struct {
	repo     repository.MetricRepository
	resolver *metrics.Resolver
	cache    cache.KpiSummaryCache
}

func NewDashboardService(repo repository.MetricRepository, resolver *metrics.Resolver, cacheImpl cache.KpiSummaryCache) *DashboardService {
	if resolver == nil {
		resolver = metrics.NewResolver(nil, nil)
	}
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopKpiSummaryCache()
	}
	return &DashboardService{repo: repo, resolver: resolver, cache: cacheImpl}
}

// GetSummary resolves the tenant's KPI dashboard. An explicit industry
// override takes precedence over the tenant's configured vertical; unknown
// values degrade to the default industry. Metrics missing from the snapshot
// are silently omitted.
func (s *DashboardService) GetSummary(ctx context.Context, tenantID, industryOverride string) (*DashboardSummary, error) {
	var industry domain.IndustryType
	if industryOverride != "" {
		industry = domain.ParseIndustry(industryOverride)
	} else {
		var err error
		industry, err = s.repo.GetTenantIndustry(ctx, tenantID)
		if err != nil {
			return nil, err
		}
	}

	if summary, ok, err := s.cache.GetSummary(ctx, tenantID, industry); err == nil && ok {
		return s.buildResponse(industry, summary), nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get summary failed")
	}

	snapshot, err := s.repo.GetSnapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	summary := s.resolver.Resolve(industry, snapshot)

	if err := s.cache.SetSummary(ctx, tenantID, industry, summary); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache set summary failed")
	}

	return s.buildResponse(industry, summary), nil
}

// UpdateSnapshot upserts raw metric pairs for a tenant and drops any cached
// summaries so the next read reflects the new values.
func (s *DashboardService) UpdateSnapshot(ctx context.Context, tenantID string, pairs domain.MetricSnapshot) error {
	if len(pairs) == 0 {
		return fmt.Errorf("no metric pairs provided")
	}

	if err := s.repo.UpsertSnapshot(ctx, tenantID, pairs); err != nil {
		return err
	}

	// Stale summaries expire with the TTL anyway, so a failed invalidation
	// degrades rather than fails the write.
	if err := s.cache.InvalidateTenant(ctx, tenantID); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache invalidate failed")
	}

	return nil
}

func (s *DashboardService) buildResponse(industry domain.IndustryType, summary metrics.Summary) *DashboardSummary {
	if summary == nil {
		summary = metrics.Summary{}
	}

	return &DashboardSummary{
		Industry:      industry,
		IndustryLabel: s.resolver.Profile(industry).Label,
		Kpis:          summary,
	}
}
