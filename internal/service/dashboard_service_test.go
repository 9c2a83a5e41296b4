package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmetrics/backend-go/internal/domain"
	"github.com/plantmetrics/backend-go/internal/metrics"
)

type fakeMetricRepo struct {
	industry      domain.IndustryType
	snapshot      domain.MetricSnapshot
	snapshotCalls int
}

func (f *fakeMetricRepo) GetTenantIndustry(ctx context.Context, tenantID string) (domain.IndustryType, error) {
	return f.industry, nil
}

func (f *fakeMetricRepo) GetSnapshot(ctx context.Context, tenantID string) (domain.MetricSnapshot, error) {
	f.snapshotCalls++
	return f.snapshot, nil
}

func (f *fakeMetricRepo) UpsertSnapshot(ctx context.Context, tenantID string, pairs domain.MetricSnapshot) error {
	if f.snapshot == nil {
		f.snapshot = domain.MetricSnapshot{}
	}
	for key, pair := range pairs {
		f.snapshot[key] = pair
	}
	return nil
}

type memorySummaryCache struct {
	entries map[string]metrics.Summary
}

func (m *memorySummaryCache) key(tenantID string, industry domain.IndustryType) string {
	return tenantID + ":" + string(industry)
}

func (m *memorySummaryCache) GetSummary(ctx context.Context, tenantID string, industry domain.IndustryType) (metrics.Summary, bool, error) {
	summary, ok := m.entries[m.key(tenantID, industry)]
	return summary, ok, nil
}

func (m *memorySummaryCache) SetSummary(ctx context.Context, tenantID string, industry domain.IndustryType, summary metrics.Summary) error {
	if m.entries == nil {
		m.entries = make(map[string]metrics.Summary)
	}
	m.entries[m.key(tenantID, industry)] = summary
	return nil
}

func (m *memorySummaryCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	for key := range m.entries {
		if strings.HasPrefix(key, tenantID+":") {
			delete(m.entries, key)
		}
	}
	return nil
}

func TestGetSummaryResolvesTenantIndustry(t *testing.T) {
	repo := &fakeMetricRepo{
		industry: domain.IndustryManufacturing,
		snapshot: domain.MetricSnapshot{
			"revenue": {Current: 284500, Previous: 261200},
			"oee":     {Current: 84.2, Previous: 81.7},
		},
	}
	svc := NewDashboardService(repo, nil, nil)

	summary, err := svc.GetSummary(context.Background(), "tenant-1", "")
	require.NoError(t, err)

	assert.Equal(t, domain.IndustryManufacturing, summary.Industry)
	assert.Equal(t, "Manufacturing", summary.IndustryLabel)
	require.Len(t, summary.Kpis, 2)

	revenue, ok := summary.Kpis.Lookup("revenue")
	require.True(t, ok)
	assert.Equal(t, "$284,500", revenue.FormattedValue)
	assert.Equal(t, domain.TrendUp, revenue.Trend)
	assert.True(t, revenue.TrendIsPositive)
}

func TestGetSummaryIndustryOverride(t *testing.T) {
	repo := &fakeMetricRepo{
		industry: domain.IndustryManufacturing,
		snapshot: domain.MetricSnapshot{
			"waste_pct": {Current: 3.1, Previous: 2.8},
		},
	}
	svc := NewDashboardService(repo, nil, nil)

	summary, err := svc.GetSummary(context.Background(), "tenant-1", "food_beverage")
	require.NoError(t, err)
	assert.Equal(t, domain.IndustryFoodBeverage, summary.Industry)

	// Unknown override degrades to the default industry instead of erroring.
	summary, err = svc.GetSummary(context.Background(), "tenant-1", "underwater_basket_weaving")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultIndustry, summary.Industry)
}

func TestGetSummaryUsesCache(t *testing.T) {
	repo := &fakeMetricRepo{
		industry: domain.IndustryRetail,
		snapshot: domain.MetricSnapshot{
			"revenue": {Current: 1000, Previous: 900},
		},
	}
	svc := NewDashboardService(repo, nil, &memorySummaryCache{})

	first, err := svc.GetSummary(context.Background(), "tenant-1", "")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.snapshotCalls)

	second, err := svc.GetSummary(context.Background(), "tenant-1", "")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.snapshotCalls, "second read should be served from cache")
	assert.Equal(t, first.Kpis, second.Kpis)
}

func TestUpdateSnapshotInvalidatesCachedSummaries(t *testing.T) {
	repo := &fakeMetricRepo{
		industry: domain.IndustryManufacturing,
		snapshot: domain.MetricSnapshot{"revenue": {Current: 1000, Previous: 900}},
	}
	svc := NewDashboardService(repo, nil, &memorySummaryCache{})

	first, err := svc.GetSummary(context.Background(), "tenant-1", "")
	require.NoError(t, err)
	revenue, ok := first.Kpis.Lookup("revenue")
	require.True(t, ok)
	assert.Equal(t, 1000.0, revenue.Value)

	err = svc.UpdateSnapshot(context.Background(), "tenant-1", domain.MetricSnapshot{
		"revenue": {Current: 1200, Previous: 1000},
	})
	require.NoError(t, err)

	second, err := svc.GetSummary(context.Background(), "tenant-1", "")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.snapshotCalls, "the write must evict the cached summary")
	revenue, ok = second.Kpis.Lookup("revenue")
	require.True(t, ok)
	assert.Equal(t, 1200.0, revenue.Value)
}

func TestUpdateSnapshotRejectsEmptyPayload(t *testing.T) {
	svc := NewDashboardService(&fakeMetricRepo{}, nil, nil)

	err := svc.UpdateSnapshot(context.Background(), "tenant-1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no metric pairs")
}

func TestGetSummaryEmptySnapshot(t *testing.T) {
	repo := &fakeMetricRepo{industry: domain.IndustryPharma, snapshot: domain.MetricSnapshot{}}
	svc := NewDashboardService(repo, nil, nil)

	summary, err := svc.GetSummary(context.Background(), "tenant-1", "")
	require.NoError(t, err)
	assert.NotNil(t, summary.Kpis)
	assert.Empty(t, summary.Kpis)
}
