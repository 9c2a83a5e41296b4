package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmetrics/backend-go/internal/domain"
	"github.com/plantmetrics/backend-go/internal/forecast"
	"github.com/plantmetrics/backend-go/internal/inventory"
	"github.com/plantmetrics/backend-go/internal/storage"
)

type fakeInventoryRepo struct {
	items       []domain.Item
	warehouses  []domain.Warehouse
	onHand      []domain.OnHandRow
	stockByItem map[string]float64
}

func (f *fakeInventoryRepo) CountOnHand(ctx context.Context, tenantID string) (int, error) {
	return len(f.onHand), nil
}

func (f *fakeInventoryRepo) ListActiveItems(ctx context.Context, tenantID string) ([]domain.Item, error) {
	return f.items, nil
}

func (f *fakeInventoryRepo) ListWarehouses(ctx context.Context, tenantID string) ([]domain.Warehouse, error) {
	return f.warehouses, nil
}

func (f *fakeInventoryRepo) ClaimSeed(ctx context.Context, tenantID string) (bool, error) {
	return true, nil
}

func (f *fakeInventoryRepo) ReleaseSeed(ctx context.Context, tenantID string) error {
	return nil
}

func (f *fakeInventoryRepo) InsertOnHandBatch(ctx context.Context, rows []domain.OnHandRow) error {
	f.onHand = append(f.onHand, rows...)
	return nil
}

func (f *fakeInventoryRepo) SumOnHandByItem(ctx context.Context, tenantID string) (map[string]float64, error) {
	return f.stockByItem, nil
}

type fakeObjectStorage struct {
	uploads    map[string][]byte
	objects    []storage.ObjectInfo
	listPrefix string
}

func (f *fakeObjectStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	f.listPrefix = prefix
	return f.objects, nil
}

func (f *fakeObjectStorage) UploadObject(ctx context.Context, key string, data []byte) error {
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[key] = data
	return nil
}

type recordingForecastCache struct {
	invalidated int
}

func (r *recordingForecastCache) GetPlan(ctx context.Context, tenantID string) (*domain.DemandPlan, bool, error) {
	return nil, false, nil
}

func (r *recordingForecastCache) SetPlan(ctx context.Context, tenantID string, plan *domain.DemandPlan) error {
	return nil
}

func (r *recordingForecastCache) Invalidate(ctx context.Context, tenantID string) error {
	r.invalidated++
	return nil
}

func newTestForecastService(repo *fakeInventoryRepo, exports storage.ObjectStorage) *ForecastService {
	planner := forecast.NewPlanner(forecast.DefaultConfig())
	return NewForecastService(repo, nil, planner, nil, exports)
}

func TestGetDemandPlanComputesForecasts(t *testing.T) {
	repo := &fakeInventoryRepo{
		items: []domain.Item{
			{ID: "a", SKU: "SKU-A", ReorderPoint: 500, UnitCost: 2},
			{ID: "b", SKU: "SKU-B", UnitCost: 1},
		},
		stockByItem: map[string]float64{"a": 200},
	}
	svc := newTestForecastService(repo, nil)

	plan, err := svc.GetDemandPlan(context.Background(), "tenant-1")
	require.NoError(t, err)
	require.Len(t, plan.Items, 2)

	assert.Equal(t, 750.0, plan.Items[0].AvgMonthlyUsage)
	assert.Equal(t, domain.RiskCritical, plan.Items[0].StockoutRisk)
	assert.Equal(t, 0.0, plan.Items[1].CurrentStock)
	assert.Len(t, plan.Trend, 6)
}

func TestGetDemandPlanSeedsAndInvalidatesCache(t *testing.T) {
	repo := &fakeInventoryRepo{
		items:      []domain.Item{{ID: "a", SKU: "SKU-A", ReorderPoint: 100, UnitCost: 1}},
		warehouses: []domain.Warehouse{{ID: "wh-1"}},
	}
	cache := &recordingForecastCache{}
	seeder := inventory.NewSeeder(repo, 0)
	planner := forecast.NewPlanner(forecast.DefaultConfig())
	svc := NewForecastService(repo, seeder, planner, cache, nil)

	_, err := svc.GetDemandPlan(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.Len(t, repo.onHand, 1)
	// A plan cached before seeding was computed against empty stock.
	assert.Equal(t, 1, cache.invalidated)

	// Already seeded: no further invalidation.
	_, err = svc.GetDemandPlan(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)
}

func TestExportDemandPlanUploadsCSV(t *testing.T) {
	repo := &fakeInventoryRepo{
		items: []domain.Item{
			{ID: "a", SKU: "SKU-A", Name: "Bearing", ReorderPoint: 500, UnitCost: 2},
		},
		stockByItem: map[string]float64{"a": 200},
	}
	exports := &fakeObjectStorage{}
	svc := newTestForecastService(repo, exports)

	key, err := svc.ExportDemandPlan(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "demand-plans/tenant-1/"))
	assert.True(t, strings.HasSuffix(key, ".csv"))

	payload := string(exports.uploads[key])
	assert.Contains(t, payload, "item_id,sku,name,current_stock")
	assert.Contains(t, payload, "a,SKU-A,Bearing,200,750,0.27,500,2050,7,critical")
}

func TestListDemandPlanExports(t *testing.T) {
	exports := &fakeObjectStorage{
		objects: []storage.ObjectInfo{
			{Key: "demand-plans/tenant-1/20260901T000000Z.csv", Size: 120},
			{Key: "demand-plans/tenant-1/20260902T000000Z.csv", Size: 134},
		},
	}
	svc := newTestForecastService(&fakeInventoryRepo{}, exports)

	infos, err := svc.ListDemandPlanExports(context.Background(), "tenant-1")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "demand-plans/tenant-1/", exports.listPrefix)
}

func TestExportDemandPlanWithoutStorage(t *testing.T) {
	svc := newTestForecastService(&fakeInventoryRepo{}, nil)

	_, err := svc.ExportDemandPlan(context.Background(), "tenant-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")

	_, err = svc.ListDemandPlanExports(context.Background(), "tenant-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
