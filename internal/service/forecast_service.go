package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/plantmetrics/backend-go/internal/cache"
	"github.com/plantmetrics/backend-go/internal/domain"
	"github.com/plantmetrics/backend-go/internal/forecast"
	"github.com/plantmetrics/backend-go/internal/inventory"
	"github.com/plantmetrics/backend-go/internal/repository"
	"github.com/plantmetrics/backend-go/internal/storage"
)

type ForecastService struct {
	repo    repository.InventoryRepository
	seeder  *inventory.Seeder
	planner *forecast.Planner
	cache   cache.ForecastCache
	exports storage.ObjectStorage
}

// NewForecastService wires the demand-planning read path. The exports
// backend is optional; without one only CSV export is unavailable.
func NewForecastService(
	repo repository.InventoryRepository,
	seeder *inventory.Seeder,
	planner *forecast.Planner,
	cacheImpl cache.ForecastCache,
	exports storage.ObjectStorage,
) *ForecastService {
	if planner == nil {
		planner = forecast.NewPlanner(forecast.DefaultConfig())
	}
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopForecastCache()
	}
	return &ForecastService{
		repo:    repo,
		seeder:  seeder,
		planner: planner,
		cache:   cacheImpl,
		exports: exports,
	}
}

// GetDemandPlan recomputes the tenant's demand plan. Tenants with no stock
// positions yet get seeded first; a seeding failure degrades to planning
// against zero stock rather than failing the read.
func (s *ForecastService) GetDemandPlan(ctx context.Context, tenantID string) (*domain.DemandPlan, error) {
	if s.seeder != nil {
		seeded, err := s.seeder.EnsureSeeded(ctx, tenantID)
		if err != nil {
			log.Warn().Err(err).Str("tenant_id", tenantID).Msg("forecast: inventory seeding failed")
		}
		if seeded {
			// Any plan cached before seeding was computed against empty stock.
			if err := s.cache.Invalidate(ctx, tenantID); err != nil {
				log.Warn().Err(err).Msg("forecast: cache invalidate failed")
			}
		}
	}

	if plan, ok, err := s.cache.GetPlan(ctx, tenantID); err == nil && ok {
		return plan, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("forecast: cache get plan failed")
	}

	var (
		items       []domain.Item
		stockByItem map[string]float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.ListActiveItems(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		stockByItem, err = s.repo.SumOnHandByItem(gctx, tenantID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	plan := s.planner.Plan(items, stockByItem, time.Now().UTC())

	if err := s.cache.SetPlan(ctx, tenantID, &plan); err != nil {
		log.Warn().Err(err).Msg("forecast: cache set plan failed")
	}

	return &plan, nil
}

// ExportDemandPlan renders the current demand plan as CSV and uploads it to
// object storage, returning the object key.
func (s *ForecastService) ExportDemandPlan(ctx context.Context, tenantID string) (string, error) {
	if s.exports == nil {
		return "", fmt.Errorf("export storage is not configured")
	}

	plan, err := s.GetDemandPlan(ctx, tenantID)
	if err != nil {
		return "", err
	}

	data, err := renderDemandPlanCSV(plan)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("demand-plans/%s/%s.csv", tenantID, plan.GeneratedAt.Format("20060102T150405Z"))
	if err := s.exports.UploadObject(ctx, key, data); err != nil {
		return "", err
	}

	log.Info().Str("tenant_id", tenantID).Str("key", key).Int("items", len(plan.Items)).
		Msg("demand plan exported")

	return key, nil
}

// ListDemandPlanExports returns the tenant's previously exported plans.
func (s *ForecastService) ListDemandPlanExports(ctx context.Context, tenantID string) ([]storage.ObjectInfo, error) {
	if s.exports == nil {
		return nil, fmt.Errorf("export storage is not configured")
	}

	return s.exports.ListObjects(ctx, fmt.Sprintf("demand-plans/%s/", tenantID))
}

func renderDemandPlanCSV(plan *domain.DemandPlan) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"item_id", "sku", "name", "current_stock", "avg_monthly_usage",
		"months_of_supply", "reorder_point", "suggested_order",
		"lead_time_days", "stockout_risk",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("could not write csv header: %w", err)
	}

	for _, item := range plan.Items {
		record := []string{
			item.ItemID,
			item.SKU,
			item.Name,
			strconv.FormatFloat(item.CurrentStock, 'f', -1, 64),
			strconv.FormatFloat(item.AvgMonthlyUsage, 'f', -1, 64),
			strconv.FormatFloat(item.MonthsOfSupply, 'f', 2, 64),
			strconv.FormatFloat(item.ReorderPoint, 'f', -1, 64),
			strconv.FormatFloat(item.SuggestedOrder, 'f', -1, 64),
			strconv.Itoa(item.LeadTimeDays),
			string(item.StockoutRisk),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("could not write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("could not flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
