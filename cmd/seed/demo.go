package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/plantmetrics/backend-go/internal/domain"
	"github.com/plantmetrics/backend-go/internal/repository/postgres"
	"github.com/plantmetrics/backend-go/pkg/logger"
)

// demoMetricPairs gives every profile key a plausible current/previous pair
// so a fresh database renders a full dashboard.
var demoMetricPairs = map[string]domain.RawMetricPair{
	"revenue":          {Current: 284500, Previous: 261200},
	"active_orders":    {Current: 147, Previous: 139},
	"oee":              {Current: 84.2, Previous: 81.7},
	"on_time_delivery": {Current: 94.1, Previous: 95.0},
	"scrap_rate":       {Current: 2.1, Previous: 2.6},
	"inventory_alerts": {Current: 8, Previous: 12},
}

func runDemoSeed(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := c.Context
	tenantID := uuid.NewString()
	industry := domain.ParseIndustry(c.String("industry"))

	// One transaction: a failed run must not leave a half-built demo tenant.
	err = postgres.Wrap(db).WithTx(ctx, func(tx *sql.Tx) error {
		if err := insertDemoTenant(ctx, tx, tenantID, c.String("name"), industry); err != nil {
			return err
		}
		if err := insertDemoWarehouses(ctx, tx, tenantID, c.Int("warehouses")); err != nil {
			return err
		}
		if err := insertDemoItems(ctx, tx, tenantID, c.Int("items")); err != nil {
			return err
		}
		return insertDemoMetrics(ctx, tx, tenantID)
	})
	if err != nil {
		return err
	}

	logger.Log.Info().
		Str("tenant_id", tenantID).
		Str("industry", string(industry)).
		Int("items", c.Int("items")).
		Int("warehouses", c.Int("warehouses")).
		Msg("demo tenant created")

	return nil
}

func insertDemoTenant(ctx context.Context, tx *sql.Tx, tenantID, name string, industry domain.IndustryType) error {
	query := `
		INSERT INTO tenants (id, name, industry, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	if _, err := tx.ExecContext(ctx, query, tenantID, name, string(industry)); err != nil {
		return fmt.Errorf("failed to insert demo tenant: %w", err)
	}
	return nil
}

func insertDemoWarehouses(ctx context.Context, tx *sql.Tx, tenantID string, count int) error {
	query := `
		INSERT INTO warehouses (id, tenant_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("Warehouse %c", 'A'+i%26)
		if _, err := tx.ExecContext(ctx, query, uuid.NewString(), tenantID, name); err != nil {
			return fmt.Errorf("failed to insert demo warehouse: %w", err)
		}
	}
	return nil
}

func insertDemoItems(ctx context.Context, tx *sql.Tx, tenantID string, count int) error {
	query := `
		INSERT INTO items (
			id, tenant_id, sku, name, reorder_point, reorder_quantity,
			unit_cost, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, NOW(), NOW())
	`
	for i := 0; i < count; i++ {
		// Leave some items without reorder configuration so the forecast
		// fallback heuristics get exercised.
		reorderPoint := 0
		reorderQty := 0
		switch i % 3 {
		case 0:
			reorderPoint = 100 + (i%10)*50
		case 1:
			reorderQty = 50 + (i%8)*25
		}

		sku := fmt.Sprintf("DEMO-%04d", i+1)
		name := fmt.Sprintf("Demo Component %d", i+1)
		unitCost := 5.0 + float64(i%20)*2.5

		if _, err := tx.ExecContext(ctx, query,
			uuid.NewString(), tenantID, sku, name, reorderPoint, reorderQty, unitCost,
		); err != nil {
			return fmt.Errorf("failed to insert demo item: %w", err)
		}
	}
	return nil
}

func insertDemoMetrics(ctx context.Context, tx *sql.Tx, tenantID string) error {
	query := `
		INSERT INTO metric_snapshots (tenant_id, metric_key, current_value, previous_value, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	for key, pair := range demoMetricPairs {
		if _, err := tx.ExecContext(ctx, query, tenantID, key, pair.Current, pair.Previous); err != nil {
			return fmt.Errorf("failed to insert demo metric %s: %w", key, err)
		}
	}
	return nil
}
