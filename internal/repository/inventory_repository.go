package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/plantmetrics/backend-go/internal/domain"
)

// InventoryRepository is the persistence surface for the planning core: the
// seeder's store plus the stock aggregates the forecaster reads.
type InventoryRepository interface {
	CountOnHand(ctx context.Context, tenantID string) (int, error)
	ListActiveItems(ctx context.Context, tenantID string) ([]domain.Item, error)
	ListWarehouses(ctx context.Context, tenantID string) ([]domain.Warehouse, error)
	ClaimSeed(ctx context.Context, tenantID string) (bool, error)
	ReleaseSeed(ctx context.Context, tenantID string) error
	InsertOnHandBatch(ctx context.Context, rows []domain.OnHandRow) error
	SumOnHandByItem(ctx context.Context, tenantID string) (map[string]float64, error)
}

type inventoryRepository struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) CountOnHand(ctx context.Context, tenantID string) (int, error) {
	query := `SELECT COUNT(*) FROM inventory_on_hand WHERE tenant_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, tenantID); err != nil {
		return 0, fmt.Errorf("error counting on-hand rows: %w", err)
	}

	return count, nil
}

func (r *inventoryRepository) ListActiveItems(ctx context.Context, tenantID string) ([]domain.Item, error) {
	query := `
		SELECT id, sku, name, reorder_point, reorder_quantity, unit_cost
		FROM items
		WHERE tenant_id = $1 AND active
		ORDER BY sku, id
	`

	var items []domain.Item
	if err := r.db.SelectContext(ctx, &items, query, tenantID); err != nil {
		return nil, fmt.Errorf("error listing active items: %w", err)
	}

	return items, nil
}

func (r *inventoryRepository) ListWarehouses(ctx context.Context, tenantID string) ([]domain.Warehouse, error) {
	query := `
		SELECT id, name
		FROM warehouses
		WHERE tenant_id = $1
		ORDER BY name, id
	`

	var warehouses []domain.Warehouse
	if err := r.db.SelectContext(ctx, &warehouses, query, tenantID); err != nil {
		return nil, fmt.Errorf("error listing warehouses: %w", err)
	}

	return warehouses, nil
}

// ClaimSeed takes the per-tenant seeding claim through a unique-keyed claims
// table. Exactly one concurrent caller wins; the loser gets false.
func (r *inventoryRepository) ClaimSeed(ctx context.Context, tenantID string) (bool, error) {
	query := `
		INSERT INTO inventory_seed_claims (tenant_id)
		VALUES ($1)
		ON CONFLICT (tenant_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, tenantID)
	if err != nil {
		return false, fmt.Errorf("error claiming inventory seed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading seed claim result: %w", err)
	}

	return affected == 1, nil
}

func (r *inventoryRepository) ReleaseSeed(ctx context.Context, tenantID string) error {
	query := `DELETE FROM inventory_seed_claims WHERE tenant_id = $1`

	if _, err := r.db.ExecContext(ctx, query, tenantID); err != nil {
		return fmt.Errorf("error releasing inventory seed claim: %w", err)
	}

	return nil
}

// InsertOnHandBatch inserts one bounded batch. The unique
// (tenant_id, item_id, warehouse_id) index makes a lost seeding race insert
// nothing instead of duplicating positions.
func (r *inventoryRepository) InsertOnHandBatch(ctx context.Context, rows []domain.OnHandRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO inventory_on_hand (
			tenant_id, item_id, warehouse_id,
			quantity_on_hand, quantity_reserved, quantity_available,
			created_at, updated_at
		) VALUES (
			:tenant_id, :item_id, :warehouse_id,
			:quantity_on_hand, :quantity_reserved, :quantity_available,
			:created_at, :updated_at
		)
		ON CONFLICT (tenant_id, item_id, warehouse_id) DO NOTHING
	`

	if _, err := r.db.NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("error inserting on-hand batch: %w", err)
	}

	return nil
}

func (r *inventoryRepository) SumOnHandByItem(ctx context.Context, tenantID string) (map[string]float64, error) {
	query := `
		SELECT item_id, COALESCE(SUM(quantity_on_hand), 0) AS total
		FROM inventory_on_hand
		WHERE tenant_id = $1
		GROUP BY item_id
	`

	var totals []struct {
		ItemID string  `db:"item_id"`
		Total  float64 `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &totals, query, tenantID); err != nil {
		return nil, fmt.Errorf("error summing on-hand quantities: %w", err)
	}

	stockByItem := make(map[string]float64, len(totals))
	for _, row := range totals {
		stockByItem[row.ItemID] = row.Total
	}

	return stockByItem, nil
}
