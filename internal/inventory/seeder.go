package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/plantmetrics/backend-go/internal/domain"
)

// DefaultBatchSize bounds the number of rows per insert regardless of
// catalog size.
const DefaultBatchSize = 500

// Store is the persistence collaborator the seeder runs against.
//
// ClaimSeed must be atomic across concurrent callers: exactly one of two
// simultaneous first-requests for a tenant may win the claim. The Postgres
// implementation backs it with a claims table; insert batches additionally
// rely on a unique (tenant, item, warehouse) key so a lost race can never
// duplicate rows.
type Store interface {
	CountOnHand(ctx context.Context, tenantID string) (int, error)
	ListActiveItems(ctx context.Context, tenantID string) ([]domain.Item, error)
	ListWarehouses(ctx context.Context, tenantID string) ([]domain.Warehouse, error)
	ClaimSeed(ctx context.Context, tenantID string) (bool, error)
	ReleaseSeed(ctx context.Context, tenantID string) error
	InsertOnHandBatch(ctx context.Context, rows []domain.OnHandRow) error
}

// Seeder initializes on-hand rows for tenants that have none yet. Safe to
// call on every read path; once a tenant has any rows it is a no-op.
type Seeder struct {
	store     Store
	batchSize int
}

// NewSeeder creates a seeder. A non-positive batch size gets the default.
func NewSeeder(store Store, batchSize int) *Seeder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Seeder{store: store, batchSize: batchSize}
}

// EnsureSeeded distributes every active item across the tenant's warehouses
// round-robin with deterministic placeholder quantities, persisting in
// bounded sequential batches. Tenants with existing rows, no items, or no
// warehouses are left untouched. The returned bool reports whether any rows
// were inserted, so callers can drop plans derived from the pre-seed state.
func (s *Seeder) EnsureSeeded(ctx context.Context, tenantID string) (bool, error) {
	count, err := s.store.CountOnHand(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("count on-hand rows: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	claimed, err := s.store.ClaimSeed(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("claim seed: %w", err)
	}
	if !claimed {
		// Another request is seeding this tenant right now.
		log.Debug().Str("tenant_id", tenantID).Msg("inventory seed claim denied, skipping")
		return false, nil
	}
	defer func() {
		if err := s.store.ReleaseSeed(context.WithoutCancel(ctx), tenantID); err != nil {
			log.Warn().Err(err).Str("tenant_id", tenantID).Msg("release seed claim failed")
		}
	}()

	// Re-check under the claim: the first check raced an earlier seeding.
	count, err = s.store.CountOnHand(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("recount on-hand rows: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	items, err := s.store.ListActiveItems(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("list active items: %w", err)
	}
	warehouses, err := s.store.ListWarehouses(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("list warehouses: %w", err)
	}
	if len(items) == 0 || len(warehouses) == 0 {
		return false, nil
	}

	rows := buildOnHandRows(tenantID, items, warehouses)
	seeded := false
	for start := 0; start < len(rows); start += s.batchSize {
		if err := ctx.Err(); err != nil {
			return seeded, err
		}

		end := start + s.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := s.store.InsertOnHandBatch(ctx, rows[start:end]); err != nil {
			return seeded, fmt.Errorf("insert on-hand batch: %w", err)
		}
		seeded = true
	}

	log.Info().
		Str("tenant_id", tenantID).
		Int("rows", len(rows)).
		Int("warehouses", len(warehouses)).
		Msg("inventory on-hand seeded")

	return true, nil
}

// buildOnHandRows assigns item i to warehouse i mod warehouseCount and
// derives its seed quantity: a 2x-5x multiple of the reorder point when one
// is set, else a spread from 50 to 240.
func buildOnHandRows(tenantID string, items []domain.Item, warehouses []domain.Warehouse) []domain.OnHandRow {
	now := time.Now().UTC()

	rows := make([]domain.OnHandRow, 0, len(items))
	for i, item := range items {
		quantity := 50 + float64(i%20)*10
		if item.ReorderPoint > 0 {
			quantity = item.ReorderPoint * float64(2+i%4)
		}

		rows = append(rows, domain.OnHandRow{
			TenantID:          tenantID,
			ItemID:            item.ID,
			WarehouseID:       warehouses[i%len(warehouses)].ID,
			QuantityOnHand:    quantity,
			QuantityReserved:  0,
			QuantityAvailable: quantity,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	return rows
}
