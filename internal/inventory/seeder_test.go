package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmetrics/backend-go/internal/domain"
)

type fakeStore struct {
	items      []domain.Item
	warehouses []domain.Warehouse
	rows       []domain.OnHandRow
	batches    [][]domain.OnHandRow

	denyClaim bool
	claimed   int
	released  int
	onBatch   func(batch []domain.OnHandRow)
}

func (f *fakeStore) CountOnHand(ctx context.Context, tenantID string) (int, error) {
	return len(f.rows), nil
}

func (f *fakeStore) ListActiveItems(ctx context.Context, tenantID string) ([]domain.Item, error) {
	return f.items, nil
}

func (f *fakeStore) ListWarehouses(ctx context.Context, tenantID string) ([]domain.Warehouse, error) {
	return f.warehouses, nil
}

func (f *fakeStore) ClaimSeed(ctx context.Context, tenantID string) (bool, error) {
	if f.denyClaim {
		return false, nil
	}
	f.claimed++
	return true, nil
}

func (f *fakeStore) ReleaseSeed(ctx context.Context, tenantID string) error {
	f.released++
	return nil
}

func (f *fakeStore) InsertOnHandBatch(ctx context.Context, rows []domain.OnHandRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	batch := append([]domain.OnHandRow(nil), rows...)
	f.batches = append(f.batches, batch)
	f.rows = append(f.rows, batch...)
	if f.onBatch != nil {
		f.onBatch(batch)
	}
	return nil
}

func makeItems(n int, reorderPoint float64) []domain.Item {
	items := make([]domain.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.Item{
			ID:           fmt.Sprintf("item-%03d", i),
			SKU:          fmt.Sprintf("SKU-%03d", i),
			ReorderPoint: reorderPoint,
		})
	}
	return items
}

func makeWarehouses(n int) []domain.Warehouse {
	warehouses := make([]domain.Warehouse, 0, n)
	for i := 0; i < n; i++ {
		warehouses = append(warehouses, domain.Warehouse{ID: fmt.Sprintf("wh-%d", i)})
	}
	return warehouses
}

func TestEnsureSeededOnceThenNoop(t *testing.T) {
	store := &fakeStore{
		items:      makeItems(10, 0),
		warehouses: makeWarehouses(3),
	}
	seeder := NewSeeder(store, 0)

	seeded, err := seeder.EnsureSeeded(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.Len(t, store.rows, 10)
	assert.Equal(t, 1, store.claimed)
	assert.Equal(t, 1, store.released)

	// Second call short-circuits on the count check.
	seeded, err = seeder.EnsureSeeded(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Len(t, store.rows, 10)
	assert.Equal(t, 1, store.claimed)
}

func TestEnsureSeededRoundRobinDistribution(t *testing.T) {
	store := &fakeStore{
		items:      makeItems(7, 0),
		warehouses: makeWarehouses(3),
	}
	seeder := NewSeeder(store, 0)

	seeded, err := seeder.EnsureSeeded(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.True(t, seeded)
	require.Len(t, store.rows, 7)

	for i, row := range store.rows {
		assert.Equal(t, fmt.Sprintf("wh-%d", i%3), row.WarehouseID)
		assert.Equal(t, fmt.Sprintf("item-%03d", i), row.ItemID)
		assert.Equal(t, "tenant-1", row.TenantID)
	}
}

func TestEnsureSeededQuantities(t *testing.T) {
	store := &fakeStore{
		items: []domain.Item{
			{ID: "a", ReorderPoint: 500}, // index 0: 500 * 2
			{ID: "b"},                    // index 1: 50 + 1*10
			{ID: "c", ReorderPoint: 100}, // index 2: 100 * 4
			{ID: "d"},                    // index 3: 50 + 3*10
			{ID: "e", ReorderPoint: 200}, // index 4: 200 * 2 (4 mod 4 = 0)
		},
		warehouses: makeWarehouses(2),
	}
	seeder := NewSeeder(store, 0)

	_, err := seeder.EnsureSeeded(context.Background(), "tenant-1")
	require.NoError(t, err)
	require.Len(t, store.rows, 5)

	expected := []float64{1000, 60, 400, 80, 400}
	for i, row := range store.rows {
		assert.Equal(t, expected[i], row.QuantityOnHand, "row %d", i)
		assert.Equal(t, 0.0, row.QuantityReserved)
		assert.Equal(t, row.QuantityOnHand, row.QuantityAvailable)
	}
}

func TestEnsureSeededBatchSplitting(t *testing.T) {
	store := &fakeStore{
		items:      makeItems(1200, 10),
		warehouses: makeWarehouses(1),
	}
	seeder := NewSeeder(store, 500)

	seeded, err := seeder.EnsureSeeded(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.True(t, seeded)

	require.Len(t, store.batches, 3)
	assert.Len(t, store.batches[0], 500)
	assert.Len(t, store.batches[1], 500)
	assert.Len(t, store.batches[2], 200)
}

func TestEnsureSeededClaimDenied(t *testing.T) {
	store := &fakeStore{
		items:      makeItems(5, 0),
		warehouses: makeWarehouses(1),
		denyClaim:  true,
	}
	seeder := NewSeeder(store, 0)

	seeded, err := seeder.EnsureSeeded(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Empty(t, store.rows)
}

func TestEnsureSeededNoItemsOrWarehouses(t *testing.T) {
	store := &fakeStore{warehouses: makeWarehouses(2)}
	seeder := NewSeeder(store, 0)
	seeded, err := seeder.EnsureSeeded(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Empty(t, store.rows)

	store = &fakeStore{items: makeItems(3, 0)}
	seeder = NewSeeder(store, 0)
	seeded, err = seeder.EnsureSeeded(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Empty(t, store.rows)
}

func TestEnsureSeededCancellationBetweenBatches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	store := &fakeStore{
		items:      makeItems(600, 10),
		warehouses: makeWarehouses(2),
	}
	store.onBatch = func(batch []domain.OnHandRow) {
		cancel()
	}
	seeder := NewSeeder(store, 300)

	seeded, err := seeder.EnsureSeeded(ctx, "tenant-1")
	require.ErrorIs(t, err, context.Canceled)
	// The committed first batch still counts as seeding.
	assert.True(t, seeded)
	assert.Len(t, store.batches, 1)
	// The claim is still released on the cancellation path.
	assert.Equal(t, 1, store.released)
}
