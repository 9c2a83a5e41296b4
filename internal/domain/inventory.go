package domain

import "time"

// Item is an active catalog item as seen by the planning core. Reorder
// configuration is optional; zero values mean "not configured".
type Item struct {
	ID              string  `json:"id" db:"id"`
	SKU             string  `json:"sku" db:"sku"`
	Name            string  `json:"name" db:"name"`
	ReorderPoint    float64 `json:"reorder_point" db:"reorder_point"`
	ReorderQuantity float64 `json:"reorder_quantity" db:"reorder_quantity"`
	UnitCost        float64 `json:"unit_cost" db:"unit_cost"`
}

// Warehouse is a stocking location belonging to a tenant.
type Warehouse struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// OnHandRow is one persisted stock position. (TenantID, ItemID, WarehouseID)
// uniquely identifies a row.
type OnHandRow struct {
	TenantID          string    `json:"tenant_id" db:"tenant_id"`
	ItemID            string    `json:"item_id" db:"item_id"`
	WarehouseID       string    `json:"warehouse_id" db:"warehouse_id"`
	QuantityOnHand    float64   `json:"quantity_on_hand" db:"quantity_on_hand"`
	QuantityReserved  float64   `json:"quantity_reserved" db:"quantity_reserved"`
	QuantityAvailable float64   `json:"quantity_available" db:"quantity_available"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
