package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/plantmetrics/backend-go/internal/domain"
)

// MetricRepository reads tenant metadata and raw metric snapshots for the
// KPI resolver.
type MetricRepository interface {
	GetTenantIndustry(ctx context.Context, tenantID string) (domain.IndustryType, error)
	GetSnapshot(ctx context.Context, tenantID string) (domain.MetricSnapshot, error)
	UpsertSnapshot(ctx context.Context, tenantID string, pairs domain.MetricSnapshot) error
}

type metricRepository struct {
	db *sqlx.DB
}

func NewMetricRepository(db *sqlx.DB) MetricRepository {
	return &metricRepository{db: db}
}

// GetTenantIndustry returns the tenant's configured vertical. A missing or
// unrecognized value degrades to the default industry.
func (r *metricRepository) GetTenantIndustry(ctx context.Context, tenantID string) (domain.IndustryType, error) {
	query := `SELECT industry FROM tenants WHERE id = $1`

	var industry string
	err := r.db.GetContext(ctx, &industry, query, tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultIndustry, nil
	}
	if err != nil {
		return domain.DefaultIndustry, fmt.Errorf("error getting tenant industry: %w", err)
	}

	return domain.ParseIndustry(industry), nil
}

// GetSnapshot loads the tenant's raw metric pairs for the current reporting
// period. An empty result is legitimate and yields an empty KPI summary.
func (r *metricRepository) GetSnapshot(ctx context.Context, tenantID string) (domain.MetricSnapshot, error) {
	query := `
		SELECT metric_key, current_value, previous_value
		FROM metric_snapshots
		WHERE tenant_id = $1
	`

	var rows []struct {
		MetricKey string  `db:"metric_key"`
		Current   float64 `db:"current_value"`
		Previous  float64 `db:"previous_value"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, tenantID); err != nil {
		return nil, fmt.Errorf("error getting metric snapshot: %w", err)
	}

	snapshot := make(domain.MetricSnapshot, len(rows))
	for _, row := range rows {
		snapshot[row.MetricKey] = domain.RawMetricPair{
			Current:  row.Current,
			Previous: row.Previous,
		}
	}

	return snapshot, nil
}

// UpsertSnapshot writes raw metric pairs for the tenant, replacing any
// existing values for the same metric keys.
func (r *metricRepository) UpsertSnapshot(ctx context.Context, tenantID string, pairs domain.MetricSnapshot) error {
	query := `
		INSERT INTO metric_snapshots (tenant_id, metric_key, current_value, previous_value, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (tenant_id, metric_key) DO UPDATE
		SET current_value = EXCLUDED.current_value,
		    previous_value = EXCLUDED.previous_value
	`

	for key, pair := range pairs {
		if _, err := r.db.ExecContext(ctx, query, tenantID, key, pair.Current, pair.Previous); err != nil {
			return fmt.Errorf("error upserting metric %s: %w", key, err)
		}
	}

	return nil
}
