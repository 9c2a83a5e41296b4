package metrics

import "github.com/plantmetrics/backend-go/internal/domain"

// ResolvedKpi is one resolved dashboard entry, keyed by its metric
// identifier.
type ResolvedKpi struct {
	Key string `json:"key"`
	domain.Kpi
}

// Summary is the ordered set of resolved KPIs for one industry dashboard.
// Order follows the profile's definition list, which downstream display
// relies on.
type Summary []ResolvedKpi

// Lookup finds a resolved KPI by metric key.
func (s Summary) Lookup(key string) (domain.Kpi, bool) {
	for _, entry := range s {
		if entry.Key == key {
			return entry.Kpi, true
		}
	}

	return domain.Kpi{}, false
}

// Resolver maps raw metric snapshots onto uniform KPI records using the
// per-industry profiles.
type Resolver struct {
	profiles Profiles
	formats  Registry
}

// NewResolver creates a resolver over the given profiles and formatter
// registry. Nil arguments get the defaults.
func NewResolver(profiles Profiles, formats Registry) *Resolver {
	if profiles == nil {
		profiles = DefaultProfiles()
	}
	if formats == nil {
		formats = NewRegistry()
	}
	return &Resolver{profiles: profiles, formats: formats}
}

// Resolve walks the industry's KPI definitions in order and computes a KPI
// for every key present in the snapshot. Missing keys are skipped silently;
// an incomplete snapshot legitimately yields fewer KPIs than the profile
// defines. Unknown industries resolve against the default profile.
func (r *Resolver) Resolve(industry domain.IndustryType, snapshot domain.MetricSnapshot) Summary {
	profile := r.profiles.Get(industry)

	summary := make(Summary, 0, len(profile.Kpis))
	for _, def := range profile.Kpis {
		pair, ok := snapshot[def.Key]
		if !ok {
			continue
		}

		formatter := r.formats.Lookup(def.Formatter)
		summary = append(summary, ResolvedKpi{
			Key: def.Key,
			Kpi: Calculate(def.Label, pair.Current, pair.Previous, formatter, def.InvertTrend),
		})
	}

	return summary
}

// Profile exposes the resolved profile for an industry, including the
// fallback for unknown types.
func (r *Resolver) Profile(industry domain.IndustryType) Profile {
	return r.profiles.Get(industry)
}
