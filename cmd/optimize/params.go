// Package main provides CMA-ES tuning of the computer players' steering weights.
package main

import (
	"github.com/pthm-cable/microbiome/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "sight_radius", Path: "ai.sight_radius", Min: 0.1, Max: 0.8, Default: 0.35},
			{Name: "prey_weight", Path: "ai.prey_weight", Min: 0.5, Max: 16, Default: 4},
			{Name: "threat_weight", Path: "ai.threat_weight", Min: 1, Max: 32, Default: 8},
			{Name: "wall_weight", Path: "ai.wall_weight", Min: 0, Max: 8, Default: 2},
			{Name: "border_margin", Path: "ai.border_margin", Min: 0.02, Max: 0.3, Default: 0.1},
			{Name: "split_reach", Path: "ai.split_reach", Min: 2, Max: 12, Default: 6},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ToAI converts parameter values to an ai config section.
// Order must match Specs order.
func (pv *ParamVector) ToAI(values []float64) config.AIConfig {
	c := pv.Clamp(values)
	return config.AIConfig{
		SightRadius:  c[0],
		PreyWeight:   c[1],
		ThreatWeight: c[2],
		WallWeight:   c[3],
		BorderMargin: c[4],
		SplitReach:   c[5],
	}
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	cfg.AI = pv.ToAI(values)
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.AI.SightRadius,
		cfg.AI.PreyWeight,
		cfg.AI.ThreatWeight,
		cfg.AI.WallWeight,
		cfg.AI.BorderMargin,
		cfg.AI.SplitReach,
	}
}
