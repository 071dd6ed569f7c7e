// Package catalog holds the material property tables and resolves them into
// constraint sets for validation. All records are immutable reference data;
// reloads swap a complete snapshot so concurrent readers never observe a
// partially updated table.
package catalog

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// Lookup errors. Unknown keys are always explicit errors; callers that want
// a fallback substitute a default key themselves before calling.
var (
	ErrUnknownMaterial  = errors.New("unknown material")
	ErrUnknownMachine   = errors.New("unknown machine")
	ErrUnknownPrecision = errors.New("unknown precision tier")
)

// CompensationMode selects how cut paths are offset to account for kerf.
type CompensationMode string

const (
	CompensationNone    CompensationMode = "none"
	CompensationInside  CompensationMode = "inside"
	CompensationOutside CompensationMode = "outside"
	CompensationCenter  CompensationMode = "center"
)

// MaterialProperties describes one (material type, thickness) combination.
// All lengths are mm, stresses MPa, density g/cm3.
type MaterialProperties struct {
	Key       string  `json:"key"`  // Catalog key, e.g. "plywood-3mm"
	Type      string  `json:"type"` // Material family, e.g. "plywood", "acrylic"
	Thickness float64 `json:"thickness"`

	Density         float64 `json:"density"`
	TensileStrength float64 `json:"tensile_strength"`
	ElasticModulus  float64 `json:"elastic_modulus"`

	KerfWidth        float64 `json:"kerf_width"`         // Typical laser kerf in this material
	HeatAffectedZone float64 `json:"heat_affected_zone"` // Depth of discolored/weakened edge
	CharDepth        float64 `json:"char_depth"`

	MinFeatureSize float64 `json:"min_feature_size"`
	MinHoleSize    float64 `json:"min_hole_size"`
	MinSlotWidth   float64 `json:"min_slot_width"`
	MaxAspectRatio float64 `json:"max_aspect_ratio"`

	ThermalExpansion float64 `json:"thermal_expansion"` // 1e-6 per K
	SafeTempMin      float64 `json:"safe_temp_min"`     // Celsius
	SafeTempMax      float64 `json:"safe_temp_max"`

	PressFitTolerance   float64 `json:"press_fit_tolerance"`
	LooseFitTolerance   float64 `json:"loose_fit_tolerance"`
	SlidingFitTolerance float64 `json:"sliding_fit_tolerance"`
}

// KerfProperties describes one (machine, power setting) kerf profile.
type KerfProperties struct {
	Machine      string           `json:"machine"`
	Width        float64          `json:"width"`     // Nominal kerf in mm
	Variation    float64          `json:"variation"` // +/- spread in mm
	Compensation CompensationMode `json:"compensation"`
	CornerLoss   float64          `json:"corner_loss"` // Extra material lost at corners
}

// StructuralLimits describes span limits for one (material type, thickness).
type StructuralLimits struct {
	MaxSpanWithoutSupport float64 `json:"max_span_without_support"`
	MaxCantileverLength   float64 `json:"max_cantilever_length"`
	MinWallThickness      float64 `json:"min_wall_thickness"`
	MinBeamWidth          float64 `json:"min_beam_width"`
	SafetyFactor          float64 `json:"safety_factor"`
}

// DimensionalLimits describes one precision tier.
type DimensionalLimits struct {
	MinGap             float64 `json:"min_gap"`
	MinCornerRadius    float64 `json:"min_corner_radius"`
	MaxCutLength       float64 `json:"max_cut_length"` // Longest single uninterrupted cut
	PositionalAccuracy float64 `json:"positional_accuracy"`
}

// MachineCapabilities describes one machine family.
type MachineCapabilities struct {
	WorkAreaWidth   float64 `json:"work_area_width"`
	WorkAreaHeight  float64 `json:"work_area_height"`
	MaxThickness    float64 `json:"max_thickness"`
	MinResolution   float64 `json:"min_resolution"` // Smallest resolvable feature
	PowerMinWatts   float64 `json:"power_min_watts"`
	PowerMaxWatts   float64 `json:"power_max_watts"`
	SpeedMinMMPerS  float64 `json:"speed_min_mm_per_s"`
	SpeedMaxMMPerS  float64 `json:"speed_max_mm_per_s"`
	MaxAcceleration float64 `json:"max_acceleration"` // mm/s^2
}

// ManufacturingConstraints bundles the resolved records for one
// (material, machine, precision) triple. Never mutated after construction.
type ManufacturingConstraints struct {
	MaterialKey  string              `json:"material_key"`
	MachineKey   string              `json:"machine_key"`
	PrecisionKey string              `json:"precision_key"`
	Material     MaterialProperties  `json:"material"`
	Kerf         KerfProperties      `json:"kerf"`
	Structural   StructuralLimits    `json:"structural"`
	Dimensional  DimensionalLimits   `json:"dimensional"`
	Machine      MachineCapabilities `json:"machine"`
}

// Tables holds one immutable snapshot of every catalog table.
type Tables struct {
	Materials   map[string]MaterialProperties  `json:"materials"`
	Kerf        map[string]KerfProperties      `json:"kerf"`       // Keyed by machine
	Structural  map[string]StructuralLimits    `json:"structural"` // Keyed by material key
	Dimensional map[string]DimensionalLimits   `json:"dimensional"`
	Machines    map[string]MachineCapabilities `json:"machines"`
	Settings    map[string]MachineSettings     `json:"settings"` // Keyed by material key
	Recommended map[DesignIntent][]string      `json:"recommended"`
}

// Catalog serves immutable constraint data. It is safe for concurrent use;
// Reload swaps the whole table set atomically.
type Catalog struct {
	tables atomic.Pointer[Tables]
}

// New returns a catalog populated with the built-in tables.
func New() *Catalog {
	c := &Catalog{}
	// Built-in tables are known good; warnings are intentional (see tables.go).
	t := builtinTables()
	c.tables.Store(&t)
	return c
}

// Reload validates the given tables and swaps them in atomically. On error
// the previous snapshot stays active. The returned warnings flag suspicious
// but legal data, such as a minimum feature size above the minimum hole size.
func (c *Catalog) Reload(t Tables) ([]string, error) {
	warnings, err := checkTables(t)
	if err != nil {
		return warnings, err
	}
	c.tables.Store(&t)
	return warnings, nil
}

// Snapshot returns the current immutable table set.
func (c *Catalog) Snapshot() Tables {
	return *c.tables.Load()
}

// ResolveConstraints bundles all records for the given material, machine, and
// precision keys. Every unknown key is an explicit error; there is no silent
// defaulting at this layer.
func (c *Catalog) ResolveConstraints(materialKey, machineKey, precisionKey string) (ManufacturingConstraints, error) {
	t := c.tables.Load()

	mat, ok := t.Materials[materialKey]
	if !ok {
		return ManufacturingConstraints{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, materialKey)
	}
	kerf, ok := t.Kerf[machineKey]
	if !ok {
		return ManufacturingConstraints{}, fmt.Errorf("%w: %q", ErrUnknownMachine, machineKey)
	}
	machine, ok := t.Machines[machineKey]
	if !ok {
		return ManufacturingConstraints{}, fmt.Errorf("%w: %q", ErrUnknownMachine, machineKey)
	}
	dim, ok := t.Dimensional[precisionKey]
	if !ok {
		return ManufacturingConstraints{}, fmt.Errorf("%w: %q", ErrUnknownPrecision, precisionKey)
	}
	structural, ok := t.Structural[materialKey]
	if !ok {
		return ManufacturingConstraints{}, fmt.Errorf("%w: no structural limits for %q", ErrUnknownMaterial, materialKey)
	}

	return ManufacturingConstraints{
		MaterialKey:  materialKey,
		MachineKey:   machineKey,
		PrecisionKey: precisionKey,
		Material:     mat,
		Kerf:         kerf,
		Structural:   structural,
		Dimensional:  dim,
		Machine:      machine,
	}, nil
}

// Material returns the raw material record for a key.
func (c *Catalog) Material(key string) (MaterialProperties, error) {
	mat, ok := c.tables.Load().Materials[key]
	if !ok {
		return MaterialProperties{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, key)
	}
	return mat, nil
}

// MaterialKeys returns all known material keys in sorted order.
func (c *Catalog) MaterialKeys() []string {
	t := c.tables.Load()
	return sortedKeys(t.Materials)
}

// checkTables validates a table set before it becomes a snapshot.
func checkTables(t Tables) ([]string, error) {
	var warnings []string

	// Walk materials in key order so warnings come out the same every run.
	for _, key := range sortedKeys(t.Materials) {
		m := t.Materials[key]
		lengths := map[string]float64{
			"thickness":          m.Thickness,
			"kerf_width":         m.KerfWidth,
			"heat_affected_zone": m.HeatAffectedZone,
			"char_depth":         m.CharDepth,
			"min_feature_size":   m.MinFeatureSize,
			"min_hole_size":      m.MinHoleSize,
			"min_slot_width":     m.MinSlotWidth,
		}
		for name, v := range lengths {
			if v < 0 {
				return warnings, fmt.Errorf("material %q: %s is negative (%.3f)", key, name, v)
			}
		}
		if m.PressFitTolerance < 0 || m.LooseFitTolerance < 0 || m.SlidingFitTolerance < 0 {
			return warnings, fmt.Errorf("material %q: negative fit tolerance", key)
		}
		// Expected but not enforced: some plastics legitimately invert these.
		if m.MinFeatureSize > m.MinHoleSize {
			warnings = append(warnings, fmt.Sprintf(
				"material %q: min feature size %.2f exceeds min hole size %.2f",
				key, m.MinFeatureSize, m.MinHoleSize))
		}
		if _, ok := t.Structural[key]; !ok {
			warnings = append(warnings, fmt.Sprintf("material %q has no structural limits", key))
		}
	}

	for key, k := range t.Kerf {
		if k.Width < 0 || k.Variation < 0 || k.CornerLoss < 0 {
			return warnings, fmt.Errorf("kerf profile %q: negative length field", key)
		}
	}
	for key, s := range t.Structural {
		if s.MaxSpanWithoutSupport < 0 || s.MaxCantileverLength < 0 ||
			s.MinWallThickness < 0 || s.MinBeamWidth < 0 {
			return warnings, fmt.Errorf("structural limits %q: negative length field", key)
		}
		if s.SafetyFactor <= 0 {
			return warnings, fmt.Errorf("structural limits %q: safety factor must be positive", key)
		}
	}
	for key, d := range t.Dimensional {
		if d.MinGap < 0 || d.MinCornerRadius < 0 || d.MaxCutLength < 0 || d.PositionalAccuracy < 0 {
			return warnings, fmt.Errorf("dimensional limits %q: negative length field", key)
		}
	}
	for key, m := range t.Machines {
		if m.WorkAreaWidth <= 0 || m.WorkAreaHeight <= 0 {
			return warnings, fmt.Errorf("machine %q: non-positive work area", key)
		}
	}

	return warnings, nil
}
