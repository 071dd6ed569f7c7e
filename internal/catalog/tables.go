package catalog

import "sort"

// DesignIntent categorizes what a design is for, used for material
// recommendations.
type DesignIntent string

const (
	IntentDecorative DesignIntent = "decorative"
	IntentStructural DesignIntent = "structural"
	IntentMechanical DesignIntent = "mechanical"
	IntentArtistic   DesignIntent = "artistic"
)

// LaserSetting is one power/speed/passes triple.
type LaserSetting struct {
	PowerPercent float64 `json:"power_percent"`
	SpeedMMPerS  float64 `json:"speed_mm_per_s"`
	Passes       int     `json:"passes"`
}

// MachineSettings holds the cut, score, and engrave settings for a material.
type MachineSettings struct {
	Cut     LaserSetting `json:"cut"`
	Score   LaserSetting `json:"score"`
	Engrave LaserSetting `json:"engrave"`
}

// DefaultMachineSettingsKey is the material key callers may substitute when
// they have no better choice. The catalog itself never falls back to it.
const DefaultMachineSettingsKey = "plywood-3mm"

// builtinTables returns the compiled-in catalog. Values are shop-measured
// defaults for common hobby and small-production laser materials.
func builtinTables() Tables {
	return Tables{
		Materials: map[string]MaterialProperties{
			"plywood-3mm": {
				Key: "plywood-3mm", Type: "plywood", Thickness: 3,
				Density: 0.60, TensileStrength: 31, ElasticModulus: 9000,
				KerfWidth: 0.15, HeatAffectedZone: 0.25, CharDepth: 0.10,
				MinFeatureSize: 0.8, MinHoleSize: 1.0, MinSlotWidth: 1.0, MaxAspectRatio: 20,
				ThermalExpansion: 8, SafeTempMin: -20, SafeTempMax: 100,
				PressFitTolerance: 0.05, LooseFitTolerance: 0.15, SlidingFitTolerance: 0.25,
			},
			"plywood-6mm": {
				Key: "plywood-6mm", Type: "plywood", Thickness: 6,
				Density: 0.60, TensileStrength: 31, ElasticModulus: 9000,
				KerfWidth: 0.18, HeatAffectedZone: 0.35, CharDepth: 0.15,
				MinFeatureSize: 1.2, MinHoleSize: 1.5, MinSlotWidth: 1.5, MaxAspectRatio: 15,
				ThermalExpansion: 8, SafeTempMin: -20, SafeTempMax: 100,
				PressFitTolerance: 0.08, LooseFitTolerance: 0.20, SlidingFitTolerance: 0.30,
			},
			"mdf-3mm": {
				Key: "mdf-3mm", Type: "mdf", Thickness: 3,
				Density: 0.75, TensileStrength: 18, ElasticModulus: 4000,
				KerfWidth: 0.18, HeatAffectedZone: 0.30, CharDepth: 0.20,
				MinFeatureSize: 1.0, MinHoleSize: 1.2, MinSlotWidth: 1.2, MaxAspectRatio: 15,
				ThermalExpansion: 12, SafeTempMin: -10, SafeTempMax: 80,
				PressFitTolerance: 0.05, LooseFitTolerance: 0.15, SlidingFitTolerance: 0.25,
			},
			"acrylic-3mm": {
				Key: "acrylic-3mm", Type: "acrylic", Thickness: 3,
				Density: 1.19, TensileStrength: 70, ElasticModulus: 3200,
				KerfWidth: 0.20, HeatAffectedZone: 0.30, CharDepth: 0.05,
				MinFeatureSize: 0.8, MinHoleSize: 1.8, MinSlotWidth: 1.5, MaxAspectRatio: 12,
				ThermalExpansion: 70, SafeTempMin: -40, SafeTempMax: 80,
				PressFitTolerance: 0.03, LooseFitTolerance: 0.10, SlidingFitTolerance: 0.20,
			},
			"acrylic-6mm": {
				Key: "acrylic-6mm", Type: "acrylic", Thickness: 6,
				Density: 1.19, TensileStrength: 70, ElasticModulus: 3200,
				KerfWidth: 0.25, HeatAffectedZone: 0.40, CharDepth: 0.05,
				MinFeatureSize: 1.2, MinHoleSize: 2.2, MinSlotWidth: 2.0, MaxAspectRatio: 10,
				ThermalExpansion: 70, SafeTempMin: -40, SafeTempMax: 80,
				PressFitTolerance: 0.05, LooseFitTolerance: 0.12, SlidingFitTolerance: 0.22,
			},
			"cardboard-3mm": {
				Key: "cardboard-3mm", Type: "cardboard", Thickness: 3,
				Density: 0.25, TensileStrength: 5, ElasticModulus: 500,
				KerfWidth: 0.10, HeatAffectedZone: 0.50, CharDepth: 0.30,
				MinFeatureSize: 1.5, MinHoleSize: 2.0, MinSlotWidth: 2.0, MaxAspectRatio: 8,
				ThermalExpansion: 15, SafeTempMin: 0, SafeTempMax: 60,
				PressFitTolerance: 0.10, LooseFitTolerance: 0.25, SlidingFitTolerance: 0.40,
			},
		},
		Kerf: map[string]KerfProperties{
			"co2-40w": {
				Machine: "co2-40w", Width: 0.15, Variation: 0.05,
				Compensation: CompensationCenter, CornerLoss: 0.02,
			},
			"co2-100w": {
				Machine: "co2-100w", Width: 0.20, Variation: 0.08,
				Compensation: CompensationCenter, CornerLoss: 0.03,
			},
			"diode-10w": {
				Machine: "diode-10w", Width: 0.10, Variation: 0.05,
				Compensation: CompensationCenter, CornerLoss: 0.01,
			},
		},
		Structural: map[string]StructuralLimits{
			"plywood-3mm":   {MaxSpanWithoutSupport: 120, MaxCantileverLength: 40, MinWallThickness: 2.0, MinBeamWidth: 3.0, SafetyFactor: 2.0},
			"plywood-6mm":   {MaxSpanWithoutSupport: 200, MaxCantileverLength: 70, MinWallThickness: 3.0, MinBeamWidth: 4.0, SafetyFactor: 2.0},
			"mdf-3mm":       {MaxSpanWithoutSupport: 90, MaxCantileverLength: 30, MinWallThickness: 2.5, MinBeamWidth: 3.5, SafetyFactor: 2.5},
			"acrylic-3mm":   {MaxSpanWithoutSupport: 80, MaxCantileverLength: 25, MinWallThickness: 2.0, MinBeamWidth: 3.0, SafetyFactor: 2.5},
			"acrylic-6mm":   {MaxSpanWithoutSupport: 150, MaxCantileverLength: 50, MinWallThickness: 3.0, MinBeamWidth: 4.0, SafetyFactor: 2.5},
			"cardboard-3mm": {MaxSpanWithoutSupport: 40, MaxCantileverLength: 15, MinWallThickness: 4.0, MinBeamWidth: 6.0, SafetyFactor: 3.0},
		},
		Dimensional: map[string]DimensionalLimits{
			"high-precision": {MinGap: 0.5, MinCornerRadius: 0.2, MaxCutLength: 500, PositionalAccuracy: 0.05},
			"standard":       {MinGap: 1.0, MinCornerRadius: 0.5, MaxCutLength: 1000, PositionalAccuracy: 0.10},
			"quick":          {MinGap: 2.0, MinCornerRadius: 1.0, MaxCutLength: 2000, PositionalAccuracy: 0.25},
		},
		Machines: map[string]MachineCapabilities{
			"co2-40w": {
				WorkAreaWidth: 500, WorkAreaHeight: 300, MaxThickness: 6, MinResolution: 0.10,
				PowerMinWatts: 1, PowerMaxWatts: 40, SpeedMinMMPerS: 1, SpeedMaxMMPerS: 350, MaxAcceleration: 2000,
			},
			"co2-100w": {
				WorkAreaWidth: 1300, WorkAreaHeight: 900, MaxThickness: 20, MinResolution: 0.08,
				PowerMinWatts: 5, PowerMaxWatts: 100, SpeedMinMMPerS: 1, SpeedMaxMMPerS: 500, MaxAcceleration: 3000,
			},
			"diode-10w": {
				WorkAreaWidth: 400, WorkAreaHeight: 400, MaxThickness: 5, MinResolution: 0.15,
				PowerMinWatts: 0.5, PowerMaxWatts: 10, SpeedMinMMPerS: 1, SpeedMaxMMPerS: 200, MaxAcceleration: 1500,
			},
		},
		Settings: map[string]MachineSettings{
			"plywood-3mm": {
				Cut:     LaserSetting{PowerPercent: 65, SpeedMMPerS: 15, Passes: 1},
				Score:   LaserSetting{PowerPercent: 20, SpeedMMPerS: 40, Passes: 1},
				Engrave: LaserSetting{PowerPercent: 15, SpeedMMPerS: 120, Passes: 1},
			},
			"plywood-6mm": {
				Cut:     LaserSetting{PowerPercent: 85, SpeedMMPerS: 8, Passes: 2},
				Score:   LaserSetting{PowerPercent: 25, SpeedMMPerS: 40, Passes: 1},
				Engrave: LaserSetting{PowerPercent: 18, SpeedMMPerS: 120, Passes: 1},
			},
			"mdf-3mm": {
				Cut:     LaserSetting{PowerPercent: 70, SpeedMMPerS: 12, Passes: 1},
				Score:   LaserSetting{PowerPercent: 22, SpeedMMPerS: 40, Passes: 1},
				Engrave: LaserSetting{PowerPercent: 16, SpeedMMPerS: 110, Passes: 1},
			},
			"acrylic-3mm": {
				Cut:     LaserSetting{PowerPercent: 60, SpeedMMPerS: 10, Passes: 1},
				Score:   LaserSetting{PowerPercent: 18, SpeedMMPerS: 35, Passes: 1},
				Engrave: LaserSetting{PowerPercent: 12, SpeedMMPerS: 100, Passes: 1},
			},
			"acrylic-6mm": {
				Cut:     LaserSetting{PowerPercent: 80, SpeedMMPerS: 5, Passes: 1},
				Score:   LaserSetting{PowerPercent: 20, SpeedMMPerS: 35, Passes: 1},
				Engrave: LaserSetting{PowerPercent: 14, SpeedMMPerS: 100, Passes: 1},
			},
			"cardboard-3mm": {
				Cut:     LaserSetting{PowerPercent: 30, SpeedMMPerS: 30, Passes: 1},
				Score:   LaserSetting{PowerPercent: 10, SpeedMMPerS: 60, Passes: 1},
				Engrave: LaserSetting{PowerPercent: 8, SpeedMMPerS: 150, Passes: 1},
			},
		},
		Recommended: map[DesignIntent][]string{
			IntentDecorative: {"acrylic-3mm", "mdf-3mm", "cardboard-3mm"},
			IntentStructural: {"plywood-6mm", "plywood-3mm", "acrylic-6mm"},
			IntentMechanical: {"acrylic-6mm", "plywood-6mm", "acrylic-3mm"},
			IntentArtistic:   {"cardboard-3mm", "plywood-3mm", "acrylic-3mm"},
		},
	}
}

// transparentTypes lists material families that pass light.
var transparentTypes = map[string]bool{
	"acrylic": true,
}

// flexibleTypes lists material families that tolerate bending in thin stock.
var flexibleTypes = map[string]bool{
	"cardboard": true,
	"plywood":   true,
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
