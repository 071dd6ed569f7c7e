package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/makefab/lasernest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestOptions() model.NestOptions {
	o := model.DefaultNestOptions()
	// Simplify for testing: no spacing between parts
	o.MinimumSpacing = 0
	return o
}

func TestOptimize_SingleSheetSinglePart(t *testing.T) {
	opt := New(defaultTestOptions())
	parts := []model.PartShape{model.NewPartShape("A", 50, 30, 1)}
	sheets := []model.MaterialSheet{model.NewMaterialSheet("Sheet", 100, 100)}

	result, err := opt.Optimize(parts, sheets)

	require.NoError(t, err)
	require.Len(t, result.Sheets, 1)
	assert.Len(t, result.Sheets[0].Placements, 1)
	assert.Equal(t, "A", result.Sheets[0].Placements[0].Part.Name)
	assert.Empty(t, result.Summary.PartsNotPlaced)
}

func TestOptimize_MultipleSheetSizes_SelectsSmallestAdequate(t *testing.T) {
	// When parts fit on a small sheet, the optimizer should prefer the smaller
	// stock over the larger one to minimize waste.
	opt := New(defaultTestOptions())

	parts := []model.PartShape{
		model.NewPartShape("Small1", 40, 20, 1),
		model.NewPartShape("Small2", 30, 20, 1),
	}
	sheets := []model.MaterialSheet{
		model.NewMaterialSheet("Large", 500, 400),
		model.NewMaterialSheet("Small", 100, 60),
	}

	result, err := opt.Optimize(parts, sheets)

	require.NoError(t, err)
	require.Equal(t, 0, result.Summary.NotPlacedCount(), "all parts should be placed")
	require.GreaterOrEqual(t, len(result.Sheets), 1)

	firstSheet := result.Sheets[0]
	assert.Equal(t, 100.0, firstSheet.Sheet.Width, "should use the small sheet")
	assert.Equal(t, 60.0, firstSheet.Sheet.Height, "should use the small sheet")
}

func TestOptimize_LargePartForcesLargeSheet(t *testing.T) {
	opt := New(defaultTestOptions())

	parts := []model.PartShape{model.NewPartShape("Big", 150, 80, 1)}
	sheets := []model.MaterialSheet{
		model.NewMaterialSheet("Small", 100, 60),
		model.NewMaterialSheet("Large", 200, 100),
	}

	result, err := opt.Optimize(parts, sheets)

	require.NoError(t, err)
	require.Equal(t, 0, result.Summary.NotPlacedCount())
	require.Len(t, result.Sheets, 1)
	assert.Equal(t, 200.0, result.Sheets[0].Sheet.Width, "large part should go on large sheet")
}

func TestOptimize_ShelfReChecksFitOnSmallerNextSheet(t *testing.T) {
	// Four 120x30 strips overflow the 200x90 sheet; the next sheet in stock
	// is too small for a strip, so the leftover strip must go unplaced
	// instead of hanging over the small sheet's edge.
	opts := defaultTestOptions()
	opts.Algorithm = model.AlgorithmSpeed
	opts.AllowRotation = false
	opt := New(opts)

	parts := []model.PartShape{model.NewPartShape("Strip", 120, 30, 4)}
	sheets := []model.MaterialSheet{
		model.NewMaterialSheet("Big", 200, 90),
		model.NewMaterialSheet("Small", 100, 50),
	}

	result, err := opt.Optimize(parts, sheets)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Summary.PartsPlaced)
	assert.Equal(t, 1, result.Summary.NotPlacedCount())
	for _, layout := range result.Sheets {
		for _, p := range layout.Placements {
			assert.LessOrEqual(t, p.X+p.PlacedWidth(), layout.Sheet.Width,
				"part %s overhangs sheet %s", p.Part.Name, layout.Sheet.Name)
			assert.LessOrEqual(t, p.Y+p.PlacedHeight(), layout.Sheet.Height,
				"part %s overhangs sheet %s", p.Part.Name, layout.Sheet.Name)
		}
	}
}

func TestOptimize_ShelfPacksRowsWithMarginAndSpacing(t *testing.T) {
	// 40x40 parts on a 300x200 sheet with a 5mm edge margin and 2mm
	// spacing: six fit per row, so ten parts take two rows of one sheet.
	opts := defaultTestOptions()
	opts.Algorithm = model.AlgorithmSpeed
	opts.MinimumSpacing = 2
	opt := New(opts)

	sheet := model.NewMaterialSheet("Ply", 300, 200)
	sheet.EdgeMargin = 5
	parts := []model.PartShape{model.NewPartShape("Square", 40, 40, 10)}

	result, err := opt.Optimize(parts, []model.MaterialSheet{sheet})

	require.NoError(t, err)
	require.Len(t, result.Sheets, 1)
	require.Len(t, result.Sheets[0].Placements, 10)
	assert.Equal(t, 0, result.Summary.NotPlacedCount())

	first := result.Sheets[0].Placements[0]
	assert.Equal(t, 5.0, first.X, "first part starts at the edge margin")
	assert.Equal(t, 5.0, first.Y)

	// Seventh part overflows the row and starts the second shelf.
	seventh := result.Sheets[0].Placements[6]
	assert.Equal(t, 5.0, seventh.X)
	assert.Equal(t, 47.0, seventh.Y, "second row sits one part plus spacing down")

	for _, p := range result.Sheets[0].Placements {
		assert.GreaterOrEqual(t, p.X, 5.0)
		assert.GreaterOrEqual(t, p.Y, 5.0)
		assert.LessOrEqual(t, p.X+p.PlacedWidth(), 295.0)
		assert.LessOrEqual(t, p.Y+p.PlacedHeight(), 195.0)
	}
}

func TestOptimize_InsufficientStockReportsUnplaced(t *testing.T) {
	// 200 instances of a 100x100 part against two 110x110 sheets with 2mm
	// spacing: one part per sheet, the other 198 come back unplaced.
	opts := defaultTestOptions()
	opts.Algorithm = model.AlgorithmSpeed
	opts.MinimumSpacing = 2
	opt := New(opts)

	parts := []model.PartShape{model.NewPartShape("Panel", 100, 100, 200)}
	sheets := []model.MaterialSheet{
		model.NewMaterialSheet("S1", 110, 110),
		model.NewMaterialSheet("S2", 110, 110),
	}

	result, err := opt.Optimize(parts, sheets)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Summary.PartsPlaced)
	assert.Equal(t, 198, result.Summary.NotPlacedCount())
	require.Len(t, result.Summary.PartsNotPlaced, 1)
	assert.Equal(t, "Panel", result.Summary.PartsNotPlaced[0].Part.Name)
	assert.Equal(t, 198, result.Summary.PartsNotPlaced[0].Quantity)
}

func TestOptimize_ConservationOfParts(t *testing.T) {
	for _, alg := range []model.Algorithm{model.AlgorithmSpeed, model.AlgorithmEfficiency, model.AlgorithmMinimalWaste} {
		opts := defaultTestOptions()
		opts.Algorithm = alg
		opt := New(opts)

		parts := []model.PartShape{
			model.NewPartShape("A", 60, 40, 3),
			model.NewPartShape("B", 90, 90, 2),
		}
		sheets := []model.MaterialSheet{model.NewMaterialSheet("Sheet", 120, 120)}

		result, err := opt.Optimize(parts, sheets)

		require.NoError(t, err)
		assert.Equal(t, 5, result.Summary.PartsRequested, "algorithm %s", alg)
		assert.Equal(t, result.Summary.PartsRequested,
			result.Summary.PartsPlaced+result.Summary.NotPlacedCount(),
			"placed plus unplaced must equal requested for %s", alg)
	}
}

func TestOptimize_QuantityExpansion(t *testing.T) {
	opt := New(defaultTestOptions())
	parts := []model.PartShape{model.NewPartShape("A", 20, 20, 4)}
	sheets := []model.MaterialSheet{model.NewMaterialSheet("Sheet", 100, 100)}

	result, err := opt.Optimize(parts, sheets)

	require.NoError(t, err)
	require.Len(t, result.Sheets, 1)
	assert.Len(t, result.Sheets[0].Placements, 4)
}

func TestOptimize_Deterministic(t *testing.T) {
	for _, alg := range []model.Algorithm{model.AlgorithmSpeed, model.AlgorithmEfficiency, model.AlgorithmMinimalWaste} {
		parts := []model.PartShape{
			model.NewPartShape("A", 55, 35, 2),
			model.NewPartShape("B", 30, 30, 3),
			model.NewPartShape("C", 80, 25, 1),
		}
		sheets := []model.MaterialSheet{model.NewMaterialSheet("Sheet", 200, 150)}

		opts := defaultTestOptions()
		opts.Algorithm = alg

		first, err := New(opts).Optimize(parts, sheets)
		require.NoError(t, err)
		second, err := New(opts).Optimize(parts, sheets)
		require.NoError(t, err)

		assert.Equal(t, first.Sheets, second.Sheets, "algorithm %s must be repeatable", alg)
		assert.Equal(t, first.Summary, second.Summary)
	}
}

func TestOptimize_RotationAllowsSidewaysFit(t *testing.T) {
	parts := []model.PartShape{model.NewPartShape("Strip", 80, 20, 1)}
	sheets := []model.MaterialSheet{model.NewMaterialSheet("Narrow", 30, 90)}

	opts := defaultTestOptions()
	result, err := New(opts).Optimize(parts, sheets)

	require.NoError(t, err)
	require.Len(t, result.Sheets, 1)
	require.Len(t, result.Sheets[0].Placements, 1)
	placement := result.Sheets[0].Placements[0]
	assert.True(t, placement.Rotated, "part only fits rotated")
	assert.Equal(t, 90.0, placement.Rotation)

	opts.AllowRotation = false
	result, err = New(opts).Optimize(parts, sheets)
	require.NoError(t, err)
	assert.Empty(t, result.Sheets)
	assert.Equal(t, 1, result.Summary.NotPlacedCount())
}

func TestOptimize_PriorityOrdering(t *testing.T) {
	opts := defaultTestOptions()
	opts.Algorithm = model.AlgorithmSpeed
	opts.PrioritizeOrder = true
	opt := New(opts)

	filler := model.NewPartShape("Filler", 40, 40, 1)
	filler.Priority = 1
	urgent := model.NewPartShape("Urgent", 40, 40, 1)
	urgent.Priority = 9

	// Only one part fits; the high-priority one must win.
	sheets := []model.MaterialSheet{model.NewMaterialSheet("Tiny", 50, 50)}
	result, err := opt.Optimize([]model.PartShape{filler, urgent}, sheets)

	require.NoError(t, err)
	require.Len(t, result.Sheets, 1)
	require.Len(t, result.Sheets[0].Placements, 1)
	assert.Equal(t, "Urgent", result.Sheets[0].Placements[0].Part.Name)
}

func TestOptimize_MultiSheetSpill(t *testing.T) {
	opts := defaultTestOptions()
	opts.Algorithm = model.AlgorithmEfficiency
	opt := New(opts)

	parts := []model.PartShape{model.NewPartShape("Panel", 90, 90, 4)}
	sheets := []model.MaterialSheet{
		model.NewMaterialSheet("S1", 100, 100),
		model.NewMaterialSheet("S2", 100, 100),
		model.NewMaterialSheet("S3", 100, 100),
		model.NewMaterialSheet("S4", 100, 100),
	}

	result, err := opt.Optimize(parts, sheets)

	require.NoError(t, err)
	assert.Len(t, result.Sheets, 4, "one 90x90 panel per 100x100 sheet")
	assert.Equal(t, 0, result.Summary.NotPlacedCount())
	assert.Equal(t, 4, result.Summary.SheetsUsed)
}

func TestOptimize_UtilizationBounds(t *testing.T) {
	opt := New(defaultTestOptions())
	parts := []model.PartShape{model.NewPartShape("A", 50, 50, 3)}
	sheets := []model.MaterialSheet{model.NewMaterialSheet("Sheet", 200, 100)}

	result, err := opt.Optimize(parts, sheets)

	require.NoError(t, err)
	assert.Greater(t, result.Summary.AverageUtilization, 0.0)
	assert.LessOrEqual(t, result.Summary.AverageUtilization, 100.0)
	assert.Greater(t, result.TotalEfficiency(), 0.0)
	assert.LessOrEqual(t, result.TotalEfficiency(), 100.0)
	assert.Greater(t, result.Summary.TotalWasteArea, 0.0)
}

func TestOptimize_UnknownAlgorithmFallsBackToSpeed(t *testing.T) {
	opts := defaultTestOptions()
	opts.Algorithm = model.Algorithm("bogus")
	opt := New(opts)

	parts := []model.PartShape{model.NewPartShape("A", 40, 40, 1)}
	sheets := []model.MaterialSheet{model.NewMaterialSheet("Sheet", 100, 100)}

	result, err := opt.Optimize(parts, sheets)

	require.NoError(t, err)
	assert.Equal(t, model.AlgorithmSpeed, result.Metrics.Algorithm)
	assert.Len(t, result.Sheets, 1)
}

func TestOptimize_MetricsPopulated(t *testing.T) {
	opt := New(defaultTestOptions())
	parts := []model.PartShape{model.NewPartShape("A", 40, 40, 2)}
	sheets := []model.MaterialSheet{model.NewMaterialSheet("Sheet", 100, 100)}

	result, err := opt.Optimize(parts, sheets)

	require.NoError(t, err)
	assert.Equal(t, model.AlgorithmEfficiency, result.Metrics.Algorithm)
	assert.Greater(t, result.Metrics.Iterations, 0)
	assert.InDelta(t, result.TotalEfficiency(), result.Metrics.Efficiency, 0.001)
}

func TestOptimize_InvalidPartDimensions(t *testing.T) {
	opt := New(defaultTestOptions())
	parts := []model.PartShape{{ID: "x", Name: "Bad", Width: -10, Height: 20, Quantity: 1}}
	sheets := []model.MaterialSheet{model.NewMaterialSheet("Sheet", 100, 100)}

	_, err := opt.Optimize(parts, sheets)

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}

func TestOptimize_InvalidSheetUsableArea(t *testing.T) {
	opt := New(defaultTestOptions())
	parts := []model.PartShape{model.NewPartShape("A", 40, 40, 1)}
	sheet := model.NewMaterialSheet("Sheet", 100, 100)
	sheet.UsableArea = 150

	_, err := opt.Optimize(parts, []model.MaterialSheet{sheet})

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}

func TestOptimize_ZeroQuantityIsInvalid(t *testing.T) {
	opt := New(defaultTestOptions())
	parts := []model.PartShape{{ID: "x", Name: "None", Width: 10, Height: 10, Quantity: 0}}
	sheets := []model.MaterialSheet{model.NewMaterialSheet("Sheet", 100, 100)}

	_, err := opt.Optimize(parts, sheets)

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}

func TestOptimize_CostAnalysis(t *testing.T) {
	// One 100x100 part on a single 200x100 sheet costing 10: utilization is
	// 50%, so half the material cost comes back as waste cost.
	opt := New(defaultTestOptions())
	sheet := model.NewMaterialSheet("Priced", 200, 100)
	sheet.CostPerSheet = 10.0
	parts := []model.PartShape{model.NewPartShape("Panel", 100, 100, 1)}

	result, err := opt.Optimize(parts, []model.MaterialSheet{sheet})

	require.NoError(t, err)
	require.Len(t, result.Sheets, 1)

	cost := result.Cost
	assert.InDelta(t, 10.0, cost.MaterialCosts, 0.001)
	assert.InDelta(t, 5.0, cost.WasteCosts, 0.001, "50% utilization wastes half the spend")
	assert.InDelta(t, 15.0, cost.CuttingTimeMinutes, 0.001, "one sheet at the per-sheet rate")
	assert.InDelta(t, 11.25, cost.LaborCosts, 0.001, "15 minutes at 45/hour")
	assert.InDelta(t, 26.25, cost.TotalProject, 0.001)
	assert.InDelta(t, 10.0, cost.CostPerPart, 0.001)
	assert.InDelta(t, cost.TotalProject, result.Summary.TotalCost, 0.001)
}

func TestOptimize_CutPathAndTimePerSheet(t *testing.T) {
	opt := New(defaultTestOptions())
	parts := []model.PartShape{model.NewPartShape("A", 40, 40, 3)}
	sheets := []model.MaterialSheet{model.NewMaterialSheet("Sheet", 200, 100)}

	result, err := opt.Optimize(parts, sheets)

	require.NoError(t, err)
	require.Len(t, result.Sheets, 1)
	layout := result.Sheets[0]
	assert.Contains(t, layout.CutPath, "1. A at (")
	assert.Contains(t, layout.CutPath, "travel:")
	assert.Greater(t, layout.CutTimeMinutes, 0.0)
}

func TestOptimize_VisualizationOnRequest(t *testing.T) {
	opts := defaultTestOptions()
	parts := []model.PartShape{model.NewPartShape("A", 40, 40, 1)}
	sheets := []model.MaterialSheet{model.NewMaterialSheet("Sheet", 100, 100)}

	result, err := New(opts).Optimize(parts, sheets)
	require.NoError(t, err)
	assert.Empty(t, result.Visualization, "no drawing unless asked for")

	opts.Visualize = true
	result, err = New(opts).Optimize(parts, sheets)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Visualization, "<svg"))
	assert.Contains(t, result.Visualization, "</svg>")
}

func TestOptimize_Recommendations(t *testing.T) {
	opts := defaultTestOptions()
	opts.AllowRotation = false
	opt := New(opts)

	parts := []model.PartShape{model.NewPartShape("A", 40, 40, 1)}
	sheets := []model.MaterialSheet{model.NewMaterialSheet("Sheet", 500, 500)}

	result, err := opt.Optimize(parts, sheets)

	require.NoError(t, err)
	require.NotEmpty(t, result.Recommendations)
	joined := strings.Join(result.Recommendations, "\n")
	assert.Contains(t, joined, "rotation", "rotation hint expected when rotation is off")
}

func TestOptimize_ReportsReusableOffcuts(t *testing.T) {
	// One 100x100 part in the corner of a 400x300 sheet leaves a usable
	// right strip and bottom strip; both should land on the result.
	opts := defaultTestOptions()
	opts.Algorithm = model.AlgorithmSpeed
	opt := New(opts)

	parts := []model.PartShape{model.NewPartShape("Square", 100, 100, 1)}
	sheets := []model.MaterialSheet{model.NewMaterialSheet("Sheet", 400, 300)}

	result, err := opt.Optimize(parts, sheets)

	require.NoError(t, err)
	require.Len(t, result.Offcuts, 2)
	for _, oc := range result.Offcuts {
		assert.GreaterOrEqual(t, oc.Width, model.MinOffcutDimension)
		assert.GreaterOrEqual(t, oc.Height, model.MinOffcutDimension)
		assert.Equal(t, 0, oc.SheetIndex)
	}
	// Largest first: the 300x300 right strip beats the 100x200 bottom strip.
	assert.Greater(t, result.Offcuts[0].Area(), result.Offcuts[1].Area())

	joined := strings.Join(result.Recommendations, "\n")
	assert.Contains(t, joined, "offcut")
}

func TestOptimize_EmptyInputs(t *testing.T) {
	opt := New(defaultTestOptions())

	result, err := opt.Optimize(nil, []model.MaterialSheet{model.NewMaterialSheet("Sheet", 100, 100)})
	require.NoError(t, err)
	assert.Empty(t, result.Sheets)
	assert.Equal(t, 0, result.Summary.PartsRequested)

	result, err = opt.Optimize([]model.PartShape{model.NewPartShape("A", 10, 10, 1)}, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Sheets)
	assert.Equal(t, 1, result.Summary.NotPlacedCount())
}

func TestOptimize_EdgeMarginRespected(t *testing.T) {
	opt := New(defaultTestOptions())

	sheet := model.NewMaterialSheet("Margined", 100, 100)
	sheet.EdgeMargin = 10
	parts := []model.PartShape{model.NewPartShape("A", 30, 30, 2)}

	result, err := opt.Optimize(parts, []model.MaterialSheet{sheet})

	require.NoError(t, err)
	require.Len(t, result.Sheets, 1)
	for _, p := range result.Sheets[0].Placements {
		assert.GreaterOrEqual(t, p.X, 10.0)
		assert.GreaterOrEqual(t, p.Y, 10.0)
		assert.LessOrEqual(t, p.X+p.PlacedWidth(), 90.0)
		assert.LessOrEqual(t, p.Y+p.PlacedHeight(), 90.0)
	}
}

func TestCompareScenarios(t *testing.T) {
	parts := []model.PartShape{
		model.NewPartShape("A", 60, 40, 4),
		model.NewPartShape("B", 30, 30, 4),
	}
	sheets := []model.MaterialSheet{
		model.NewMaterialSheet("S1", 200, 150),
		model.NewMaterialSheet("S2", 200, 150),
	}

	scenarios := []ComparisonScenario{
		{Name: "Shelf", Options: model.NestOptions{Algorithm: model.AlgorithmSpeed, AllowRotation: true}},
		{Name: "Guillotine", Options: model.NestOptions{Algorithm: model.AlgorithmEfficiency, AllowRotation: true}},
	}

	results, err := CompareScenarios(scenarios, parts, sheets)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Shelf", results[0].Scenario.Name)
	for _, r := range results {
		assert.Equal(t, 8, r.PartsPlaced+r.UnplacedCount)
		assert.GreaterOrEqual(t, r.WastePercent, 0.0)
	}
}

func TestCompareScenarios_PropagatesInvalidInput(t *testing.T) {
	scenarios := []ComparisonScenario{{Name: "Broken", Options: defaultTestOptions()}}
	parts := []model.PartShape{{Name: "Bad", Width: 0, Height: 10, Quantity: 1}}
	sheets := []model.MaterialSheet{model.NewMaterialSheet("Sheet", 100, 100)}

	_, err := CompareScenarios(scenarios, parts, sheets)

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
	assert.Contains(t, err.Error(), `scenario "Broken"`)
}

func TestBuildDefaultScenarios(t *testing.T) {
	base := model.NestOptions{
		Algorithm:      model.AlgorithmEfficiency,
		AllowRotation:  false,
		MinimumSpacing: 3.0,
	}

	scenarios := BuildDefaultScenarios(base)

	// Current settings, two algorithm alternatives, halved spacing, rotation.
	require.Len(t, scenarios, 5)
	assert.Equal(t, "Current Settings", scenarios[0].Name)

	var names []string
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	joined := strings.Join(names, "|")
	assert.Contains(t, joined, "Algorithm: speed")
	assert.Contains(t, joined, "Algorithm: minimal_waste")
	assert.Contains(t, joined, "Spacing 1.5mm")
	assert.Contains(t, joined, "Rotation Allowed")
}
