package model

// PlacedPart is one instance of a PartShape assigned a position on a sheet.
type PlacedPart struct {
	Part     PartShape `json:"part"`
	X        float64   `json:"x"`       // Position from the left sheet edge (mm)
	Y        float64   `json:"y"`       // Position from the top sheet edge (mm)
	Rotated  bool      `json:"rotated"` // Whether the part was rotated 90 degrees
	Rotation float64   `json:"rotation"`
}

// PlacedWidth returns the effective width considering rotation.
func (p PlacedPart) PlacedWidth() float64 {
	if p.Rotated {
		return p.Part.Height
	}
	return p.Part.Width
}

// PlacedHeight returns the effective height considering rotation.
func (p PlacedPart) PlacedHeight() float64 {
	if p.Rotated {
		return p.Part.Width
	}
	return p.Part.Height
}

// Bounds returns the placement footprint on the sheet.
func (p PlacedPart) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.PlacedWidth(), H: p.PlacedHeight()}
}

// SheetLayout is one sheet's worth of placed parts plus derived metrics.
type SheetLayout struct {
	Sheet      MaterialSheet `json:"sheet"`
	Placements []PlacedPart  `json:"placements"`

	// CutPath is a human-readable description of the cut order.
	CutPath string `json:"cut_path,omitempty"`
	// CutTimeMinutes is the estimated machining time for this sheet.
	CutTimeMinutes float64 `json:"cut_time_minutes"`
}

// UsedArea returns the total area occupied by placed parts in square mm.
func (sl SheetLayout) UsedArea() float64 {
	var total float64
	for _, p := range sl.Placements {
		total += p.Part.PartArea()
	}
	return total
}

// Utilization returns the percentage of the sheet covered by parts.
func (sl SheetLayout) Utilization() float64 {
	area := sl.Sheet.SheetArea()
	if area == 0 {
		return 0
	}
	return (sl.UsedArea() / area) * 100.0
}

// WasteArea returns the unused sheet area in square mm.
func (sl SheetLayout) WasteArea() float64 {
	return sl.Sheet.SheetArea() - sl.UsedArea()
}

// UnplacedPart records a part that could not be placed on any sheet.
type UnplacedPart struct {
	Part     PartShape `json:"part"`
	Quantity int       `json:"quantity"` // Instances that did not fit
}

// NestingSummary aggregates the outcome of a nesting run.
type NestingSummary struct {
	PartsRequested     int            `json:"parts_requested"`
	PartsPlaced        int            `json:"parts_placed"`
	PartsNotPlaced     []UnplacedPart `json:"parts_not_placed,omitempty"`
	SheetsUsed         int            `json:"sheets_used"`
	TotalCost          float64        `json:"total_cost"`
	AverageUtilization float64        `json:"average_utilization"`
	TotalWasteArea     float64        `json:"total_waste_area"`
}

// NotPlacedCount returns the total number of unplaced instances.
func (s NestingSummary) NotPlacedCount() int {
	var n int
	for _, u := range s.PartsNotPlaced {
		n += u.Quantity
	}
	return n
}

// OptimizationMetrics describes how the layout was computed.
type OptimizationMetrics struct {
	Algorithm  Algorithm `json:"algorithm"`
	Iterations int       `json:"iterations"`
	Efficiency float64   `json:"efficiency"` // Overall material efficiency percentage
}

// CostAnalysis breaks a nesting run down into money.
type CostAnalysis struct {
	MaterialCosts      float64  `json:"material_costs"`
	WasteCosts         float64  `json:"waste_costs"`
	CuttingTimeMinutes float64  `json:"cutting_time_minutes"`
	LaborCosts         float64  `json:"labor_costs"`
	TotalProject       float64  `json:"total_project"`
	CostPerPart        float64  `json:"cost_per_part"`
	Savings            []string `json:"savings,omitempty"` // Suggestions to reduce cost
}

// NestingResult is the full outcome of an optimization run.
type NestingResult struct {
	Sheets          []SheetLayout       `json:"sheets"`
	Summary         NestingSummary      `json:"summary"`
	Metrics         OptimizationMetrics `json:"metrics"`
	Cost            CostAnalysis        `json:"cost"`
	Recommendations []string            `json:"recommendations,omitempty"`
	// Offcuts lists the reusable remnants detected on the used sheets.
	Offcuts []Offcut `json:"offcuts,omitempty"`
	// Visualization holds an SVG drawing of the layout when requested.
	Visualization string `json:"visualization,omitempty"`
}

// TotalEfficiency returns the overall material usage percentage.
func (nr NestingResult) TotalEfficiency() float64 {
	var usedArea, totalArea float64
	for _, s := range nr.Sheets {
		usedArea += s.UsedArea()
		totalArea += s.Sheet.SheetArea()
	}
	if totalArea == 0 {
		return 0
	}
	return (usedArea / totalArea) * 100.0
}
