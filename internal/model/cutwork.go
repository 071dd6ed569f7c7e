package model

import "math"

// CutEstimate holds the calculated cutting work for a set of parts.
type CutEstimate struct {
	TotalLengthMM  float64 `json:"total_length_mm"` // Total cut path length in mm
	TotalLengthM   float64 `json:"total_length_m"`  // Total cut path length in meters
	PierceCount    int     `json:"pierce_count"`    // Number of pierce operations (one per closed path)
	PartCount      int     `json:"part_count"`      // Number of individual pieces
	TimeMinutes    float64 `json:"time_minutes"`    // Cutting time at the given feed rate
	FeedRateMMMin  float64 `json:"feed_rate_mm_min"`
	PierceSeconds  float64 `json:"pierce_seconds"`  // Dwell per pierce used in the estimate
}

// pierceDwellSeconds is the assumed dwell per pierce for time estimation.
const pierceDwellSeconds = 1.5

// EstimateCutWork computes the total cut length, pierce count, and time for
// a list of parts at the given feed rate (mm/min). Each part instance counts
// one pierce for its perimeter.
func EstimateCutWork(parts []PartShape, feedRateMMPerMin float64) CutEstimate {
	var totalMM float64
	var partCount int

	for _, p := range parts {
		totalMM += p.CutLength() * float64(p.Quantity)
		partCount += p.Quantity
	}

	est := CutEstimate{
		TotalLengthMM: totalMM,
		TotalLengthM:  totalMM / 1000.0,
		PierceCount:   partCount,
		PartCount:     partCount,
		FeedRateMMMin: feedRateMMPerMin,
		PierceSeconds: pierceDwellSeconds,
	}
	if feedRateMMPerMin > 0 {
		est.TimeMinutes = totalMM/feedRateMMPerMin + float64(partCount)*pierceDwellSeconds/60.0
	}
	return est
}

// EstimateLayoutCutTime computes the cutting time in minutes for the parts
// placed on a single sheet layout.
func EstimateLayoutCutTime(sl SheetLayout, feedRateMMPerMin float64) float64 {
	if feedRateMMPerMin <= 0 {
		return 0
	}
	var totalMM float64
	for _, p := range sl.Placements {
		totalMM += p.Part.CutLength()
	}
	minutes := totalMM/feedRateMMPerMin + float64(len(sl.Placements))*pierceDwellSeconds/60.0
	return math.Round(minutes*100) / 100
}

// PerPartCutWork returns a per-part breakdown of cutting work.
type PerPartCutWork struct {
	Name          string  `json:"name"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Quantity      int     `json:"quantity"`
	LengthPerUnit float64 `json:"length_per_unit"` // mm per piece
	TotalLength   float64 `json:"total_length"`    // mm for all pieces
}

// CalculatePerPartCutWork returns a breakdown of cut length per part type.
func CalculatePerPartCutWork(parts []PartShape) []PerPartCutWork {
	var results []PerPartCutWork
	for _, p := range parts {
		lengthPerUnit := p.CutLength()
		results = append(results, PerPartCutWork{
			Name:          p.Name,
			Width:         p.Width,
			Height:        p.Height,
			Quantity:      p.Quantity,
			LengthPerUnit: lengthPerUnit,
			TotalLength:   lengthPerUnit * float64(p.Quantity),
		})
	}
	return results
}
