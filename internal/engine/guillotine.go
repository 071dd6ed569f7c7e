package engine

import (
	"sort"

	"github.com/makefab/lasernest/internal/model"
)

// layoutGuillotine packs part instances using the maximal-rectangles packer
// with a best-area-fit heuristic. Parts are sorted largest first (after the
// optional priority ordering) and sheets are chosen by trial packing.
func (o *Optimizer) layoutGuillotine(instances []model.PartShape, sheets []model.MaterialSheet) ([]model.SheetLayout, []model.PartShape) {
	ordered := o.orderForPacking(instances)

	var layouts []model.SheetLayout
	remaining := ordered
	pool := append([]model.MaterialSheet(nil), sheets...)

	for len(remaining) > 0 && len(pool) > 0 {
		idx := o.selectBestSheet(pool, remaining)
		if idx < 0 {
			break
		}
		sheet := pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)

		layout, unplaced := o.packSheet(sheet, remaining)
		if len(layout.Placements) > 0 {
			layouts = append(layouts, layout)
		}
		remaining = unplaced
	}

	return layouts, remaining
}

// orderForPacking sorts instances for the guillotine and genetic packers:
// priority first when requested, then area descending. The sort is stable so
// equal parts keep their input order and results stay deterministic.
func (o *Optimizer) orderForPacking(instances []model.PartShape) []model.PartShape {
	ordered := append([]model.PartShape(nil), instances...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if o.Options.PrioritizeOrder && ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}
		ai := ordered[i].Width * ordered[i].Height
		aj := ordered[j].Width * ordered[j].Height
		return ai > aj
	})
	return ordered
}

// packSheet packs instances onto a single sheet.
func (o *Optimizer) packSheet(sheet model.MaterialSheet, instances []model.PartShape) (model.SheetLayout, []model.PartShape) {
	layout := model.SheetLayout{Sheet: sheet}
	var unplaced []model.PartShape

	packer := newRectPacker(sheetFreeRect(sheet), o.Options.MinimumSpacing)

	for _, part := range instances {
		o.iterations++
		placed := o.tryPlace(packer, &layout, part)
		if !placed {
			unplaced = append(unplaced, part)
		}
	}
	return layout, unplaced
}

// tryPlace inserts one part, comparing both orientations when rotation is
// allowed and picking the tighter fit. A preferred rotation near 90 degrees
// makes the rotated orientation the first candidate.
func (o *Optimizer) tryPlace(packer *rectPacker, layout *model.SheetLayout, part model.PartShape) bool {
	preferRotated := o.Options.AllowRotation && prefersRotation(part)

	if o.Options.AllowRotation && part.Width != part.Height {
		normalFit := packer.bestFit(part.Width, part.Height)
		rotatedFit := packer.bestFit(part.Height, part.Width)

		rotated := preferRotated
		if normalFit < 0 && rotatedFit >= 0 {
			rotated = true
		} else if normalFit >= 0 && rotatedFit < 0 {
			rotated = false
		} else if normalFit >= 0 && rotatedFit >= 0 && !preferRotated {
			rotated = rotatedFit < normalFit
		}

		if rotated {
			if ok, x, y := packer.insert(part.Height, part.Width); ok {
				layout.Placements = append(layout.Placements, model.PlacedPart{
					Part: part, X: x, Y: y, Rotated: true, Rotation: 90,
				})
				return true
			}
		}
	}

	if ok, x, y := packer.insert(part.Width, part.Height); ok {
		layout.Placements = append(layout.Placements, model.PlacedPart{
			Part: part, X: x, Y: y,
		})
		return true
	}
	if o.Options.AllowRotation {
		if ok, x, y := packer.insert(part.Height, part.Width); ok {
			layout.Placements = append(layout.Placements, model.PlacedPart{
				Part: part, X: x, Y: y, Rotated: true, Rotation: 90,
			})
			return true
		}
	}
	return false
}

// prefersRotation reports whether the part's preferred rotation is closer
// to 90 degrees than to 0.
func prefersRotation(part model.PartShape) bool {
	r := part.Rotation
	for r < 0 {
		r += 180
	}
	for r >= 180 {
		r -= 180
	}
	return r > 45 && r < 135
}

// sheetFreeRect returns the packable region of a sheet after its edge margin.
func sheetFreeRect(sheet model.MaterialSheet) rect {
	m := sheet.EdgeMargin
	return rect{
		x: m,
		y: m,
		w: sheet.Width - 2*m,
		h: sheet.Height - 2*m,
	}
}

// selectBestSheet finds the best sheet for the remaining parts. For each
// candidate that can fit the largest remaining part it runs a quick packing
// trial and picks the sheet with the highest resulting efficiency, which
// minimizes waste when several stock sizes are offered.
func (o *Optimizer) selectBestSheet(sheets []model.MaterialSheet, instances []model.PartShape) int {
	if len(sheets) == 0 || len(instances) == 0 {
		return -1
	}

	largest := instances[0]
	maxArea := largest.Width * largest.Height
	for _, p := range instances[1:] {
		if a := p.Width * p.Height; a > maxArea {
			maxArea = a
			largest = p
		}
	}

	spacing := o.Options.MinimumSpacing
	var candidates []int
	for i, sheet := range sheets {
		free := sheetFreeRect(sheet)
		fitsNormal := largest.Width+spacing <= free.w && largest.Height+spacing <= free.h
		fitsRotated := o.Options.AllowRotation &&
			largest.Height+spacing <= free.w && largest.Width+spacing <= free.h
		if fitsNormal || fitsRotated {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return -1
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	// De-duplicate by dimensions; same-size sheets pack identically.
	type sheetKey struct{ w, h, m float64 }
	seen := make(map[sheetKey]bool)
	var unique []int
	for _, idx := range candidates {
		key := sheetKey{sheets[idx].Width, sheets[idx].Height, sheets[idx].EdgeMargin}
		if !seen[key] {
			seen[key] = true
			unique = append(unique, idx)
		}
	}

	bestIdx := -1
	bestScore := -1.0
	for _, idx := range unique {
		sheet := sheets[idx]
		packer := newRectPacker(sheetFreeRect(sheet), spacing)

		placedArea := 0.0
		for _, part := range instances {
			if ok, _, _ := packer.insert(part.Width, part.Height); ok {
				placedArea += part.Width * part.Height
				continue
			}
			if o.Options.AllowRotation {
				if ok, _, _ := packer.insert(part.Height, part.Width); ok {
					placedArea += part.Width * part.Height
				}
			}
		}

		area := sheet.SheetArea()
		if area == 0 {
			continue
		}
		if eff := placedArea / area; eff > bestScore {
			bestScore = eff
			bestIdx = idx
		}
	}

	if bestIdx < 0 {
		return candidates[0]
	}
	return bestIdx
}

// rectPacker implements maximal-rectangles packing: it keeps a list of free
// rectangles and splits every overlapping one around each placed part.
type rectPacker struct {
	freeRects []rect
	spacing   float64
}

type rect struct {
	x, y, w, h float64
}

func newRectPacker(free rect, spacing float64) *rectPacker {
	return &rectPacker{freeRects: []rect{free}, spacing: spacing}
}

// insert tries to place a part of the given dimensions using best area fit.
// Returns success and the placement position.
func (rp *rectPacker) insert(w, h float64) (bool, float64, float64) {
	bestIdx := -1
	bestAreaFit := float64(-1)
	ws := w + rp.spacing
	hs := h + rp.spacing

	for i, r := range rp.freeRects {
		if ws <= r.w+0.001 && hs <= r.h+0.001 {
			areaFit := (r.w * r.h) - (w * h)
			if bestIdx < 0 || areaFit < bestAreaFit {
				bestIdx = i
				bestAreaFit = areaFit
			}
		}
	}
	if bestIdx < 0 {
		return false, 0, 0
	}

	chosen := rp.freeRects[bestIdx]
	placed := rect{x: chosen.x, y: chosen.y, w: ws, h: hs}
	rp.splitAroundPlacement(placed)
	return true, chosen.x, chosen.y
}

// splitAroundPlacement removes all free rects that overlap the placed rect
// and generates maximal sub-rects from the non-overlapping portions, then
// prunes contained rects. This yields larger free areas than guillotine
// splitting alone, letting rotated parts land in strips that span several
// previous cuts.
func (rp *rectPacker) splitAroundPlacement(placed rect) {
	var newRects []rect

	for _, r := range rp.freeRects {
		if !rectsOverlap(r, placed) {
			newRects = append(newRects, r)
			continue
		}
		if placed.x > r.x+0.001 {
			newRects = append(newRects, rect{x: r.x, y: r.y, w: placed.x - r.x, h: r.h})
		}
		if placed.x+placed.w < r.x+r.w-0.001 {
			newRects = append(newRects, rect{
				x: placed.x + placed.w, y: r.y,
				w: (r.x + r.w) - (placed.x + placed.w), h: r.h,
			})
		}
		if placed.y > r.y+0.001 {
			newRects = append(newRects, rect{x: r.x, y: r.y, w: r.w, h: placed.y - r.y})
		}
		if placed.y+placed.h < r.y+r.h-0.001 {
			newRects = append(newRects, rect{
				x: r.x, y: placed.y + placed.h,
				w: r.w, h: (r.y + r.h) - (placed.y + placed.h),
			})
		}
	}

	rp.freeRects = pruneContained(newRects)
}

// bestFit returns the area waste for inserting a piece of size w x h without
// modifying the packer. Returns -1 if it does not fit.
func (rp *rectPacker) bestFit(w, h float64) float64 {
	ws := w + rp.spacing
	hs := h + rp.spacing
	best := float64(-1)
	for _, r := range rp.freeRects {
		if ws <= r.w+0.001 && hs <= r.h+0.001 {
			areaFit := (r.w * r.h) - (w * h)
			if best < 0 || areaFit < best {
				best = areaFit
			}
		}
	}
	return best
}

// rectsOverlap returns true if two rectangles overlap (not just touch).
func rectsOverlap(a, b rect) bool {
	return a.x < b.x+b.w-0.001 && a.x+a.w > b.x+0.001 &&
		a.y < b.y+b.h-0.001 && a.y+a.h > b.y+0.001
}

// pruneContained removes any rect that is fully contained within another.
// When two rects contain each other they are the same rect; the lower index
// survives so duplicates collapse to one instead of removing both.
func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i == j || !containsRect(b, a) {
				continue
			}
			if j < i || !containsRect(a, b) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

// containsRect returns true if outer fully contains inner.
func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x+0.001 && outer.y <= inner.y+0.001 &&
		outer.x+outer.w >= inner.x+inner.w-0.001 &&
		outer.y+outer.h >= inner.y+inner.h-0.001
}
