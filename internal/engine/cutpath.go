package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/makefab/lasernest/internal/model"
)

// describeCutPath orders the placements by nearest-neighbor travel from the
// sheet origin and renders the resulting cut order as text. The laser head
// starts at (0,0) and each hop goes to the closest unvisited part center.
func describeCutPath(sl model.SheetLayout) string {
	if len(sl.Placements) == 0 {
		return ""
	}

	order := cutOrder(sl.Placements)

	var b strings.Builder
	var travel float64
	cur := model.Point2D{}
	for step, idx := range order {
		p := sl.Placements[idx]
		center := p.Bounds().Center()
		travel += distance(cur, center)
		cur = center

		fmt.Fprintf(&b, "%d. %s at (%.1f, %.1f)", step+1, p.Part.Name, p.X, p.Y)
		if p.Rotated {
			b.WriteString(" rotated")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "travel: %.0f mm", travel)
	return b.String()
}

// cutOrder returns placement indices in nearest-neighbor order from (0,0).
func cutOrder(placements []model.PlacedPart) []int {
	n := len(placements)
	order := make([]int, 0, n)
	visited := make([]bool, n)
	cur := model.Point2D{}

	for len(order) < n {
		best := -1
		bestDist := math.MaxFloat64
		for i, p := range placements {
			if visited[i] {
				continue
			}
			d := distance(cur, p.Bounds().Center())
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		visited[best] = true
		order = append(order, best)
		cur = placements[best].Bounds().Center()
	}
	return order
}

func distance(a, b model.Point2D) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
