package translator

import (
	"math"

	"github.com/graang/graang/internal/model"
)

const (
	// gridColumns is the width of the Grafana dashboard grid
	gridColumns = 24

	orderedPanelWidth  = 12
	orderedPanelHeight = 8

	minPanelWidth  = 1
	minPanelHeight = 4
	maxPanelHeight = 36

	// heightScale converts percentage heights into grid row units.
	// Calibrated so a 15-20% tall source widget lands around 4 rows.
	heightScale = 24
)

// layoutMapper assigns grid positions to panels in source order. Ordered
// dashboards flow two panels per row at a fixed size; free dashboards
// rescale their percentage coordinates onto the 24-column grid, falling
// back to the flow cursor for widgets that carry no coordinates.
type layoutMapper struct {
	ordered bool

	x         int
	y         int
	rowHeight int
}

func newLayoutMapper(layoutType string) *layoutMapper {
	return &layoutMapper{ordered: layoutType != model.LayoutFree}
}

// next returns the grid position for the given widget and advances the
// cursor.
func (m *layoutMapper) next(w model.Widget) model.GridPos {
	if !m.ordered && w.Layout != nil {
		return scalePosition(*w.Layout)
	}
	return m.flow(orderedPanelWidth, orderedPanelHeight)
}

// flow places a panel at the cursor, wrapping to a new row when the
// current one is full.
func (m *layoutMapper) flow(w, h int) model.GridPos {
	if m.x+w > gridColumns {
		m.x = 0
		m.y += m.rowHeight
		m.rowHeight = 0
	}

	pos := model.GridPos{X: m.x, Y: m.y, W: w, H: h}

	m.x += w
	if h > m.rowHeight {
		m.rowHeight = h
	}
	return pos
}

// scalePosition rescales percentage coordinates from the 100-unit source
// canvas onto the grid. Width lands in [1, 24], height in [4, 36], and
// x + w never exceeds the grid width; when it would, width shrinks before
// x shifts.
func scalePosition(l model.WidgetLayout) model.GridPos {
	w := clamp(scale(l.Width, gridColumns), minPanelWidth, gridColumns)
	h := clamp(scale(l.Height, heightScale), minPanelHeight, maxPanelHeight)
	x := clamp(scale(l.X, gridColumns), 0, gridColumns)
	y := scale(l.Y, heightScale)
	if y < 0 {
		y = 0
	}

	if x+w > gridColumns {
		if gridColumns-x >= minPanelWidth {
			w = gridColumns - x
		} else {
			w = minPanelWidth
			x = gridColumns - w
		}
	}

	return model.GridPos{X: x, Y: y, W: w, H: h}
}

// scale converts a percentage of the source canvas into grid units using
// round-half-up.
func scale(pct float64, factor int) int {
	return int(math.Round(pct / 100 * float64(factor)))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
