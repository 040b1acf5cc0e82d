package order

import "github.com/babarot/imgsort/internal/core/types"

// ResolveDropSide decides which side of target a drop lands on. The pointer
// is after the target when it is over the trailing half; a degenerate width
// always resolves to before.
func ResolveDropSide(pointerX int, target types.Rect) bool {
	if target.W <= 0 {
		return false
	}
	return float64(pointerX-target.X0)/float64(target.W) >= 0.5
}

// Layout is a geometry snapshot of a grid of n cells laid out row-major.
// It is taken once per stable layout and reused for the whole drag so
// that hit testing never depends on live layout queries.
type Layout struct {
	n       int
	cols    int
	cellW   int
	cellH   int
	originX int
	originY int
	Rects   []types.Rect
}

// Snapshot captures the geometry of n cells of cellW x cellH arranged in
// cols columns starting at (originX, originY).
func Snapshot(n, cols, cellW, cellH, originX, originY int) Layout {
	cols = max(cols, 1)
	l := Layout{
		n:       n,
		cols:    cols,
		cellW:   cellW,
		cellH:   cellH,
		originX: originX,
		originY: originY,
		Rects:   make([]types.Rect, n),
	}
	for i := range n {
		l.Rects[i] = types.Rect{
			X0: originX + (i%cols)*cellW,
			Y0: originY + (i/cols)*cellH,
			W:  cellW,
			H:  cellH,
		}
	}
	return l
}

// Len returns the number of cells in the snapshot
func (l Layout) Len() int { return l.n }

// Cols returns the number of columns
func (l Layout) Cols() int { return l.cols }

// Rect returns the cached rectangle of cell i
func (l Layout) Rect(i int) (types.Rect, bool) {
	if i < 0 || i >= l.n {
		return types.Rect{}, false
	}
	return l.Rects[i], true
}

// HitTest returns the cell under (x, y)
func (l Layout) HitTest(x, y int) (int, types.Rect, bool) {
	if l.cellW <= 0 || l.cellH <= 0 || x < l.originX || y < l.originY {
		return -1, types.Rect{}, false
	}
	col := (x - l.originX) / l.cellW
	row := (y - l.originY) / l.cellH
	if col >= l.cols {
		return -1, types.Rect{}, false
	}
	i := row*l.cols + col
	if i >= l.n || !l.Rects[i].Contains(x, y) {
		return -1, types.Rect{}, false
	}
	return i, l.Rects[i], true
}

// Request translates a release at (x, y) of the item at source into a
// MoveRequest. ok is false when the pointer is not over any cell.
func (l Layout) Request(source, x, y int) (types.MoveRequest, bool) {
	target, rect, ok := l.HitTest(x, y)
	if !ok {
		return types.MoveRequest{}, false
	}
	return types.MoveRequest{
		SourceIndex: source,
		TargetIndex: target,
		InsertAfter: ResolveDropSide(x, rect),
	}, true
}
