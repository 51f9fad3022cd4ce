package wheel

import (
	"fate/internal/util"
	"math"
)

// boundaryTolerance is the fraction of a full turn within which an angle
// counts as sitting on a slice boundary. Cumulative float weights drift by a
// few ulps.
const boundaryTolerance = 1e-9

// Selection is the item resolved from a rotation.
type Selection struct {
	Item     Item
	Index    int
	Rotation float64
}

// PointerAngle converts a wheel rotation into the wheel-frame angle under
// the pointer. The wheel turns clockwise while slices advance in list order,
// so the corrected rotation is mirrored; the result lies in (0, 360].
// A rotation that puts the pointer exactly on the zero boundary therefore
// resolves to the last slice, not the first.
func PointerAngle(rotation float64) float64 {
	return FullTurn - Normalize(rotation-PointerOffset)
}

// SliceAt returns the first slice whose end weight reaches the weight
// position of a wheel-frame angle in [0, 360]. A position on a boundary
// belongs to the slice ending there. Positions pushed past the last boundary
// by rounding fall back to the last slice.
func (l Layout) SliceAt(angle float64) (Slice, bool) {
	if len(l.Slices) == 0 {
		return Slice{}, false
	}

	pos := angle * l.TotalWeight / FullTurn
	tol := boundaryTolerance * l.TotalWeight
	for _, s := range l.Slices {
		if s.EndWeight >= pos-tol {
			return s, true
		}
	}
	return l.Slices[len(l.Slices)-1], true
}

// Resolve returns the item under the pointer for the given rotation.
// It reports false only for an empty layout.
func Resolve(l Layout, rotation float64) (Selection, bool) {
	s, ok := l.SliceAt(PointerAngle(rotation))
	if !ok {
		return Selection{}, false
	}
	return Selection{Item: s.Item, Index: s.Index, Rotation: Normalize(rotation)}, true
}

// ResolveEqualWidth resolves as if every slice had the same width. It agrees
// with Resolve whenever all weights are equal.
func ResolveEqualWidth(l Layout, rotation float64) (Selection, bool) {
	n := len(l.Slices)
	if n == 0 {
		return Selection{}, false
	}

	perSlice := FullTurn / float64(n)
	corrected := Normalize(rotation - PointerOffset)
	tol := boundaryTolerance * float64(n)
	idx := util.Clamp(int(math.Floor(corrected/perSlice+tol)), 0, n-1)

	s := l.Slices[n-1-idx]
	return Selection{Item: s.Item, Index: s.Index, Rotation: Normalize(rotation)}, true
}
