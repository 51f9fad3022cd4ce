// Package wheel implements the weighted wheel: slice layout, spin physics
// and resolution of the item under the pointer.
package wheel

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidLayout is returned for lists that cannot be laid out on a wheel.
// Spinning must be disabled while the layout is invalid.
var ErrInvalidLayout = errors.New("invalid layout")

// Item is one labeled, weighted entry on the wheel.
type Item struct {
	ID     int
	Label  string
	Weight float64
}

// Slice is the arc a single item occupies. Angles are degrees in the wheel's
// own frame, measured from the start of the first slice.
type Slice struct {
	Item        Item
	Index       int
	StartWeight float64
	EndWeight   float64
	StartAngle  float64
	EndAngle    float64
	Span        float64
	Center      float64
	LabelAngle  float64 // Center corrected by the pointer offset
	Color       string
}

// Layout is the derived slice geometry for an item list.
type Layout struct {
	Slices      []Slice
	TotalWeight float64
}

// Compute lays items out in list order, each slice spanning
// 360 * weight / totalWeight degrees.
func Compute(items []Item) (Layout, error) {
	if len(items) == 0 {
		return Layout{}, fmt.Errorf("%w: no items", ErrInvalidLayout)
	}

	var total float64
	for i, item := range items {
		if !finite(item.Weight) || item.Weight <= 0 {
			return Layout{}, fmt.Errorf("%w: item %d (%s): weight must be positive, got %v",
				ErrInvalidLayout, i+1, item.Label, item.Weight)
		}
		total += item.Weight
	}
	if !finite(total) || total <= 0 {
		return Layout{}, fmt.Errorf("%w: total weight %v", ErrInvalidLayout, total)
	}

	slices := make([]Slice, len(items))
	var cumulative float64
	for i, item := range items {
		start := cumulative
		end := start + item.Weight
		cumulative = end

		startAngle := FullTurn * start / total
		endAngle := FullTurn * end / total
		center := (startAngle + endAngle) / 2

		slices[i] = Slice{
			Item:        item,
			Index:       i,
			StartWeight: start,
			EndWeight:   end,
			StartAngle:  startAngle,
			EndAngle:    endAngle,
			Span:        FullTurn * item.Weight / total,
			Center:      center,
			LabelAngle:  Normalize(center - PointerOffset),
			Color:       Color(i, len(items)),
		}
	}

	return Layout{Slices: slices, TotalWeight: total}, nil
}

func (l Layout) Len() int {
	return len(l.Slices)
}

func (l Layout) Empty() bool {
	return len(l.Slices) == 0
}

// Items returns the laid out items in wheel order.
func (l Layout) Items() []Item {
	items := make([]Item, len(l.Slices))
	for i, s := range l.Slices {
		items[i] = s.Item
	}
	return items
}

// Share returns the fraction of the wheel slice i covers.
func (l Layout) Share(i int) float64 {
	if i < 0 || i >= len(l.Slices) || l.TotalWeight <= 0 {
		return 0
	}
	return l.Slices[i].Item.Weight / l.TotalWeight
}

// Color derives a distinguishable hue from a slice position.
func Color(index, n int) string {
	if n <= 0 {
		n = 1
	}
	hue := math.Mod(float64(index)*(FullTurn/float64(n)), FullTurn)
	if hue < 0 {
		hue += FullTurn
	}
	return colorful.Hsl(hue, 1, 0.5).Hex()
}
