// Package layout splits the terminal into boxes with a small flexbox model.
//
//	Column(
//		FlexItemBox(nil, Max(Rel(1)), Row(
//			FlexItemBox(gutter, Exact(Abs(4)), nil),
//			FlexItemBox(text, Max(Rel(1)), nil),
//		)),
//		FlexItemBox(status, Exact(Abs(1)), nil),
//	)
package layout

import (
	"slices"
)

type Point struct {
	X, Y int
}

// Dimensions is the area resolved for a box. Origin is the top left corner.
type Dimensions struct {
	Origin        Point
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside d.
func (d Dimensions) Contains(x, y int) bool {
	return x >= d.Origin.X && x < d.Origin.X+d.Width && y >= d.Origin.Y && y < d.Origin.Y+d.Height
}

// LayoutBox draws into the area it is given.
type LayoutBox func(Dimensions)

type Direction int

const (
	Y Direction = iota // children stacked top to bottom
	X                  // children placed left to right
)

type Flex struct {
	Dir   Direction // direction of the main axis
	Items []FlexItem
}

func Column(items ...FlexItem) *Flex {
	return &Flex{Dir: Y, Items: items}
}

func Row(items ...FlexItem) *Flex {
	return &Flex{Dir: X, Items: items}
}

// FlexItem is a box, optionally subdivided by a nested Flex. Box may be nil.
type FlexItem struct {
	Box  LayoutBox
	Flex *Flex
	Size Constraint
}

func FlexItemBox(box LayoutBox, size Constraint, flex *Flex) FlexItem {
	return FlexItem{Box: box, Size: size, Flex: flex}
}

// Constraint bounds an item along the main axis of its parent.
type Constraint struct {
	Min, Max Size
}

func Exact(size Size) Constraint {
	return Constraint{Min: size, Max: size}
}

func Max(size Size) Constraint {
	return Constraint{Min: Abs(0), Max: size}
}

// Size is either an absolute cell count or a fraction of the parent.
type Size struct {
	abs int     // absolute size
	rel float64 // [0, 1]
}

func Abs(abs int) Size {
	return Size{abs: abs}
}

func Rel(rel float64) Size {
	return Size{rel: rel}
}

func (s Size) toAbs(size int) int {
	if s.abs != 0 {
		return s.abs
	}
	return int(s.rel * float64(size))
}

// StartLayouting lays out f over a width x height screen.
func (f *Flex) StartLayouting(width, height int) {
	f.Layout(Dimensions{Width: width, Height: height})
}

// Layout resolves the size of every item inside dims, calls its box and then
// lays out its nested Flex. Items whose minimum size exceeds an equal share of
// the main axis are skipped.
func (f *Flex) Layout(dims Dimensions) {
	if len(f.Items) == 0 {
		return
	}
	total := dims.Height
	if f.Dir == X {
		total = dims.Width
	}

	share := total / len(f.Items)
	var visible []int
	for i, item := range f.Items {
		if item.Size.Min.toAbs(total) <= share {
			visible = append(visible, i)
		}
	}

	sizes := distribute(f.Items, visible, total)

	orig := dims.Origin
	for _, i := range visible {
		item := f.Items[i]
		d := Dimensions{Origin: orig, Width: dims.Width, Height: dims.Height}
		if f.Dir == X {
			d.Width = sizes[i]
			orig.X += sizes[i]
		} else {
			d.Height = sizes[i]
			orig.Y += sizes[i]
		}
		if item.Box != nil {
			item.Box(d)
		}
		if item.Flex != nil {
			item.Flex.Layout(d)
		}
	}
}

// distribute hands out total cells, smallest maximum first, so items with a
// small cap are satisfied before the flexible ones share what is left.
func distribute(items []FlexItem, visible []int, total int) map[int]int {
	order := slices.Clone(visible)
	slices.SortStableFunc(order, func(a, b int) int {
		return items[a].Size.Max.toAbs(total) - items[b].Size.Max.toAbs(total)
	})

	sizes := make(map[int]int, len(order))
	remaining := total
	for n, i := range order {
		size := items[i].Size
		fair := remaining / (len(order) - n)
		fill := min(size.Max.toAbs(total), fair)
		fill = max(fill, size.Min.toAbs(total))
		fill = min(fill, remaining)
		sizes[i] = fill
		remaining -= fill
	}
	return sizes
}
