// Package geom holds the grid geometry every battle system leans on: points,
// multi-tile footprints, lines, bursts and cones.
package geom

import "fmt"

// MaxMapTiles is the edge length of every battle map.
const MaxMapTiles = 13

// Point is an on-map grid coordinate. Off-map results are reported as a
// false ok flag, never as a negative Point.
type Point struct {
	X, Y int
}

// NewPoint returns the point at (x, y) when it lies on the map.
func NewPoint(x, y int) (Point, bool) {
	if !InBounds(x, y) {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

// Pt is NewPoint for coordinates the caller already knows are on the map.
// It panics otherwise.
func Pt(x, y int) Point {
	p, ok := NewPoint(x, y)
	if !ok {
		panic(fmt.Sprintf("geom: (%d,%d) is off the map", x, y))
	}
	return p
}

// InBounds reports whether (x, y) is on the map.
func InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < MaxMapTiles && y < MaxMapTiles
}

// Offset returns p moved by (dx, dy), if still on the map.
func (p Point) Offset(dx, dy int) (Point, bool) {
	return NewPoint(p.X+dx, p.Y+dy)
}

// Step returns the neighbour of p in direction d.
func (p Point) Step(d Direction) (Point, bool) {
	dx, dy := d.Delta()
	return p.Offset(dx, dy)
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// SizedPoint is a footprint: an origin plus a width and height in tiles.
type SizedPoint struct {
	Origin        Point
	Width, Height int
}

// Single is the footprint of an ordinary one-tile character.
func Single(p Point) SizedPoint {
	return SizedPoint{Origin: p, Width: 1, Height: 1}
}

// Sized builds a width×height footprint anchored at p.
func Sized(p Point, width, height int) SizedPoint {
	return SizedPoint{Origin: p, Width: width, Height: height}
}

// AllPositions lists every covered tile, row-major from the origin.
// The result always has Width*Height entries; tiles past the map edge are
// still listed so callers can detect the overflow with Fits.
func (s SizedPoint) AllPositions() []Point {
	out := make([]Point, 0, s.Width*s.Height)
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			out = append(out, Point{X: s.Origin.X + x, Y: s.Origin.Y + y})
		}
	}
	return out
}

// Fits reports whether every covered tile is on the map.
func (s SizedPoint) Fits() bool {
	return InBounds(s.Origin.X, s.Origin.Y) &&
		InBounds(s.Origin.X+s.Width-1, s.Origin.Y+s.Height-1)
}

// Contains reports whether p is one of the covered tiles.
func (s SizedPoint) Contains(p Point) bool {
	return p.X >= s.Origin.X && p.X < s.Origin.X+s.Width &&
		p.Y >= s.Origin.Y && p.Y < s.Origin.Y+s.Height
}

// MoveTo returns the same footprint anchored at origin.
func (s SizedPoint) MoveTo(origin Point) SizedPoint {
	s.Origin = origin
	return s
}

// Shift returns the footprint moved by (dx, dy), if it still fits.
func (s SizedPoint) Shift(dx, dy int) (SizedPoint, bool) {
	moved := SizedPoint{
		Origin: Point{X: s.Origin.X + dx, Y: s.Origin.Y + dy},
		Width:  s.Width,
		Height: s.Height,
	}
	if !moved.Fits() {
		return SizedPoint{}, false
	}
	return moved, true
}

// Nearest returns the covered tile closest to target by grid distance.
// Ties go to the first tile in row-major order.
func (s SizedPoint) Nearest(target Point) Point {
	best := s.Origin
	bestDist := -1
	for _, p := range s.AllPositions() {
		d := walkLength(p, target)
		if bestDist < 0 || d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}
