package geom

// Direction is one of the eight compass steps.
type Direction uint8

const (
	DirNone Direction = iota
	DirNorth
	DirNorthEast
	DirEast
	DirSouthEast
	DirSouth
	DirSouthWest
	DirWest
	DirNorthWest
)

var dirDeltas = [...][2]int{
	DirNone:      {0, 0},
	DirNorth:     {0, -1},
	DirNorthEast: {1, -1},
	DirEast:      {1, 0},
	DirSouthEast: {1, 1},
	DirSouth:     {0, 1},
	DirSouthWest: {-1, 1},
	DirWest:      {-1, 0},
	DirNorthWest: {-1, -1},
}

// Delta returns the (dx, dy) step for d.
func (d Direction) Delta() (int, int) {
	if int(d) >= len(dirDeltas) {
		return 0, 0
	}
	v := dirDeltas[d]
	return v[0], v[1]
}

// Diagonal reports whether d moves on both axes.
func (d Direction) Diagonal() bool {
	dx, dy := d.Delta()
	return dx != 0 && dy != 0
}

// FromDelta maps a step with components in {-1,0,1} to its Direction.
func FromDelta(dx, dy int) Direction {
	dx, dy = sign(dx), sign(dy)
	for d, v := range dirDeltas {
		if v[0] == dx && v[1] == dy {
			return Direction(d)
		}
	}
	return DirNone
}

// DirectionTo is the compass direction pointing from a toward b.
func DirectionTo(a, b Point) Direction {
	return FromDelta(b.X-a.X, b.Y-a.Y)
}

func (d Direction) String() string {
	switch d {
	case DirNorth:
		return "north"
	case DirNorthEast:
		return "northeast"
	case DirEast:
		return "east"
	case DirSouthEast:
		return "southeast"
	case DirSouth:
		return "south"
	case DirSouthWest:
		return "southwest"
	case DirWest:
		return "west"
	case DirNorthWest:
		return "northwest"
	}
	return "none"
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
