package system

import (
	"skirmish/internal/ecs"
	"skirmish/internal/geom"
)

// searchOrder is the neighbor order of the path search, so equal-length
// paths always resolve the same way.
var searchOrder = []geom.Direction{
	geom.DirNorth, geom.DirEast, geom.DirSouth, geom.DirWest,
	geom.DirNorthEast, geom.DirSouthEast, geom.DirSouthWest, geom.DirNorthWest,
}

// PathTo runs a breadth-first search over clear footprints of id until one
// comes within `within` tiles of target. It returns the footprint origins
// to step through, excluding the start.
func PathTo(a *Arena, id ecs.EntityID, target geom.Point, within int) ([]geom.Point, bool) {
	start, ok := Position(a, id)
	if !ok {
		return nil, false
	}
	if d, _ := geom.DistanceTo(start, target); d <= within {
		return nil, true
	}

	prev := map[geom.Point]geom.Point{start.Origin: start.Origin}
	queue := []geom.SizedPoint{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dir := range searchOrder {
			dx, dy := dir.Delta()
			next, ok := cur.Shift(dx, dy)
			if !ok {
				continue
			}
			if _, seen := prev[next.Origin]; seen {
				continue
			}
			if !IsClear(a, next, id) {
				continue
			}
			prev[next.Origin] = cur.Origin
			if d, _ := geom.DistanceTo(next, target); d <= within {
				return unwind(prev, start.Origin, next.Origin), true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

func unwind(prev map[geom.Point]geom.Point, start, end geom.Point) []geom.Point {
	var rev []geom.Point
	for p := end; p != start; p = prev[p] {
		rev = append(rev, p)
	}
	out := make([]geom.Point, len(rev))
	for i, p := range rev {
		out[len(rev)-1-i] = p
	}
	return out
}

// StepToward returns the first direction along the shortest clear path
// that brings id within `within` tiles of target.
func StepToward(a *Arena, id ecs.EntityID, target geom.Point, within int) (geom.Direction, bool) {
	path, ok := PathTo(a, id, target, within)
	if !ok || len(path) == 0 {
		return geom.DirNone, false
	}
	pos, _ := Position(a, id)
	return geom.DirectionTo(pos.Origin, path[0]), true
}
