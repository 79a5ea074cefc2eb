package geom

// LineTo walks the grid from the footprint tile nearest to target up to
// target. Both endpoints are included. Steps are orthogonal except where the
// ideal line passes exactly through a tile corner, which takes a diagonal.
func LineTo(from SizedPoint, target Point) ([]Point, bool) {
	if from.Width <= 0 || from.Height <= 0 {
		return nil, false
	}
	return walkGrid(from.Nearest(target), target), true
}

// DistanceTo is the number of grid-walk steps between the nearest footprint
// tile and target. It ignores walkability and is always len(LineTo)-1.
func DistanceTo(from SizedPoint, target Point) (int, bool) {
	line, ok := LineTo(from, target)
	if !ok {
		return 0, false
	}
	return len(line) - 1, true
}

func walkGrid(a, b Point) []Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	nx, ny := abs(dx), abs(dy)
	sx, sy := sign(dx), sign(dy)

	p := a
	points := []Point{p}
	for ix, iy := 0, 0; ix < nx || iy < ny; {
		decision := (1+2*ix)*ny - (1+2*iy)*nx
		switch {
		case decision == 0:
			p.X += sx
			p.Y += sy
			ix++
			iy++
		case decision < 0:
			p.X += sx
			ix++
		default:
			p.Y += sy
			iy++
		}
		points = append(points, p)
	}
	return points
}

// walkLength is len(walkGrid(a, b))-1 without building the slice.
func walkLength(a, b Point) int {
	nx, ny := abs(b.X-a.X), abs(b.Y-a.Y)
	steps := 0
	for ix, iy := 0, 0; ix < nx || iy < ny; steps++ {
		decision := (1+2*ix)*ny - (1+2*iy)*nx
		switch {
		case decision == 0:
			ix++
			iy++
		case decision < 0:
			ix++
		default:
			iy++
		}
	}
	return steps
}

// Burst returns the Manhattan diamond of the given radius around center,
// row-major, clipped to the map on every edge.
func Burst(center Point, radius int) []Point {
	var out []Point
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			if abs(x-center.X)+abs(y-center.Y) > radius {
				continue
			}
			if p, ok := NewPoint(x, y); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

// Cone returns the tiles hit by a directional sweep of the given width in
// front of origin. Row k (1..width) of an orthogonal cone is 2k-1 tiles wide
// and centred on the k-th step. Row k of a diagonal cone is the quadrant ring
// at Chebyshev distance k.
func Cone(origin Point, dir Direction, width int) []Point {
	if dir == DirNone || width <= 0 {
		return nil
	}
	dx, dy := dir.Delta()
	seen := make(map[Point]bool)
	var out []Point
	add := func(x, y int) {
		p, ok := NewPoint(x, y)
		if !ok || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	for k := 1; k <= width; k++ {
		if !dir.Diagonal() {
			cx, cy := origin.X+dx*k, origin.Y+dy*k
			// Perpendicular to (dx, dy).
			px, py := -dy, dx
			for j := -(k - 1); j <= k-1; j++ {
				add(cx+px*j, cy+py*j)
			}
			continue
		}
		for i := 0; i <= k; i++ {
			add(origin.X+dx*i, origin.Y+dy*k)
		}
		for j := 0; j < k; j++ {
			add(origin.X+dx*k, origin.Y+dy*j)
		}
	}
	return out
}

// Ring returns the on-map tiles at exactly Chebyshev distance radius from
// center, row-major. Radius 0 is the center itself.
func Ring(center Point, radius int) []Point {
	if radius == 0 {
		return []Point{center}
	}
	var out []Point
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			if max(abs(x-center.X), abs(y-center.Y)) != radius {
				continue
			}
			if p, ok := NewPoint(x, y); ok {
				out = append(out, p)
			}
		}
	}
	return out
}
