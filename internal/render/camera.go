package render

import "skirmish/internal/geom"

// Camera translates between map coordinates and screen coordinates.
// Map X is multiplied by 2 because emoji occupy 2 terminal columns.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera showing the map from its top-left corner.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{ViewWidth: viewW, ViewHeight: viewH}
}

// Center repositions the camera so that p is in the middle of the view.
// A view larger than the map keeps the map pinned to the top-left corner.
func (c *Camera) Center(p geom.Point) {
	c.OffsetX = max(p.X-(c.ViewWidth/2)/2, 0)
	c.OffsetY = max(p.Y-c.ViewHeight/2, 0)
	if c.ViewWidth >= geom.MaxMapTiles*2 {
		c.OffsetX = 0
	}
	if c.ViewHeight >= geom.MaxMapTiles {
		c.OffsetY = 0
	}
}

// WorldToScreen converts p to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(p geom.Point) (sx, sy int, visible bool) {
	sx = (p.X - c.OffsetX) * 2
	sy = p.Y - c.OffsetY
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// Resize changes the viewport.
func (c *Camera) Resize(viewW, viewH int) {
	c.ViewWidth, c.ViewHeight = viewW, viewH
}
