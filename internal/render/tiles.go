package render

import "skirmish/assets"

// Tiles holds the glyphs used to draw one arena's terrain. Emoji carry
// their own colors, so walls and floors use distinct glyphs rather than
// tinted ones.
type Tiles struct {
	Wall  string
	Floor string
}

// Themes are the arena tile sets, one per encounter in order. Encounters
// past the end reuse the last set.
var Themes = []Tiles{
	// Ambush: rubble-strewn street.
	{Wall: assets.GlyphWall, Floor: assets.GlyphFloor},
	// Coven: fungal grove.
	{Wall: "🍄", Floor: "🌿"},
	// Quarry: stone pit.
	{Wall: "🪨", Floor: "🟫"},
}

// EditorTiles draw the map editor overlay, where walkability is the only
// thing that matters.
var EditorTiles = Tiles{Wall: "⬛", Floor: "⬜"}

// Overlay glyphs.
const (
	GlyphCursor = "🎯"
	GlyphAim    = "·"
	GlyphBlast  = "💥"
)

// Theme returns the tile set for encounter index i.
func Theme(i int) Tiles {
	if i < 0 {
		i = 0
	}
	if i >= len(Themes) {
		i = len(Themes) - 1
	}
	return Themes[i]
}
