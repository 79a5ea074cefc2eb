// Package render draws a battle onto a tcell screen: the arena, fields,
// characters and in-flight animations, a targeting or map-editor overlay and
// the HUD.
package render

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/geom"
	"skirmish/internal/system"
)

// HUDRows is the height reserved for the HUD at the bottom of the screen.
const HUDRows = 10

// View is the interface state the frame depends on beyond the arena.
type View struct {
	Title string
	// Skill is being aimed at Cursor while Targeting.
	Targeting bool
	Skill     string
	Cursor    geom.Point
	// Editing shows the walkability overlay with Cursor on it.
	Editing bool
	// Notice replaces the key help for one frame.
	Notice string
}

// Renderer draws the arena onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	tiles  Tiles
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(w, max(h-HUDRows, 1)),
		tiles:  Themes[0],
	}
}

// SetTiles changes the arena theme.
func (r *Renderer) SetTiles(t Tiles) { r.tiles = t }

// Resize refits the viewport after the terminal changed size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.Resize(w, max(h-HUDRows, 1))
}

// WorldToScreen converts a map tile to screen coordinates.
func (r *Renderer) WorldToScreen(p geom.Point) (sx, sy int, visible bool) {
	return r.camera.WorldToScreen(p)
}

// DrawFrame renders tiles, fields, entities, animations and the overlay.
// It does not show the screen; DrawHUD does.
func (r *Renderer) DrawFrame(a *system.Arena, player ecs.EntityID, v View) {
	r.screen.Clear()
	if pos, ok := system.Position(a, player); ok {
		r.camera.Center(pos.Origin)
	}
	r.drawMap(a, v.Editing)
	if v.Editing {
		r.drawCursor(v.Cursor)
		return
	}
	r.drawFields(a)
	r.drawEntities(a)
	r.drawAnimations(a)
	if v.Targeting {
		r.drawAim(a, player, v.Cursor)
	}
}

func (r *Renderer) drawMap(a *system.Arena, editing bool) {
	tiles := r.tiles
	if editing {
		tiles = EditorTiles
	}
	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	for y := 0; y < geom.MaxMapTiles; y++ {
		for x := 0; x < geom.MaxMapTiles; x++ {
			p := geom.Pt(x, y)
			sx, sy, onScreen := r.camera.WorldToScreen(p)
			if !onScreen {
				continue
			}
			glyph := tiles.Floor
			if !a.Map.IsWalkable(p) {
				glyph = tiles.Wall
			}
			r.putGlyph(sx, sy, glyph, style)
		}
	}
}

// drawFields paints every field tile, trails under zones.
func (r *Renderer) drawFields(a *system.Arena) {
	ids := a.World.Query(component.CField, component.CAppearance)
	sort.SliceStable(ids, func(i, j int) bool {
		return ecs.Grab[component.Appearance](a.World, ids[i]).RenderOrder <
			ecs.Grab[component.Appearance](a.World, ids[j]).RenderOrder
	})
	for _, id := range ids {
		f := ecs.Grab[component.Field](a.World, id)
		app := ecs.Grab[component.Appearance](a.World, id)
		style := tcell.StyleDefault.Foreground(app.FGColor).Background(tcell.ColorBlack)
		for _, p := range f.Area {
			if sx, sy, ok := r.camera.WorldToScreen(p); ok {
				r.putGlyph(sx, sy, app.Glyph, style)
			}
		}
	}
}

// renderableEntity holds sorting info for entity rendering.
type renderableEntity struct {
	id    ecs.EntityID
	order int
	pos   component.Position
	app   component.Appearance
}

// drawEntities renders everything with a footprint, ordered by RenderOrder.
// Multi-tile characters repeat their glyph on every tile they cover.
func (r *Renderer) drawEntities(a *system.Arena) {
	ids := a.World.Query(component.CAppearance, component.CPosition)
	entities := make([]renderableEntity, 0, len(ids))
	for _, id := range ids {
		if a.World.Has(id, component.CField) {
			continue
		}
		app := ecs.Grab[component.Appearance](a.World, id)
		entities = append(entities, renderableEntity{
			id:    id,
			order: app.RenderOrder,
			pos:   ecs.Grab[component.Position](a.World, id),
			app:   app,
		})
	}
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].order < entities[j].order
	})

	for _, e := range entities {
		style := tcell.StyleDefault.Foreground(e.app.FGColor).Background(tcell.ColorBlack)
		if anim, ok := ecs.Lookup[component.Animation](a.World, e.id); ok {
			style = animationStyle(style, anim)
		}
		for _, p := range e.pos.AllPositions() {
			if sx, sy, ok := r.camera.WorldToScreen(p); ok {
				r.putGlyph(sx, sy, e.app.Glyph, style)
			}
		}
	}
}

// animationStyle tints a character by what it is doing. Hits flash on
// alternate frames.
func animationStyle(base tcell.Style, anim component.Animation) tcell.Style {
	switch anim.State {
	case component.AnimHit:
		if anim.Frame%2 == 0 {
			return base.Background(tcell.ColorDarkRed)
		}
	case component.AnimCast, component.AnimCharge:
		return base.Background(tcell.ColorNavy)
	case component.AnimMelee, component.AnimCone, component.AnimExplode:
		return base.Background(tcell.ColorOlive)
	}
	return base
}

// drawAnimations draws projectiles along their paths and the blast area of
// cone and explode windups.
func (r *Renderer) drawAnimations(a *system.Arena) {
	for _, id := range a.World.Query(component.CAnimation) {
		anim := ecs.Grab[component.Animation](a.World, id)
		if app, ok := ecs.Lookup[component.Appearance](a.World, id); ok && a.World.Has(id, component.CBolt) {
			if p, ok := anim.PathPoint(); ok {
				if sx, sy, ok := r.camera.WorldToScreen(p); ok {
					r.putGlyph(sx, sy, app.Glyph, tcell.StyleDefault.Foreground(app.FGColor).Background(tcell.ColorBlack))
				}
			}
		}
		atk, ok := ecs.Lookup[component.Attack](a.World, id)
		if !ok || (anim.State != component.AnimCone && anim.State != component.AnimExplode) {
			continue
		}
		for _, p := range atk.Area {
			if sx, sy, ok := r.camera.WorldToScreen(p); ok {
				r.putGlyph(sx, sy, GlyphBlast, tcell.StyleDefault.Background(tcell.ColorBlack))
			}
		}
	}
}

// drawAim marks the line from the player to the cursor and the cursor.
func (r *Renderer) drawAim(a *system.Arena, player ecs.EntityID, cursor geom.Point) {
	if pos, ok := system.Position(a, player); ok {
		line, _ := geom.LineTo(pos, cursor)
		style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)
		for _, p := range line {
			if pos.Contains(p) || p == cursor {
				continue
			}
			if _, occupied := system.CharacterAt(a, p); occupied {
				continue
			}
			if sx, sy, ok := r.camera.WorldToScreen(p); ok {
				r.putGlyph(sx, sy, GlyphAim, style)
				r.screen.SetContent(sx+1, sy, ' ', nil, style)
			}
		}
	}
	r.drawCursor(cursor)
}

func (r *Renderer) drawCursor(p geom.Point) {
	if sx, sy, ok := r.camera.WorldToScreen(p); ok {
		r.putGlyph(sx, sy, GlyphCursor, tcell.StyleDefault.Background(tcell.ColorDarkSlateGray))
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
