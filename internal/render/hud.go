package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/geom"
	"skirmish/internal/status"
	"skirmish/internal/system"
)

// LogLines is how many combat messages the HUD shows.
const LogLines = 4

// DrawHUD renders the roster beside the map, the status lines and the
// combat log below it, then shows the screen.
func (r *Renderer) DrawHUD(a *system.Arena, player ecs.EntityID, v View) {
	screenW, screenH := r.screen.Size()
	hudY := screenH - HUDRows

	r.drawRoster(a, geom.MaxMapTiles*2+2)
	r.drawHLine(hudY, tcell.ColorGray)

	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	stat := tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 220, 255))
	r.drawText(0, hudY+1, fit(statusLine(a, player, v.Title), screenW), white)
	r.drawText(0, hudY+2, fit(resourceLine(a, player), screenW), stat)
	r.drawText(0, hudY+3, fit(conditionLine(a, player), screenW), tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 200, 50)))
	r.drawSkillBar(a, player, v, hudY+4, screenW)

	dim := tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	for i, msg := range a.Log.Last(LogLines) {
		r.drawText(0, hudY+5+i, fit(msg, screenW), dim)
	}
	r.drawText(0, hudY+5+LogLines, fit(modeLine(v), screenW), tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}

func statusLine(a *system.Arena, player ecs.EntityID, title string) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "[%s]  ", title)
	}
	if def, ok := ecs.Lookup[component.Defenses](a.World, player); ok {
		fmt.Fprintf(&b, "HP %d/%d  Dodge %d/%d  Armor %d  Absorb %d",
			def.Health, def.MaxHealth, def.Dodge, def.MaxDodge, def.Armor, def.Absorb)
	} else {
		b.WriteString("HP 0")
	}
	if temp, ok := ecs.Lookup[component.Temperature](a.World, player); ok {
		fmt.Fprintf(&b, "  Temp %+d", temp.Current)
	}
	return b.String()
}

func resourceLine(a *system.Arena, player ecs.EntityID) string {
	res, ok := ecs.Lookup[component.Resources](a.World, player)
	if !ok {
		return ""
	}
	var parts []string
	if res.MaxAmmo > 0 {
		parts = append(parts, fmt.Sprintf("Ammo %d/%d", res.Ammo, res.MaxAmmo))
	}
	if res.MaxExhaustion > 0 {
		parts = append(parts, fmt.Sprintf("Exhaustion %d/%d", res.Exhaustion, res.MaxExhaustion))
	}
	if res.MaxFocus > 0 {
		parts = append(parts, fmt.Sprintf("Focus %d/%d", res.Focus, res.MaxFocus))
	}
	if t, ok := ecs.Lookup[component.Time](a.World, player); ok {
		parts = append(parts, fmt.Sprintf("Ticks %d", t.Ticks))
	}
	return strings.Join(parts, "  ")
}

// conditionLine lists statuses with their remaining ticks; traits have none.
func conditionLine(a *system.Arena, player ecs.EntityID) string {
	st, ok := ecs.Lookup[component.Statuses](a.World, player)
	if !ok || len(st.Kinds()) == 0 {
		return ""
	}
	var parts []string
	for _, k := range st.Kinds() {
		if st.IsTrait(k) {
			parts = append(parts, string(k))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s(%d)", k, st.Duration(k)))
	}
	return "Status: " + strings.Join(parts, " ")
}

// drawSkillBar numbers the player's skills. Skills that cannot be used now
// are grayed; the one being aimed is highlighted.
func (r *Renderer) drawSkillBar(a *system.Arena, player ecs.EntityID, v View, y, width int) {
	skills, ok := ecs.Lookup[component.Skills](a.World, player)
	if !ok {
		return
	}
	usable := make(map[string]bool)
	for _, n := range system.UsableSkills(a, player) {
		usable[n] = true
	}
	normal := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gray := tcell.StyleDefault.Foreground(tcell.ColorGray)
	highlight := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(180, 100, 255))

	x := 0
	for i, name := range skills.Names {
		label := fmt.Sprintf("%d %s", i+1, name)
		style := normal
		switch {
		case v.Targeting && name == v.Skill:
			style = highlight
		case !usable[name]:
			style = gray
		}
		if x+runewidth.StringWidth(label) > width {
			break
		}
		x = r.drawText(x, y, label, style) + 2
	}
}

// drawRoster lists the enemies to the right of the map.
func (r *Renderer) drawRoster(a *system.Arena, x int) {
	screenW, _ := r.screen.Size()
	if x >= screenW {
		return
	}
	y := 0
	for _, id := range system.Enemies(a) {
		if y >= r.camera.ViewHeight {
			return
		}
		name := system.Name(a, id)
		line := name
		if def, ok := ecs.Lookup[component.Defenses](a.World, id); ok {
			line = fmt.Sprintf("%s %d/%d", name, def.Health, def.MaxHealth)
		}
		if system.HasStatus(a, id, status.Flying) {
			line += " (aloft)"
		}
		col := x
		if app, ok := ecs.Lookup[component.Appearance](a.World, id); ok {
			r.putGlyph(col, y, app.Glyph, tcell.StyleDefault)
			col += 3
		}
		r.drawText(col, y, runewidth.Truncate(line, screenW-col, "…"), tcell.StyleDefault.Foreground(tcell.ColorWhite))
		y++
	}
}

func modeLine(v View) string {
	switch {
	case v.Notice != "":
		return v.Notice
	case v.Editing:
		return fmt.Sprintf("Map editor at %v  [Enter] toggle wall  [w] write map  [m] done", v.Cursor)
	case v.Targeting:
		return fmt.Sprintf("Aiming %s at %v  [Enter] confirm  [Esc] cancel", v.Skill, v.Cursor)
	}
	return "[hjklyubn] move  [1-9] skills  [.] wait  [m] map editor  [q] quit"
}

// fit truncates text to the screen width, counting emoji as two columns.
func fit(text string, width int) string {
	return runewidth.Truncate(text, width, "…")
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text starting at column x and returns the column after
// it. Wide runes take two columns; zero-width runes are skipped.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		r.screen.SetContent(col, y, ch, nil, style)
		col += w
	}
	return col
}
