package game

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"skirmish/assets"
)

// runClassSelect shows the class selection screen and blocks until the player
// picks a class. Returns false if the player quits without selecting.
func (g *Game) runClassSelect() bool {
	selected := 0
	for i, c := range assets.Classes {
		if c.ID == g.cfg.Class {
			selected = i
		}
	}
	for {
		g.drawClassSelect(selected)
		switch ev := g.screen.PollEvent().(type) {
		case nil:
			return false
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyUp:
				selected = (selected - 1 + len(assets.Classes)) % len(assets.Classes)
			case tcell.KeyDown:
				selected = (selected + 1) % len(assets.Classes)
			case tcell.KeyEnter:
				g.class = assets.Classes[selected]
				return true
			case tcell.KeyEscape:
				return false
			case tcell.KeyRune:
				switch r := ev.Rune(); {
				case r == 'k' || r == 'K':
					selected = (selected - 1 + len(assets.Classes)) % len(assets.Classes)
				case r == 'j' || r == 'J':
					selected = (selected + 1) % len(assets.Classes)
				case r == 'q' || r == 'Q':
					return false
				case r >= '1' && r <= '9':
					if idx := int(r - '1'); idx < len(assets.Classes) {
						g.class = assets.Classes[idx]
						return true
					}
				}
			}
		}
	}
}

// drawClassSelect renders the full class selection UI to the screen.
func (g *Game) drawClassSelect(selected int) {
	g.screen.Clear()
	w, _ := g.screen.Size()

	titleStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(180, 100, 255)).Bold(true)
	normalStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	highlightStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(180, 100, 255))
	statStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 220, 255))
	skillStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 200, 50))

	centerText := func(y int, text string, style tcell.Style) {
		x := max((w-runewidth.StringWidth(text))/2, 0)
		g.putText(x, y, text, style)
	}

	centerText(1, "⚔️ SKIRMISH ⚔️", titleStyle)
	centerText(2, "Choose who takes the field", dimStyle)

	// Each class occupies 4 lines + 1 blank = 5 rows. Start at row 4.
	startY := 4
	for i, class := range assets.Classes {
		y := startY + i*5
		prefix := "  "
		lineStyle := normalStyle
		if i == selected {
			prefix = "► "
			lineStyle = highlightStyle
		}

		g.putText(2, y, fmt.Sprintf("%s[%d] %s %s", prefix, i+1, class.Emoji, class.Name), lineStyle)
		g.putText(2, y+1, fmt.Sprintf("      \"%s\"", class.Lore), dimStyle)
		g.putText(2, y+2, "      "+classStats(class), statStyle)
		g.putText(2, y+3, runewidth.Truncate("      Skills: "+strings.Join(class.Skills, ", "), w-2, "…"), skillStyle)
	}

	hintsY := startY + len(assets.Classes)*5 + 1
	centerText(hintsY, "[j/k or ↑/↓] Navigate   [1-9] Quick-select   [Enter] Confirm   [q] Quit", dimStyle)

	g.screen.Show()
}

// classStats lists the pools a class starts with, skipping empty ones.
func classStats(c assets.ClassDef) string {
	parts := []string{fmt.Sprintf("HP:%-3d", c.Health), fmt.Sprintf("Dodge:%-2d", c.Dodge)}
	if c.Armor > 0 {
		parts = append(parts, fmt.Sprintf("Armor:%-2d", c.Armor))
	}
	if c.Absorb > 0 {
		parts = append(parts, fmt.Sprintf("Absorb:%-2d", c.Absorb))
	}
	if c.Ammo > 0 {
		parts = append(parts, fmt.Sprintf("Ammo:%-2d", c.Ammo))
	}
	if c.Focus > 0 {
		parts = append(parts, fmt.Sprintf("Focus:%-2d", c.Focus))
	}
	return strings.Join(parts, " ")
}

// drawScreenText writes a string to the screen at (x, y) with the given
// style and returns the column after it. Emoji take two columns.
func drawScreenText(screen tcell.Screen, x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		screen.SetContent(col, y, ch, nil, style)
		col += w
	}
	return col
}
