package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"skirmish/assets"
	"skirmish/internal/generate"
	"skirmish/internal/progression"
)

// loadoutRows lists the catalog grouped by slot, in slot order.
func loadoutRows() []progression.Equipment {
	var rows []progression.Equipment
	for _, slot := range progression.Slots {
		rows = append(rows, assets.Equipment.InSlot(slot)...)
	}
	return rows
}

// runLoadout lets the player buy and wear equipment before the next
// battle. It returns false if the player quits instead of fighting. The
// profile is saved on the way out either way.
func (g *Game) runLoadout() bool {
	rows := loadoutRows()
	cursor := 0
	statusMsg := ""

	for {
		cursor = min(max(cursor, 0), len(rows)-1)
		g.drawLoadout(rows, cursor, statusMsg)

		ev := g.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return false
		case *tcell.EventResize:
			g.screen.Sync()
			continue
		case *tcell.EventKey:
			statusMsg = ""
			switch ev.Key() {
			case tcell.KeyEscape:
				g.leaveLoadout()
				return false
			case tcell.KeyUp:
				cursor--
			case tcell.KeyDown:
				cursor++
			case tcell.KeyEnter:
				statusMsg = g.toggleItem(rows[cursor])
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'k', 'K':
					cursor--
				case 'j', 'J':
					cursor++
				case 'e', 'E':
					statusMsg = g.toggleItem(rows[cursor])
				case 'f', 'F', ' ':
					g.leaveLoadout()
					return true
				case 'q', 'Q':
					g.leaveLoadout()
					return false
				}
			}
		}
	}
}

func (g *Game) leaveLoadout() {
	if err := g.saveProgression(); err != nil {
		g.log.WithError(err).Error("progression save failed")
	}
}

// toggleItem buys a locked item, or equips or unequips an owned one.
func (g *Game) toggleItem(e progression.Equipment) string {
	if !g.prog.IsUnlocked(e.Name) {
		if err := g.prog.Buy(e); err != nil {
			return fmt.Sprintf("%s costs %d influence.", e.Name, e.Cost)
		}
		return fmt.Sprintf("Bought %s.", e.Name)
	}
	if wearing(g.prog, e) {
		if err := g.prog.Unequip(e); err != nil {
			return err.Error()
		}
		return fmt.Sprintf("Took off %s.", e.Name)
	}
	err := g.prog.Equip(e)
	switch {
	case errors.Is(err, progression.ErrSlotFull):
		return fmt.Sprintf("The %s slot is full.", e.Slot)
	case err != nil:
		return err.Error()
	}
	return fmt.Sprintf("Equipped %s.", e.Name)
}

func wearing(s *progression.State, e progression.Equipment) bool {
	for _, n := range s.Equipment[e.Slot] {
		if n == e.Name {
			return true
		}
	}
	return false
}

func (g *Game) drawLoadout(rows []progression.Equipment, cursor int, statusMsg string) {
	g.screen.Clear()
	sw, _ := g.screen.Size()

	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gray := tcell.StyleDefault.Foreground(tcell.ColorGray)
	yellow := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	cyan := tcell.StyleDefault.Foreground(tcell.ColorAqua)
	green := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	highlight := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua)

	// Row 0: title + hint
	g.putText(0, 0, fmt.Sprintf("LOADOUT  %s %s", g.class.Emoji, g.class.Name), yellow)
	hints := "[j/k] Move  [e] Buy/Equip  [f] Fight  [q] Quit"
	if w := runewidth.StringWidth(hints); w < sw {
		g.putText(sw-w, 0, hints, gray)
	}
	next, _ := g.nextEncounter()
	name := next.Name
	if g.cfg.Random {
		name = generate.RandomName
	}
	g.putText(0, 1, fmt.Sprintf("Influence %d   Experience %d   Victories %d   Next: %s",
		g.prog.Influence, g.prog.Experience, g.prog.Victories, name), cyan)
	for x := 0; x < sw; x++ {
		g.screen.SetContent(x, 2, '─', nil, gray)
	}

	y := 3
	var slot progression.Slot
	for i, e := range rows {
		if e.Slot != slot {
			slot = e.Slot
			worn := len(g.prog.Equipment[slot])
			g.putText(0, y, fmt.Sprintf("── %s %d/%d ──", strings.ToUpper(string(slot)), worn, slot.Capacity()), white)
			y++
		}
		mark := fmt.Sprintf("%2d◆", e.Cost)
		style := gray
		switch {
		case wearing(g.prog, e):
			mark, style = "[E]", green
		case g.prog.IsUnlocked(e.Name):
			mark, style = "[ ]", white
		}
		pfx := "  "
		if i == cursor {
			pfx, style = "► ", highlight
		}
		line := fmt.Sprintf("%s%s %-14s %s", pfx, mark, e.Name, effectList(e))
		g.putText(0, y, runewidth.Truncate(line, sw, "…"), style)
		y++
	}

	y++
	if desc := rows[cursor].Description; desc != "" {
		g.putText(2, y, runewidth.Truncate(desc, sw-2, "…"), gray)
		y++
	}
	if statusMsg != "" {
		g.putText(2, y, statusMsg, yellow)
	}
	g.screen.Show()
}

func effectList(e progression.Equipment) string {
	parts := make([]string, 0, len(e.Effects))
	for _, eff := range e.Effects {
		parts = append(parts, eff.String())
	}
	return strings.Join(parts, ", ")
}
