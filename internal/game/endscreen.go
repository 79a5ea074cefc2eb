package game

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"skirmish/internal/battle"
	"skirmish/internal/progression"
)

// showEndScreen renders the battle summary and returns true if the player
// wants another battle.
func (g *Game) showEndScreen(run progression.Run, b *battle.Battle) bool {
	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gold := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	gray := tcell.StyleDefault.Foreground(tcell.ColorGray)
	dim := tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	green := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)

	for {
		g.screen.Clear()
		sw, _ := g.screen.Size()

		sep := func(y int) {
			for x := 0; x < sw; x++ {
				g.screen.SetContent(x, y, '─', nil, gray)
			}
		}
		// label prints a left-aligned key at column 2 and value at column 22.
		label := func(y int, l, v string) {
			g.putText(2, y, l, dim)
			g.putText(22, y, v, white)
		}

		y := 1
		sep(y)
		y += 2

		if run.Victory {
			g.putText(2, y, "THE FIELD IS YOURS", gold)
			badge := "[VICTORY]"
			g.putText(sw-len(badge)-1, y, badge, green)
		} else {
			g.putText(2, y, "YOU HAVE FALLEN", gold)
			badge := "[DEFEAT]"
			g.putText(sw-len(badge)-1, y, badge, red)
		}
		y += 2

		label(y, "Class:", g.class.Name)
		y++
		label(y, "Encounter:", run.Encounter)
		y++
		label(y, "Turns:", fmt.Sprintf("%d", run.Turns))
		y++
		label(y, "Enemies Slain:", fmt.Sprintf("%d", b.Kills()))
		y += 2

		label(y, "Experience Won:", fmt.Sprintf("%d", run.Experience))
		y++
		if g.prog != nil {
			label(y, "Influence:", fmt.Sprintf("%d", g.prog.Influence))
			y++
			label(y, "Victories:", fmt.Sprintf("%d", g.prog.Victories))
			y++
		}
		y++

		sep(y)
		y += 2

		g.putText(2, y, "[R] Fight Again", green)
		g.putText(20, y, "[Q] Quit", red)

		g.screen.Show()

		switch ev := g.screen.PollEvent().(type) {
		case nil:
			return false
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'r', 'R':
					return true
				case 'q', 'Q':
					return false
				}
			case tcell.KeyEscape:
				return false
			}
		}
	}
}
