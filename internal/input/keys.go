// Package input turns terminal key presses into battle commands. A small
// state machine tracks whether the player is picking a skill target or
// editing the map.
package input

import (
	"github.com/gdamore/tcell/v2"

	"skirmish/internal/geom"
)

// IntentKind is what a key means before the controller's state is taken
// into account.
type IntentKind uint8

const (
	IntentNone IntentKind = iota
	IntentMove
	IntentWait
	IntentSlot
	IntentConfirm
	IntentCancel
	IntentQuit
	IntentToggleMapEdit
	IntentWriteMap
)

// Intent is one translated key.
type Intent struct {
	Kind IntentKind
	Dir  geom.Direction
	// Slot is the zero-based skill bar index of a digit key.
	Slot int
}

// Translate maps a key event to an intent.
func Translate(ev *tcell.EventKey) Intent {
	switch ev.Key() {
	case tcell.KeyUp:
		return move(geom.DirNorth)
	case tcell.KeyDown:
		return move(geom.DirSouth)
	case tcell.KeyRight:
		return move(geom.DirEast)
	case tcell.KeyLeft:
		return move(geom.DirWest)
	case tcell.KeyEnter:
		return Intent{Kind: IntentConfirm}
	case tcell.KeyEscape:
		return Intent{Kind: IntentCancel}
	case tcell.KeyF2:
		return Intent{Kind: IntentToggleMapEdit}
	case tcell.KeyRune:
	default:
		return Intent{}
	}

	r := ev.Rune()
	if r >= '1' && r <= '9' {
		return Intent{Kind: IntentSlot, Slot: int(r - '1')}
	}
	switch r {
	case 'k', 'K':
		return move(geom.DirNorth)
	case 'j', 'J':
		return move(geom.DirSouth)
	case 'l', 'L':
		return move(geom.DirEast)
	case 'h', 'H':
		return move(geom.DirWest)
	case 'y', 'Y':
		return move(geom.DirNorthWest)
	case 'u', 'U':
		return move(geom.DirNorthEast)
	case 'b', 'B':
		return move(geom.DirSouthWest)
	case 'n', 'N':
		return move(geom.DirSouthEast)
	case '.', ' ':
		return Intent{Kind: IntentWait}
	case 'q', 'Q':
		return Intent{Kind: IntentQuit}
	case 'm', 'M':
		return Intent{Kind: IntentToggleMapEdit}
	case 'w', 'W':
		return Intent{Kind: IntentWriteMap}
	}
	return Intent{}
}

func move(d geom.Direction) Intent { return Intent{Kind: IntentMove, Dir: d} }
