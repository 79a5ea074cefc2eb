package assets

import (
	"bytes"
	_ "embed"

	"skirmish/internal/gamemap"
)

//go:embed maps/arena.map
var arenaMap []byte

// ArenaMap decodes the bundled arena.
func ArenaMap() (*gamemap.Map, error) {
	return gamemap.Read(bytes.NewReader(arenaMap))
}
