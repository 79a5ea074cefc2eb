package gamemap

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"skirmish/internal/geom"
)

// ErrShape is returned when a map file does not hold a
// MaxMapTiles × MaxMapTiles grid.
var ErrShape = errors.New("gamemap: grid shape mismatch")

// Map files are a little-endian uint64 row count followed by, for every
// row, a uint64 column count and one byte per tile (1 walkable, 0 blocked).

// Load reads a map file written by WriteToFile.
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map %s: %w", path, err)
	}
	defer f.Close()

	m, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("read map %s: %w", path, err)
	}
	return m, nil
}

// Read decodes a map from r.
func Read(r io.Reader) (*Map, error) {
	var rows uint64
	if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
		return nil, fmt.Errorf("row count: %w", err)
	}
	if err := checkShape(int(rows)); err != nil {
		return nil, err
	}

	m := New()
	row := make([]byte, geom.MaxMapTiles)
	for y := 0; y < geom.MaxMapTiles; y++ {
		var cols uint64
		if err := binary.Read(r, binary.LittleEndian, &cols); err != nil {
			return nil, fmt.Errorf("row %d column count: %w", y, err)
		}
		if err := checkShape(int(cols)); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, fmt.Errorf("row %d tiles: %w", y, err)
		}
		for x, b := range row {
			switch b {
			case 0:
			case 1:
				m.Tiles[y][x].Walkable = true
			default:
				return nil, fmt.Errorf("row %d column %d: invalid tile byte %d", y, x, b)
			}
		}
	}
	return m, nil
}

// WriteToFile persists m for a later Load. Used by the debug map editor.
func (m *Map) WriteToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create map %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := m.Write(w); err != nil {
		f.Close()
		return fmt.Errorf("write map %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush map %s: %w", path, err)
	}
	return f.Close()
}

// Write encodes m to w.
func (m *Map) Write(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(geom.MaxMapTiles)); err != nil {
		return err
	}
	row := make([]byte, geom.MaxMapTiles)
	for y := range m.Tiles {
		if err := binary.Write(w, binary.LittleEndian, uint64(geom.MaxMapTiles)); err != nil {
			return err
		}
		for x, t := range m.Tiles[y] {
			row[x] = 0
			if t.Walkable {
				row[x] = 1
			}
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func checkShape(n int) error {
	if n != geom.MaxMapTiles {
		return fmt.Errorf("%w: got %d, want %d", ErrShape, n, geom.MaxMapTiles)
	}
	return nil
}
