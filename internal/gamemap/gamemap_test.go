package gamemap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"skirmish/internal/geom"
)

func TestNewIsBlockedOpenIsWalkable(t *testing.T) {
	if New().IsWalkable(geom.Pt(4, 4)) {
		t.Error("New map tiles should start blocked")
	}
	if !Open().IsWalkable(geom.Pt(4, 4)) {
		t.Error("Open map tiles should start walkable")
	}
}

func TestSetWalkableAndToggle(t *testing.T) {
	m := Open()
	p := geom.Pt(3, 7)
	m.SetWalkable(p, false)
	if m.IsWalkable(p) {
		t.Fatal("SetWalkable(false) should be reflected by IsWalkable")
	}
	if !m.Toggle(p) || !m.IsWalkable(p) {
		t.Fatal("Toggle should flip the tile back to walkable")
	}
}

func TestFootprintWalkable(t *testing.T) {
	m := Open()
	m.SetWalkable(geom.Pt(6, 6), false)
	if m.FootprintWalkable(geom.Sized(geom.Pt(5, 5), 2, 2)) {
		t.Error("footprint covering a blocked tile should not be walkable")
	}
	if !m.FootprintWalkable(geom.Sized(geom.Pt(2, 2), 2, 2)) {
		t.Error("clear footprint should be walkable")
	}
	if m.FootprintWalkable(geom.Sized(geom.Pt(12, 12), 2, 2)) {
		t.Error("footprint hanging off the map should not be walkable")
	}
}

func TestRoundTripIsByteStable(t *testing.T) {
	m := Open()
	m.SetWalkable(geom.Pt(0, 0), false)
	m.SetWalkable(geom.Pt(12, 3), false)
	m.SetWalkable(geom.Pt(5, 9), false)

	var first bytes.Buffer
	if err := m.Write(&first); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := 8 + geom.MaxMapTiles*(8+geom.MaxMapTiles)
	if first.Len() != want {
		t.Fatalf("encoded size %d, want %d", first.Len(), want)
	}

	loaded, err := Read(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if loaded.Tiles != m.Tiles {
		t.Fatal("decoded grid differs from original")
	}

	var second bytes.Buffer
	if err := loaded.Write(&second); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatal("re-encoding produced different bytes")
	}
}

func TestLoadAndWriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.map")
	m := Open()
	m.SetWalkable(geom.Pt(7, 7), false)
	if err := m.WriteToFile(path); err != nil {
		t.Fatalf("WriteToFile: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.IsWalkable(geom.Pt(7, 7)) || !loaded.IsWalkable(geom.Pt(6, 7)) {
		t.Fatal("loaded map does not match written map")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.map"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestReadRejectsWrongShape(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint64(geom.MaxMapTiles+1)) //nolint:errcheck
	_, err := Read(&buf)
	if !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
}

func TestReadRejectsTruncatedFile(t *testing.T) {
	var full bytes.Buffer
	if err := Open().Write(&full); err != nil {
		t.Fatal(err)
	}
	_, err := Read(bytes.NewReader(full.Bytes()[:full.Len()-3]))
	if err == nil {
		t.Fatal("expected error for truncated map data")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := Open()
	m.SetWalkable(geom.Pt(1, 2), false)
	back, err := FromSnapshot(m.Snapshot())
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	if back.Tiles != m.Tiles {
		t.Fatal("snapshot round trip changed the grid")
	}
	if _, err := FromSnapshot([][]bool{{true}}); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape for tiny snapshot, got %v", err)
	}
}
