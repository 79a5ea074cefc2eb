package progression

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ExperiencePerInfluence is the experience that earns one influence.
const ExperiencePerInfluence = 10

// State is the meta-progression saved between battles.
type State struct {
	Class      string            `json:"class"`
	Experience int               `json:"experience"`
	Influence  int               `json:"influence"`
	Equipment  map[Slot][]string `json:"equipment"`
	Unlocked   []string          `json:"unlocked"`
	Victories  int               `json:"victories"`
}

// NewState returns a fresh profile for class.
func NewState(class string) *State {
	return &State{Class: class, Equipment: make(map[Slot][]string)}
}

// IsUnlocked reports whether the item is owned.
func (s *State) IsUnlocked(name string) bool {
	return contains(s.Unlocked, name)
}

// Unlock adds an item to the owned list without paying for it.
func (s *State) Unlock(name string) {
	if !s.IsUnlocked(name) {
		s.Unlocked = append(s.Unlocked, name)
	}
}

// Buy spends influence on an item.
func (s *State) Buy(e Equipment) error {
	if s.IsUnlocked(e.Name) {
		return nil
	}
	if s.Influence < e.Cost {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrNoInfluence, e.Name, e.Cost, s.Influence)
	}
	s.Influence -= e.Cost
	s.Unlock(e.Name)
	return nil
}

// Equip wears an owned item in its slot.
func (s *State) Equip(e Equipment) error {
	if !s.IsUnlocked(e.Name) {
		return fmt.Errorf("%w: %s", ErrLocked, e.Name)
	}
	if s.Equipment == nil {
		s.Equipment = make(map[Slot][]string)
	}
	worn := s.Equipment[e.Slot]
	if contains(worn, e.Name) {
		return fmt.Errorf("%w: %s", ErrAlreadyEquipped, e.Name)
	}
	if len(worn) >= e.Slot.Capacity() {
		return fmt.Errorf("%w: %s holds %d", ErrSlotFull, e.Slot, e.Slot.Capacity())
	}
	s.Equipment[e.Slot] = append(worn, e.Name)
	return nil
}

// Unequip takes an item off.
func (s *State) Unequip(e Equipment) error {
	worn := s.Equipment[e.Slot]
	for i, n := range worn {
		if n == e.Name {
			s.Equipment[e.Slot] = append(worn[:i:i], worn[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotEquipped, e.Name)
}

// Equipped resolves the worn items against catalog in slot order.
func (s *State) Equipped(catalog Catalog) ([]Equipment, error) {
	var out []Equipment
	for _, slot := range Slots {
		for _, n := range s.Equipment[slot] {
			e, err := catalog.Lookup(n)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
	}
	return out, nil
}

// AwardVictory grants the experience of a won battle. Every
// ExperiencePerInfluence experience crossed also grants one influence.
func (s *State) AwardVictory(experience int) {
	before := s.Experience / ExperiencePerInfluence
	s.Experience += max(experience, 0)
	s.Influence += s.Experience/ExperiencePerInfluence - before
	s.Victories++
}

// Load reads a state file. A missing file yields a fresh state for class.
func Load(path, class string) (*State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewState(class), nil
	}
	if err != nil {
		return nil, fmt.Errorf("progression: read %s: %w", path, err)
	}
	s := NewState(class)
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("progression: decode %s: %w", path, err)
	}
	if s.Equipment == nil {
		s.Equipment = make(map[Slot][]string)
	}
	return s, nil
}

// Save writes the state file, creating its directory.
func Save(path string, s *State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("progression: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("progression: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("progression: write %s: %w", path, err)
	}
	return nil
}
