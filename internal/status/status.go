// Package status tracks timed statuses and permanent traits on a character.
package status

import (
	"errors"
	"fmt"
	"sort"
)

// Kind names a status or trait.
type Kind string

const (
	// Timed statuses.
	Flying       Kind = "flying"
	StaticCharge Kind = "static-charge"
	Aimed        Kind = "aimed"
	Armored      Kind = "armored"
	Regen        Kind = "regen"
	RegenTick    Kind = "regen-tick"
	Agitated     Kind = "agitated"

	// Traits.
	Burning       Kind = "burning"
	Frozen        Kind = "frozen"
	UsingFireAmmo Kind = "using-fire-ammo"
	UsingIceAmmo  Kind = "using-ice-ammo"
	Large         Kind = "large"
)

// ErrKindConflict is returned when a kind is used both as a timed status and
// as a trait on the same store.
var ErrKindConflict = errors.New("status: kind used as both status and trait")

type entry struct {
	Duration int  `json:"duration,omitempty"`
	Trait    bool `json:"trait,omitempty"`
}

// Store maps kinds to their timed or permanent state.
// The zero Store is ready to use.
type Store struct {
	Entries map[Kind]entry `json:"entries,omitempty"`
}

// NewStore returns an empty store.
func NewStore() Store {
	return Store{Entries: make(map[Kind]entry)}
}

func (s *Store) ensure() {
	if s.Entries == nil {
		s.Entries = make(map[Kind]entry)
	}
}

// Add applies a timed status for duration ticks. Re-applying an active
// status keeps the longer of the two durations; it never stacks.
// It reports whether the status is new.
func (s *Store) Add(k Kind, duration int) (bool, error) {
	s.ensure()
	cur, ok := s.Entries[k]
	if ok && cur.Trait {
		return false, fmt.Errorf("%w: %s is a trait", ErrKindConflict, k)
	}
	if ok {
		cur.Duration = max(cur.Duration, duration)
		s.Entries[k] = cur
		return false, nil
	}
	s.Entries[k] = entry{Duration: duration}
	return true, nil
}

// AddTrait sets a permanent flag. It reports whether the trait is new.
func (s *Store) AddTrait(k Kind) (bool, error) {
	s.ensure()
	cur, ok := s.Entries[k]
	if ok && !cur.Trait {
		return false, fmt.Errorf("%w: %s is a timed status", ErrKindConflict, k)
	}
	s.Entries[k] = entry{Trait: true}
	return !ok, nil
}

// Remove drops k whether it is a status or a trait.
// It reports whether anything was removed.
func (s *Store) Remove(k Kind) bool {
	if _, ok := s.Entries[k]; !ok {
		return false
	}
	delete(s.Entries, k)
	return true
}

// Has reports whether k is active as either a status or a trait.
func (s Store) Has(k Kind) bool {
	_, ok := s.Entries[k]
	return ok
}

// IsTrait reports whether k is set as a trait.
func (s Store) IsTrait(k Kind) bool {
	return s.Entries[k].Trait
}

// Duration returns the remaining ticks of a timed status, 0 otherwise.
func (s Store) Duration(k Kind) int {
	e, ok := s.Entries[k]
	if !ok || e.Trait {
		return 0
	}
	return e.Duration
}

// Tick advances every timed status by ticks and removes those that ran out.
// The expired kinds are returned sorted so callers raise events in a stable
// order.
func (s *Store) Tick(ticks int) []Kind {
	var expired []Kind
	for k, e := range s.Entries {
		if e.Trait {
			continue
		}
		e.Duration -= ticks
		if e.Duration <= 0 {
			delete(s.Entries, k)
			expired = append(expired, k)
			continue
		}
		s.Entries[k] = e
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i] < expired[j] })
	return expired
}

// Kinds lists every active kind in sorted order.
func (s Store) Kinds() []Kind {
	out := make([]Kind, 0, len(s.Entries))
	for k := range s.Entries {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns an independent copy.
func (s Store) Clone() Store {
	c := NewStore()
	for k, e := range s.Entries {
		c.Entries[k] = e
	}
	return c
}
