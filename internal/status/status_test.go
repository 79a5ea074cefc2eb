package status

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestAddExtendsToLongerDuration(t *testing.T) {
	s := NewStore()
	if added, err := s.Add(Aimed, 300); err != nil || !added {
		t.Fatalf("first Add = %v, %v", added, err)
	}
	if added, err := s.Add(Aimed, 100); err != nil || added {
		t.Fatalf("second Add = %v, %v", added, err)
	}
	if d := s.Duration(Aimed); d != 300 {
		t.Fatalf("shorter re-apply should keep 300, got %d", d)
	}
	s.Add(Aimed, 500) //nolint:errcheck
	if d := s.Duration(Aimed); d != 500 {
		t.Fatalf("longer re-apply should extend to 500, got %d", d)
	}
}

func TestStatusThenTraitConflicts(t *testing.T) {
	s := NewStore()
	s.Add(Burning, 100) //nolint:errcheck
	if _, err := s.AddTrait(Burning); !errors.Is(err, ErrKindConflict) {
		t.Fatalf("expected ErrKindConflict, got %v", err)
	}
}

func TestTraitThenStatusConflicts(t *testing.T) {
	var s Store
	if _, err := s.AddTrait(UsingFireAmmo); err != nil {
		t.Fatalf("AddTrait on zero Store: %v", err)
	}
	if _, err := s.Add(UsingFireAmmo, 100); !errors.Is(err, ErrKindConflict) {
		t.Fatalf("expected ErrKindConflict, got %v", err)
	}
	if !s.IsTrait(UsingFireAmmo) {
		t.Fatal("failed Add must leave the trait untouched")
	}
}

func TestTraitsNeverExpire(t *testing.T) {
	s := NewStore()
	s.AddTrait(Frozen) //nolint:errcheck
	if expired := s.Tick(10_000); len(expired) != 0 {
		t.Fatalf("traits should not expire, got %v", expired)
	}
	if !s.Has(Frozen) {
		t.Fatal("trait vanished after ticking")
	}
}

func TestTickExpiresInSortedOrder(t *testing.T) {
	s := NewStore()
	s.Add(StaticCharge, 50) //nolint:errcheck
	s.Add(Aimed, 50)        //nolint:errcheck
	s.Add(Flying, 200)      //nolint:errcheck

	expired := s.Tick(50)
	if len(expired) != 2 || expired[0] != Aimed || expired[1] != StaticCharge {
		t.Fatalf("expected [aimed static-charge], got %v", expired)
	}
	if d := s.Duration(Flying); d != 150 {
		t.Fatalf("flying should have 150 left, got %d", d)
	}
}

func TestRemove(t *testing.T) {
	s := NewStore()
	s.Add(Regen, 100) //nolint:errcheck
	if !s.Remove(Regen) || s.Has(Regen) {
		t.Fatal("Remove should drop the status")
	}
	if s.Remove(Regen) {
		t.Fatal("second Remove should report nothing removed")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	s := NewStore()
	s.Add(Armored, 120)       //nolint:errcheck
	s.AddTrait(UsingIceAmmo) //nolint:errcheck
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	var back Store
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Duration(Armored) != 120 || !back.IsTrait(UsingIceAmmo) {
		t.Fatalf("round trip lost data: %+v", back)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewStore()
	s.Add(Aimed, 10) //nolint:errcheck
	c := s.Clone()
	c.Remove(Aimed)
	if !s.Has(Aimed) {
		t.Fatal("mutating the clone changed the original")
	}
}
