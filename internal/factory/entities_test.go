package factory

import (
	"testing"

	"skirmish/assets"
	"skirmish/internal/combat"
	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/geom"
	"skirmish/internal/status"
)

var testSpec = PlayerSpec{
	Name:      "Tester",
	Glyph:     "🤠",
	Defenses:  combat.NewDefenses(1, 1, 0, 20),
	Resources: component.Resources{Ammo: 6, MaxAmmo: 6},
	Skills:    []string{assets.SkillShoot, assets.SkillReload},
}

func TestNewPlayerComponents(t *testing.T) {
	w := ecs.NewWorld()
	id := NewPlayer(w, geom.Pt(5, 3), testSpec)

	if !w.Alive(id) {
		t.Fatal("player entity must be alive")
	}
	pos := ecs.Grab[component.Position](w, id)
	if pos.Origin != geom.Pt(5, 3) || pos.Width != 1 || pos.Height != 1 {
		t.Errorf("position = %+v; want single tile at (5,3)", pos)
	}
	def := ecs.Grab[component.Defenses](w, id)
	if def.Health != 20 || def.MaxHealth != 20 {
		t.Errorf("health = %d/%d; want 20/20", def.Health, def.MaxHealth)
	}
	for _, ct := range []ecs.ComponentType{
		component.CTime, component.CCharacter, component.CSkills,
		component.CStatuses, component.CTagPlayer, component.CTagSerializable,
	} {
		if !w.Has(id, ct) {
			t.Errorf("player missing component %d", ct)
		}
	}
	if w.Has(id, component.CBehavior) {
		t.Error("player must not carry a Behavior")
	}
}

func TestPlayerSkillsAreCopied(t *testing.T) {
	w := ecs.NewWorld()
	spec := testSpec
	spec.Skills = []string{"A", "B"}
	id := NewPlayer(w, geom.Pt(0, 0), spec)
	spec.Skills[0] = "changed"
	if got := ecs.Grab[component.Skills](w, id).Names[0]; got != "A" {
		t.Fatalf("player skill list aliases the spec: %q", got)
	}
}

func TestNewMonsterLarge(t *testing.T) {
	w := ecs.NewWorld()
	id := NewMonster(w, assets.Bestiary["golem"], geom.Pt(4, 4))

	pos := ecs.Grab[component.Position](w, id)
	if len(pos.AllPositions()) != 4 {
		t.Fatalf("golem should cover 4 tiles, got %v", pos.AllPositions())
	}
	st := ecs.Grab[component.Statuses](w, id)
	if !st.IsTrait(status.Large) {
		t.Error("golem should carry the large trait")
	}
	if b := ecs.Grab[component.Behavior](w, id); b.Kind != component.BehaviorGolem {
		t.Errorf("behavior = %q", b.Kind)
	}
}

func TestNewOrbAndMarkers(t *testing.T) {
	w := ecs.NewWorld()
	path := []geom.Point{geom.Pt(1, 1), geom.Pt(1, 2), geom.Pt(1, 3)}
	orb := NewOrb(w, component.Orb{Path: path, Speed: 1})
	for _, p := range path {
		NewMarker(w, orb, p)
	}
	if pos := ecs.Grab[component.Position](w, orb); pos.Origin != path[0] {
		t.Errorf("orb starts at %v, want %v", pos.Origin, path[0])
	}
	markers := 0
	for _, id := range w.Query(component.CField) {
		if f := ecs.Grab[component.Field](w, id); f.Kind == component.FieldMarker && f.Source == orb {
			markers++
		}
	}
	if markers != 3 {
		t.Fatalf("expected 3 markers, got %d", markers)
	}
}

func TestNewFieldIsScheduled(t *testing.T) {
	w := ecs.NewWorld()
	id := NewField(w, component.Field{Kind: component.FieldDamage, Area: []geom.Point{geom.Pt(2, 2)}, Turns: 3})
	if !w.Has(id, component.CTime) {
		t.Fatal("fields act on the scheduler and need Time")
	}
	if ecs.Grab[component.Behavior](w, id).Kind != component.BehaviorField {
		t.Fatal("field behavior missing")
	}
}
