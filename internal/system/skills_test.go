package system

import (
	"errors"
	"testing"

	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/geom"
	"skirmish/internal/skill"
	"skirmish/internal/status"
)

func TestInvokeSkillRejections(t *testing.T) {
	tests := []struct {
		name   string
		skill  string
		target *geom.Point
		setup  func(a *Arena, player ecs.EntityID)
		want   error
	}{
		{"unknown skill", "Teleport", nil, nil, skill.ErrUnknownSkill},
		{"target on untargeted skill", "Guard", ptr(geom.Pt(2, 3)), nil, ErrTargetShape},
		{"missing target", "Bolt", nil, nil, ErrTargetShape},
		{"empty tile for enemy skill", "Bolt", ptr(geom.Pt(4, 4)), nil, ErrBadTarget},
		{"out of range", "Bolt", ptr(geom.Pt(2, 9)), func(a *Arena, _ ecs.EntityID) {
			addDummy(a, geom.Pt(2, 9), 10)
		}, ErrOutOfRange},
		{"line blocked", "Bolt", ptr(geom.Pt(2, 5)), func(a *Arena, _ ecs.EntityID) {
			addDummy(a, geom.Pt(2, 5), 10)
			a.Map.SetWalkable(geom.Pt(2, 4), false)
		}, ErrNotClear},
		{"no ammo", "Bolt", ptr(geom.Pt(2, 3)), func(a *Arena, p ecs.EntityID) {
			addDummy(a, geom.Pt(2, 3), 10)
			res := ecs.Grab[component.Resources](a.World, p)
			res.Ammo = 0
			a.World.Add(p, res)
		}, ErrInsufficientResources},
		{"too exhausted", "Rush", ptr(geom.Pt(2, 3)), func(a *Arena, p ecs.EntityID) {
			addDummy(a, geom.Pt(2, 3), 10)
			res := ecs.Grab[component.Resources](a.World, p)
			res.Exhaustion = 60
			a.World.Add(p, res)
		}, ErrInsufficientResources},
		{"not known", "Guard", nil, func(a *Arena, p ecs.EntityID) {
			a.World.Add(p, component.Skills{Names: []string{"Bolt"}})
		}, ErrNotKnown},
		{"not enough time", "Guard", nil, func(a *Arena, p ecs.EntityID) {
			a.World.Add(p, component.Time{Ticks: 40})
		}, ErrNotEnoughTime},
		{"step onto wall", "Step", ptr(geom.Pt(2, 3)), func(a *Arena, _ ecs.EntityID) {
			a.Map.SetWalkable(geom.Pt(2, 3), false)
		}, ErrNotClear},
		{"circle on occupied tile", "Circle", ptr(geom.Pt(2, 3)), func(a *Arena, _ ecs.EntityID) {
			addDummy(a, geom.Pt(2, 3), 10)
		}, ErrNotClear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestArena(t)
			player := addPlayer(a, geom.Pt(2, 2))
			if tt.setup != nil {
				tt.setup(a, player)
			}
			before := ecs.Grab[component.Resources](a.World, player)
			ticks := Ticks(a, player)

			err := InvokeSkill(a, player, tt.skill, tt.target)
			if !errors.Is(err, tt.want) {
				t.Fatalf("InvokeSkill = %v, want %v", err, tt.want)
			}
			if ecs.Grab[component.Resources](a.World, player) != before || Ticks(a, player) != ticks {
				t.Fatal("a rejected skill must not spend anything")
			}
			if HasAnimations(a) {
				t.Fatal("a rejected skill must not start an animation")
			}
		})
	}
}

func TestBoltPaysAmmoAndTime(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(2, 2))
	addDummy(a, geom.Pt(2, 5), 50)

	invoke(t, a, player, "Bolt", ptr(geom.Pt(2, 5)))
	if got := ecs.Grab[component.Resources](a.World, player).Ammo; got != 5 {
		t.Fatalf("ammo = %d, want 5", got)
	}
	if Ticks(a, player) != 0 {
		t.Fatalf("player has %d ticks left, want 0", Ticks(a, player))
	}

	invoke(t, a, player, "Reload", nil)
	if got := ecs.Grab[component.Resources](a.World, player).Ammo; got != 6 {
		t.Fatalf("ammo after reload = %d, want 6", got)
	}
}

func TestUsableSkillsDropsUnaffordable(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(2, 2))
	res := ecs.Grab[component.Resources](a.World, player)
	res.Ammo, res.Focus = 0, 0
	a.World.Add(player, res)

	usable := UsableSkills(a, player)
	for _, n := range usable {
		if n == "Bolt" || n == "Orb" {
			t.Fatalf("%s should not be usable without resources: %v", n, usable)
		}
	}
	if len(usable) != a.Skills.Len()-2 {
		t.Fatalf("usable = %v", usable)
	}
}

func TestDamageWaitsForAnimation(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(2, 2))
	enemy := addDummy(a, geom.Pt(2, 3), 50)

	if err := InvokeSkill(a, player, "Slash", ptr(geom.Pt(2, 3))); err != nil {
		t.Fatal(err)
	}
	if health(a, enemy) != 50 {
		t.Fatal("melee damage landed before the swing finished")
	}
	if err := Settle(a); err != nil {
		t.Fatal(err)
	}
	if health(a, enemy) >= 50 {
		t.Fatal("melee damage never landed")
	}
}

func TestConeHitsEveryoneInTheSweep(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(5, 5))
	front := addDummy(a, geom.Pt(5, 6), 50)
	flank := addDummy(a, geom.Pt(6, 7), 50)
	beyond := addDummy(a, geom.Pt(5, 8), 50)

	invoke(t, a, player, "Sweep", ptr(geom.Pt(5, 6)))
	if health(a, front) >= 50 || health(a, flank) >= 50 {
		t.Fatal("both characters in the cone should be hit")
	}
	if health(a, beyond) != 50 || health(a, player) != 30 {
		t.Fatal("characters outside the cone must be spared")
	}
}

func TestExplosionHitsRadius(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(5, 3))
	center := addDummy(a, geom.Pt(5, 8), 50)
	edge := addDummy(a, geom.Pt(6, 8), 50)
	outside := addDummy(a, geom.Pt(7, 8), 50)

	invoke(t, a, player, "Blast", ptr(geom.Pt(5, 8)))
	if health(a, center) >= 50 || health(a, edge) >= 50 {
		t.Fatal("characters in the burst should be hit")
	}
	if health(a, outside) != 50 {
		t.Fatal("explosion reached past its radius")
	}
}

func TestDamageFieldLifecycle(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(5, 3))
	inside := addDummy(a, geom.Pt(5, 7), 50)
	walker := addDummy(a, geom.Pt(9, 9), 50)

	invoke(t, a, player, "Burn Ground", ptr(geom.Pt(5, 7)))
	fields := Fields(a, component.FieldDamage)
	if len(fields) != 1 {
		t.Fatalf("expected one damage field, got %d", len(fields))
	}
	field := fields[0]
	afterCast := health(a, inside)
	if afterCast >= 50 {
		t.Fatal("a field burns whoever stands in it when it appears")
	}

	MoveEntity(a, walker, geom.Pt(6, 7))
	if health(a, walker) >= 50 {
		t.Fatal("stepping into the field should hurt")
	}

	a.World.Add(field, component.Time{Ticks: BaseActionCost})
	if err := FieldTurn(a, field); err != nil {
		t.Fatal(err)
	}
	if health(a, inside) >= afterCast {
		t.Fatal("the field should burn again on its turn")
	}
	a.World.Add(field, component.Time{Ticks: BaseActionCost})
	if err := FieldTurn(a, field); err != nil {
		t.Fatal(err)
	}
	a.World.Maintain()
	if a.World.Alive(field) {
		t.Fatal("field should expire after its last turn")
	}
}

func TestSummoningCircleCallsMonster(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(2, 2))

	invoke(t, a, player, "Circle", ptr(geom.Pt(4, 4)))
	circles := Fields(a, component.FieldSummon)
	if len(circles) != 1 {
		t.Fatalf("expected one summoning circle, got %d", len(circles))
	}
	a.World.Add(circles[0], component.Time{Ticks: BaseActionCost})
	if err := FieldTurn(a, circles[0]); err != nil {
		t.Fatal(err)
	}
	a.World.Maintain()

	id, ok := CharacterAt(a, geom.Pt(4, 4))
	if !ok || ecs.Grab[component.Character](a.World, id).Kind != "imp" {
		t.Fatal("an imp should stand on the circle")
	}
	if a.Log.Count("Imp appears.") != 1 {
		t.Fatalf("missing arrival line: %v", a.Log.Lines())
	}
}

func TestSummonFizzlesWhenSurrounded(t *testing.T) {
	a := newTestArena(t)
	addPlayer(a, geom.Pt(0, 0))
	circle := CreateField(a, component.Attack{Target: geom.Pt(4, 4), Summon: "imp", Duration: 1})
	for _, p := range geom.Burst(geom.Pt(4, 4), 4) {
		if max(abs(p.X-4), abs(p.Y-4)) <= 2 {
			addDummy(a, p, 5)
		}
	}
	a.World.Add(circle, component.Time{Ticks: BaseActionCost})
	if err := FieldTurn(a, circle); err != nil {
		t.Fatal(err)
	}
	if a.Log.Count("fizzles") != 1 {
		t.Fatalf("expected the summoning to fizzle: %v", a.Log.Lines())
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestSpawnSkill(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(2, 2))
	invoke(t, a, player, "Call", ptr(geom.Pt(3, 3)))
	if _, ok := CharacterAt(a, geom.Pt(3, 3)); !ok {
		t.Fatal("spawned monster missing")
	}
}

func TestChargeRunsUpAndStrikes(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(2, 2))
	enemy := addDummy(a, geom.Pt(2, 6), 50)

	invoke(t, a, player, "Rush", ptr(geom.Pt(2, 6)))
	if got := origin(t, a, player); got != geom.Pt(2, 5) {
		t.Fatalf("charged to %v, want (2,5)", got)
	}
	if health(a, enemy) >= 50 {
		t.Fatal("charge should strike on arrival")
	}
	if got := ecs.Grab[component.Resources](a.World, player).Exhaustion; got != 50 {
		t.Fatalf("exhaustion = %d, want 50", got)
	}
}

func TestChargeStoppedShortMisses(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(2, 2))
	enemy := addDummy(a, geom.Pt(2, 6), 50)
	a.Map.SetWalkable(geom.Pt(2, 4), false)

	invoke(t, a, player, "Rush", ptr(geom.Pt(2, 6)))
	if got := origin(t, a, player); got != geom.Pt(2, 3) {
		t.Fatalf("charge stopped at %v, want (2,3)", got)
	}
	if health(a, enemy) != 50 {
		t.Fatal("a charge that falls short must not hit")
	}
}

func TestFireRoundsHeatTheTarget(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(2, 2))
	enemy := addDummy(a, geom.Pt(2, 5), 50)

	if err := InvokeSkill(a, player, "Fire Rounds", nil); err != nil {
		t.Fatal(err)
	}
	if Ticks(a, player) != BaseActionCost {
		t.Fatal("switching ammo takes no time")
	}
	if !HasStatus(a, player, status.UsingFireAmmo) {
		t.Fatal("fire rounds not loaded")
	}

	invoke(t, a, player, "Bolt", ptr(geom.Pt(2, 5)))
	if got := ecs.Grab[component.Temperature](a.World, enemy).Current; got != 20 {
		t.Fatalf("temperature = %d, want 20", got)
	}

	if err := InvokeSkill(a, player, "Fire Rounds", nil); err != nil {
		t.Fatal(err)
	}
	if HasStatus(a, player, status.UsingFireAmmo) {
		t.Fatal("switching again should unload fire rounds")
	}
}

func TestAimedShotSteadiesTheNextBolt(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(2, 2))
	enemy := addDummy(a, geom.Pt(2, 5), 50)

	invoke(t, a, player, "Aim", ptr(geom.Pt(2, 5)))
	if !HasStatus(a, player, status.Aimed) {
		t.Fatal("landing an aimed shot should steady the shooter")
	}
	before := health(a, enemy)
	invoke(t, a, player, "Zap", ptr(geom.Pt(2, 5)))
	if HasStatus(a, player, status.Aimed) {
		t.Fatal("the bonus is spent on the next bolt")
	}
	if lost := before - health(a, enemy); lost < 4 {
		t.Fatalf("aimed bolt dealt %d, want at least 4", lost)
	}
}

func TestGuardAndBless(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(2, 2))
	ally := addDummy(a, geom.Pt(2, 4), 20)

	invoke(t, a, player, "Guard", nil)
	def := ecs.Grab[component.Defenses](a.World, player)
	if def.Armor != ArmoredBonus || def.Absorb != 1 {
		t.Fatalf("guard gave armor %d absorb %d", def.Armor, def.Absorb)
	}
	AddTicks(a, 200)
	if ecs.Grab[component.Defenses](a.World, player).Armor != 0 {
		t.Fatal("armor should drop when the status expires")
	}

	d := ecs.Grab[component.Defenses](a.World, ally)
	d.Health = 10
	a.World.Add(ally, d)
	invoke(t, a, player, "Bless", ptr(geom.Pt(2, 4)))
	AddTicks(a, RegenInterval)
	if got := health(a, ally); got != 10+RegenAmount {
		t.Fatalf("health after one pulse = %d, want %d", got, 10+RegenAmount)
	}
	AddTicks(a, RegenInterval)
	if got := health(a, ally); got != 10+2*RegenAmount {
		t.Fatalf("regen should keep pulsing, health = %d", got)
	}
}

func TestStepMoves(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(2, 2))
	invoke(t, a, player, "Step", ptr(geom.Pt(2, 4)))
	if got := origin(t, a, player); got != geom.Pt(2, 4) {
		t.Fatalf("stepped to %v", got)
	}
}

func TestMoveDirection(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(0, 0))
	if err := MoveDirection(a, player, geom.DirWest); !errors.Is(err, ErrNotClear) {
		t.Fatalf("moving off the map = %v", err)
	}
	if err := MoveDirection(a, player, geom.DirSouth); err != nil {
		t.Fatal(err)
	}
	if origin(t, a, player) != geom.Pt(0, 1) || Ticks(a, player) != 0 {
		t.Fatal("a step should move one tile and cost a turn")
	}
}
