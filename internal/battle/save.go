package battle

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"skirmish/internal/combatlog"
	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/gamemap"
	"skirmish/internal/logger"
	"skirmish/internal/skill"
	"skirmish/internal/system"
	"skirmish/internal/telemetry"
)

// ErrCorruptSave is returned when a save file cannot be restored.
var ErrCorruptSave = errors.New("battle: corrupt save")

const saveVersion = 1

// snapshotKey names the map snapshot in the component table.
const snapshotKey = "MapSnapshot"

type record struct {
	Entity ecs.EntityID    `json:"entity"`
	Data   json.RawMessage `json:"data"`
}

type saveFile struct {
	Version    int                 `json:"version"`
	ID         uuid.UUID           `json:"id"`
	Encounter  string              `json:"encounter"`
	Class      string              `json:"class"`
	Turn       int                 `json:"turn"`
	Experience int                 `json:"experience"`
	Kills      int                 `json:"kills"`
	Seed       int64               `json:"seed"`
	Started    bool                `json:"player_turn_started"`
	Skills     []skill.Info        `json:"skills"`
	Components map[string][]record `json:"components"`
}

// codec moves one component type in and out of the save file.
type codec interface {
	key() string
	ctype() ecs.ComponentType
	encode(w *ecs.World, id ecs.EntityID) (json.RawMessage, error)
	decode(raw json.RawMessage) (ecs.Component, error)
}

type entry[T ecs.Component] struct{ name string }

func (e entry[T]) key() string { return e.name }

func (e entry[T]) ctype() ecs.ComponentType {
	var zero T
	return zero.Type()
}

func (e entry[T]) encode(w *ecs.World, id ecs.EntityID) (json.RawMessage, error) {
	return json.Marshal(ecs.Grab[T](w, id))
}

func (e entry[T]) decode(raw json.RawMessage) (ecs.Component, error) {
	var c T
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return c, nil
}

// codecs lists every persisted component. Animations, staged attacks and
// bolts only exist mid-chain and a battle is saved settled.
var codecs = []codec{
	entry[component.Position]{"Position"},
	entry[component.Time]{"Time"},
	entry[component.Statuses]{"Statuses"},
	entry[component.Defenses]{"Defenses"},
	entry[component.Temperature]{"Temperature"},
	entry[component.Skills]{"Skills"},
	entry[component.Resources]{"Resources"},
	entry[component.Behavior]{"Behavior"},
	entry[component.BehaviorValues]{"BehaviorValues"},
	entry[component.Character]{"Character"},
	entry[component.Appearance]{"Appearance"},
	entry[component.TagPlayer]{"TagPlayer"},
	entry[component.TagSerializable]{"TagSerializable"},
	entry[component.Field]{"Field"},
	entry[component.Orb]{"Orb"},
	entry[component.Flight]{"Flight"},
}

// Save writes the battle as JSON. The battle must be settled. The random
// source is reseeded with the seed written to the file, so the saved and
// the live battle continue identically.
func (b *Battle) Save(w io.Writer) error {
	if system.HasAnimations(b.Arena) {
		return fmt.Errorf("battle: save while animating: %w", system.ErrUnsettled)
	}
	world := b.Arena.World
	seed := b.Arena.Rand.Int63()
	b.Arena.Rand.Seed(seed)

	sf := saveFile{
		Version:    saveVersion,
		ID:         b.ID,
		Encounter:  b.Encounter,
		Class:      b.Class,
		Turn:       b.Turn,
		Experience: b.experience,
		Kills:      b.kills,
		Seed:       seed,
		Started:    b.playerTurnStarted,
		Components: make(map[string][]record),
	}
	for _, name := range b.Arena.Skills.Names() {
		sf.Skills = append(sf.Skills, b.Arena.Skills.Must(name))
	}

	var last ecs.EntityID
	for _, id := range world.Query(component.CTagSerializable) {
		if world.Doomed(id) {
			continue
		}
		last = max(last, id)
		for _, c := range codecs {
			if !world.Has(id, c.ctype()) {
				continue
			}
			data, err := c.encode(world, id)
			if err != nil {
				return fmt.Errorf("battle: encode %s of %d: %w", c.key(), id, err)
			}
			sf.Components[c.key()] = append(sf.Components[c.key()], record{Entity: id, Data: data})
		}
	}
	snap, err := json.Marshal(component.MapSnapshot{Walkable: b.Arena.Map.Snapshot()})
	if err != nil {
		return fmt.Errorf("battle: encode map: %w", err)
	}
	sf.Components[snapshotKey] = []record{{Entity: last + 1, Data: snap}}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sf); err != nil {
		return fmt.Errorf("battle: write save: %w", err)
	}
	return nil
}

// SaveFile writes the battle to path, creating its directory.
func (b *Battle) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("battle: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("battle: %w", err)
	}
	if err := b.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadOptions attaches runtime collaborators to a restored battle.
type LoadOptions struct {
	Sinks  []combatlog.Sink
	Tracer trace.Tracer
}

// Load restores a battle written by Save. Entity ids are reassigned in
// their saved order, so scheduling ties resolve the same way.
func Load(r io.Reader, opts LoadOptions) (*Battle, error) {
	var sf saveFile
	if err := json.NewDecoder(r).Decode(&sf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	if sf.Version != saveVersion {
		return nil, fmt.Errorf("%w: version %d", ErrCorruptSave, sf.Version)
	}
	m, helper, err := restoreMap(sf.Components[snapshotKey])
	if err != nil {
		return nil, err
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = telemetry.Tracer("battle")
	}
	b := &Battle{
		ID:                sf.ID,
		Arena:             system.NewArena(m, skill.NewRegistry(sf.Skills...), rand.New(rand.NewSource(sf.Seed))),
		Encounter:         sf.Encounter,
		Class:             sf.Class,
		Turn:              sf.Turn,
		tracer:            tracer,
		playerTurnStarted: sf.Started,
		experience:        sf.Experience,
		kills:             sf.Kills,
	}

	remap, err := restoreEntities(b.Arena.World, sf.Components, helper)
	if err != nil {
		return nil, err
	}
	player, ok := system.Player(b.Arena)
	if !ok {
		return nil, fmt.Errorf("%w: no player", ErrCorruptSave)
	}
	b.Player = player
	b.attachLog(opts.Sinks)
	b.register()

	logger.Log.WithFields(logrus.Fields{
		"battle":   b.ID.String(),
		"entities": len(remap),
		"turn":     b.Turn,
	}).Info("battle restored")
	return b, nil
}

// LoadFile restores a battle from path.
func LoadFile(path string, opts LoadOptions) (*Battle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("battle: %w", err)
	}
	defer f.Close()
	return Load(f, opts)
}

func restoreMap(recs []record) (*gamemap.Map, ecs.EntityID, error) {
	if len(recs) != 1 {
		return nil, 0, fmt.Errorf("%w: %d map snapshots", ErrCorruptSave, len(recs))
	}
	var snap component.MapSnapshot
	if err := json.Unmarshal(recs[0].Data, &snap); err != nil {
		return nil, 0, fmt.Errorf("%w: map: %v", ErrCorruptSave, err)
	}
	m, err := gamemap.FromSnapshot(snap.Walkable)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: map: %v", ErrCorruptSave, err)
	}
	return m, recs[0].Entity, nil
}

// restoreEntities creates one entity per saved id, in ascending order, and
// attaches the decoded components. Field sources are rewritten to the new
// ids; a source that was not saved becomes NilEntity.
func restoreEntities(w *ecs.World, table map[string][]record, helper ecs.EntityID) (map[ecs.EntityID]ecs.EntityID, error) {
	known := make(map[string]codec, len(codecs))
	for _, c := range codecs {
		known[c.key()] = c
	}
	var saved []ecs.EntityID
	seen := make(map[ecs.EntityID]bool)
	for key, recs := range table {
		if key == snapshotKey {
			continue
		}
		if _, ok := known[key]; !ok {
			return nil, fmt.Errorf("%w: unknown component %q", ErrCorruptSave, key)
		}
		for _, rec := range recs {
			if rec.Entity == ecs.NilEntity || rec.Entity == helper {
				return nil, fmt.Errorf("%w: %s on entity %d", ErrCorruptSave, key, rec.Entity)
			}
			if !seen[rec.Entity] {
				seen[rec.Entity] = true
				saved = append(saved, rec.Entity)
			}
		}
	}
	sort.Slice(saved, func(i, j int) bool { return saved[i] < saved[j] })

	remap := make(map[ecs.EntityID]ecs.EntityID, len(saved))
	for _, old := range saved {
		remap[old] = w.CreateEntity()
	}
	for _, c := range codecs {
		for _, rec := range table[c.key()] {
			comp, err := c.decode(rec.Data)
			if err != nil {
				return nil, fmt.Errorf("%w: %s of %d: %v", ErrCorruptSave, c.key(), rec.Entity, err)
			}
			if f, ok := comp.(component.Field); ok && f.Source != ecs.NilEntity {
				f.Source = remap[f.Source]
				comp = f
			}
			w.Add(remap[rec.Entity], comp)
		}
	}
	return remap, nil
}
