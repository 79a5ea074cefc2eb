package component

import (
	"skirmish/internal/ecs"
	"skirmish/internal/event"
	"skirmish/internal/geom"
)

const (
	CAnimation ecs.ComponentType = 17
	CFlight    ecs.ComponentType = 18
	CBolt      ecs.ComponentType = 19
)

// AnimationState is the sprite state the renderer picks frames for.
type AnimationState uint8

const (
	AnimIdle AnimationState = iota
	AnimMove
	AnimCast
	AnimBolt
	AnimMelee
	AnimCone
	AnimCharge
	AnimExplode
	AnimHit
)

func (s AnimationState) String() string {
	return [...]string{"idle", "move", "cast", "bolt", "melee", "cone", "charge", "explode", "hit"}[s]
}

// Animation is a presentational delay. While it runs the entity shows State;
// when Frame reaches Frames the component is removed and OnComplete is
// raised.
type Animation struct {
	State      AnimationState
	Frame      int
	Frames     int
	Path       []geom.Point
	OnComplete event.Event
}

func (Animation) Type() ecs.ComponentType { return CAnimation }

// PathPoint is where along Path the animation currently is.
func (a Animation) PathPoint() (geom.Point, bool) {
	if len(a.Path) == 0 {
		return geom.Point{}, false
	}
	if a.Frames <= 0 {
		return a.Path[len(a.Path)-1], true
	}
	i := a.Frame * len(a.Path) / a.Frames
	return a.Path[min(i, len(a.Path)-1)], true
}

// Flight remembers where a flying character took off.
type Flight struct {
	Takeoff geom.SizedPoint
}

func (Flight) Type() ecs.ComponentType { return CFlight }

// Bolt marks a projectile entity; Kind names its sprite.
type Bolt struct {
	Kind string
	Path []geom.Point
}

func (Bolt) Type() ecs.ComponentType { return CBolt }
