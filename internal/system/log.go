package system

import (
	"skirmish/internal/event"
	"skirmish/internal/status"
)

// statusLabels are the statuses worth telling the player about.
var statusLabels = map[status.Kind]string{
	status.Flying:        "flying",
	status.StaticCharge:  "charged",
	status.Aimed:         "steady",
	status.Armored:       "armored",
	status.Regen:         "regenerating",
	status.Agitated:      "enraged",
	status.Burning:       "burning",
	status.Frozen:        "frozen",
	status.UsingFireAmmo: "loaded with fire rounds",
	status.UsingIceAmmo:  "loaded with ice rounds",
}

// LogHandler writes the combat messages that follow from events.
func LogHandler(a *Arena) event.Handler {
	return func(e event.Event) {
		switch e.Kind {
		case event.Killed:
			a.Log.Addf("%s died.", Name(a, e.Target))
		case event.StatusAdded:
			if label, ok := statusLabels[e.Status]; ok {
				a.Log.Addf("%s is %s.", Name(a, e.Target), label)
			}
		case event.StatusExpired:
			if label, ok := statusLabels[e.Status]; ok {
				a.Log.Addf("%s is no longer %s.", Name(a, e.Target), label)
			}
		case event.Landed:
			a.Log.Addf("%s lands.", Name(a, e.Target))
		case event.Spawned:
			a.Log.Addf("%s appears.", Name(a, e.Target))
		}
	}
}
