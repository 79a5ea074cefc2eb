// Package combatlog collects the plain-text messages a player reads during
// a battle.
package combatlog

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"skirmish/internal/logger"
)

// DefaultCapacity is how many lines a Log keeps.
const DefaultCapacity = 100

// Sink receives every line as it is appended.
type Sink interface {
	CombatLine(line string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(string)

func (f SinkFunc) CombatLine(line string) { f(line) }

// Log is a bounded list of the most recent combat messages. Lines are also
// mirrored to the diagnostic logger at debug level and to every sink.
type Log struct {
	lines    []string
	capacity int
	total    int
	sinks    []Sink
	fields   logrus.Fields
}

// New returns an empty log keeping at most capacity lines.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity}
}

// WithFields tags the diagnostic mirror of every line, e.g. with a battle id.
func (l *Log) WithFields(f logrus.Fields) {
	l.fields = f
}

// AddSink registers s for every future line.
func (l *Log) AddSink(s Sink) {
	l.sinks = append(l.sinks, s)
}

// Add appends one line.
func (l *Log) Add(line string) {
	l.total++
	l.lines = append(l.lines, line)
	if len(l.lines) > l.capacity {
		l.lines = l.lines[len(l.lines)-l.capacity:]
	}
	logger.Log.WithFields(l.fields).Debug(line)
	for _, s := range l.sinks {
		s.CombatLine(line)
	}
}

// Addf appends a formatted line.
func (l *Log) Addf(format string, args ...any) {
	l.Add(fmt.Sprintf(format, args...))
}

// Lines returns a copy of the retained lines, oldest first.
func (l *Log) Lines() []string {
	return append([]string(nil), l.lines...)
}

// Last returns up to n of the most recent lines, oldest first.
func (l *Log) Last(n int) []string {
	if n > len(l.lines) {
		n = len(l.lines)
	}
	return append([]string(nil), l.lines[len(l.lines)-n:]...)
}

// Count returns how many retained lines contain substr.
func (l *Log) Count(substr string) int {
	n := 0
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

// Total is the number of lines ever added, including dropped ones.
func (l *Log) Total() int { return l.total }
