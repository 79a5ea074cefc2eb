package combatlog

import (
	"reflect"
	"testing"
)

func TestCapacityDropsOldest(t *testing.T) {
	l := New(3)
	for _, s := range []string{"a", "b", "c", "d"} {
		l.Add(s)
	}
	if got := l.Lines(); !reflect.DeepEqual(got, []string{"b", "c", "d"}) {
		t.Fatalf("Lines() = %v", got)
	}
	if l.Total() != 4 {
		t.Fatalf("Total() = %d", l.Total())
	}
	if got := l.Last(2); !reflect.DeepEqual(got, []string{"c", "d"}) {
		t.Fatalf("Last(2) = %v", got)
	}
	if got := l.Last(10); len(got) != 3 {
		t.Fatalf("Last(10) = %v", got)
	}
}

func TestSinksSeeEveryLine(t *testing.T) {
	l := New(1)
	var seen []string
	l.AddSink(SinkFunc(func(s string) { seen = append(seen, s) }))
	l.Addf("%s took %d damage.", "Brute", 4)
	l.Add("Brute died.")
	want := []string{"Brute took 4 damage.", "Brute died."}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("sink saw %v", seen)
	}
}

func TestCount(t *testing.T) {
	l := New(0)
	l.Add("Gunner took 3 damage.")
	l.Add("Gunner is knocked back.")
	l.Add("Gunner took 1 damage.")
	if n := l.Count("took"); n != 2 {
		t.Fatalf("Count(took) = %d", n)
	}
}
