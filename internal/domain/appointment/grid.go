package appointment

import (
	"iter"
	"time"

	"github.com/BruksfildServices01/workshop-scheduler/internal/timezone"
)

// DefaultSlotIncrement is the booking granularity when none is configured.
const DefaultSlotIncrement = 30 * time.Minute

// Grid is the set of bookable slot starts of one operating day. A start s is
// part of the grid iff s+increment <= closing.
type Grid struct {
	open      int
	close     int
	increment int
}

func NewGrid(opening, closing string, increment time.Duration) (Grid, error) {
	from, err := timezone.ParseClock(opening)
	if err != nil {
		return Grid{}, err
	}
	to, err := timezone.ParseClock(closing)
	if err != nil {
		return Grid{}, err
	}
	return Grid{
		open:      from,
		close:     to,
		increment: int(increment / time.Minute),
	}, nil
}

// Slots yields "HH:mm" starts in order. The sequence is empty when closing is
// not after opening or the increment is not positive.
func (g Grid) Slots() iter.Seq[string] {
	return func(yield func(string) bool) {
		if g.increment <= 0 || g.close <= g.open {
			return
		}
		for s := g.open; s+g.increment <= g.close; s += g.increment {
			if !yield(timezone.FormatClock(s)) {
				return
			}
		}
	}
}

func (g Grid) List() []string {
	out := []string{}
	for s := range g.Slots() {
		out = append(out, s)
	}
	return out
}

func (g Grid) Contains(clock string) bool {
	for s := range g.Slots() {
		if s == clock {
			return true
		}
	}
	return false
}
