package derive

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tripquote/internal/models"
)

// Direction is where MoveDay sends a day.
type Direction int

const (
	Up Direction = iota + 1
	Down
)

// ParseDirection accepts "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// MoveDay swaps the whole item set of day with the item set of the adjacent
// day (day-1 for Up, day+1 for Down). It returns a new slice; when the
// target day would be below 1 the result is an unchanged copy.
func MoveDay(items []models.ItineraryItem, day int, dir Direction) []models.ItineraryItem {
	target := day + 1
	if dir == Up {
		target = day - 1
	}

	out := make([]models.ItineraryItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	if target < 1 {
		return out
	}

	for i := range out {
		switch out[i].Day {
		case day:
			out[i].Day = target
		case target:
			out[i].Day = day
		}
	}
	return out
}
