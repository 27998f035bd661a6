// Package derive holds the pure derivations behind the quote builder and the
// proposal: day grouping, meal plans, hotel matching, the aggregated
// inclusion lists and pricing. Nothing here mutates its inputs.
package derive

import (
	"math"
	"slices"
	"time"

	"github.com/dmitrijs2005/tripquote/internal/models"
)

const dayLen = 24 * time.Hour

func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(models.DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// DaySpan returns the number of calendar days covered by start..end,
// inclusive. It is never below 1 and falls back to 1 when either date does
// not parse.
func DaySpan(start, end string) int {
	s, ok1 := parseDate(start)
	e, ok2 := parseDate(end)
	if !ok1 || !ok2 {
		return 1
	}
	diff := e.Sub(s)
	if diff < 0 {
		diff = -diff
	}
	n := int(math.Ceil(float64(diff)/float64(dayLen))) + 1
	return max(n, 1)
}

// DayGroups maps a trip day to the items scheduled on it.
type DayGroups map[int][]models.ItineraryItem

// Days returns the group keys in ascending order.
func (g DayGroups) Days() []int {
	days := make([]int, 0, len(g))
	for d := range g {
		days = append(days, d)
	}
	slices.Sort(days)
	return days
}

func maxDay(items []models.ItineraryItem) int {
	m := 0
	for _, it := range items {
		m = max(m, it.Day)
	}
	return m
}

// GroupByDay buckets items by day. Every day from 1 to the larger of the date
// span and the highest item day is present, empty days included. Items keep
// their relative order inside a bucket.
func GroupByDay(items []models.ItineraryItem, start, end string) DayGroups {
	total := max(DaySpan(start, end), maxDay(items))
	groups := make(DayGroups, total)
	for d := 1; d <= total; d++ {
		groups[d] = []models.ItineraryItem{}
	}
	for _, it := range items {
		groups[it.Day] = append(groups[it.Day], it.Clone())
	}
	return groups
}

// OverflowDays lists, in ascending order, the item days that fall after the
// quote's date range.
func OverflowDays(items []models.ItineraryItem, start, end string) []int {
	span := DaySpan(start, end)
	var out []int
	for _, it := range items {
		if it.Day > span && !slices.Contains(out, it.Day) {
			out = append(out, it.Day)
		}
	}
	slices.Sort(out)
	return out
}

// DaysWithItems returns the distinct days that have at least one item, sorted.
func DaysWithItems(items []models.ItineraryItem) []int {
	var out []int
	for _, it := range items {
		if !slices.Contains(out, it.Day) {
			out = append(out, it.Day)
		}
	}
	slices.Sort(out)
	return out
}

// DateForDay returns the calendar date of trip day n, or false when start
// does not parse.
func DateForDay(start string, n int) (time.Time, bool) {
	s, ok := parseDate(start)
	if !ok {
		return time.Time{}, false
	}
	return s.AddDate(0, 0, n-1), true
}
