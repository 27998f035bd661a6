package derive

import "github.com/dmitrijs2005/tripquote/internal/models"

// SmartInclusions merges the quote inclusions with those of every non-flight
// item, keeping first-seen order and dropping empty strings.
func SmartInclusions(q models.Quote) []string {
	return aggregate(q.Inclusions, q.Items, func(it models.ItineraryItem) []string { return it.Inclusions })
}

// SmartExclusions is SmartInclusions for exclusions.
func SmartExclusions(q models.Quote) []string {
	return aggregate(q.Exclusions, q.Items, func(it models.ItineraryItem) []string { return it.Exclusions })
}

func aggregate(base []string, items []models.ItineraryItem, pick func(models.ItineraryItem) []string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, s := range base {
		add(s)
	}
	for _, it := range items {
		if it.Type == models.ItemFlight {
			continue
		}
		for _, s := range pick(it) {
			add(s)
		}
	}
	return out
}
