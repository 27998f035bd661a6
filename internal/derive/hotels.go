package derive

import (
	"strings"

	"github.com/dmitrijs2005/tripquote/internal/models"
)

// HotelMatch is a hotel shown for a day, taken either from the library or
// from a hotel item of the quote.
type HotelMatch struct {
	Title       string
	Description string
	City        string
	FromLibrary bool
}

func normCity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MatchHotels returns the hotels whose city matches a city visited by a
// non-hotel item of the day. Library hotels come first, then hotel items of
// the quote; duplicates by title and city are dropped.
func MatchHotels(dayItems []models.ItineraryItem, libraryHotels []models.MasterItem, quoteItems []models.ItineraryItem) []HotelMatch {
	cities := make(map[string]struct{})
	for _, it := range dayItems {
		if it.Type == models.ItemHotel {
			continue
		}
		if c := normCity(it.City); c != "" {
			cities[c] = struct{}{}
		}
	}
	if len(cities) == 0 {
		return nil
	}

	matches := func(city string) bool {
		c := normCity(city)
		if c == "" {
			return false
		}
		_, ok := cities[c]
		return ok
	}

	var out []HotelMatch
	seen := make(map[string]struct{})
	add := func(h HotelMatch) {
		// Title and city are compared trimmed, the same way cities are matched.
		key := strings.ToLower(strings.TrimSpace(h.Title)) + "\x00" + normCity(h.City)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, h)
	}

	for _, h := range libraryHotels {
		if matches(h.City) {
			add(HotelMatch{Title: h.Title, Description: h.Description, City: h.City, FromLibrary: true})
		}
	}
	for _, it := range quoteItems {
		if it.Type == models.ItemHotel && matches(it.City) {
			add(HotelMatch{Title: it.Title, Description: it.Description, City: it.City})
		}
	}
	return out
}
