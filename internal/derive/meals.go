package derive

import (
	"strings"

	"github.com/dmitrijs2005/tripquote/internal/models"
)

// MealPlan infers the meals included on a day from its items. Day 1 is the
// arrival day and always yields "N/A"; later days always include breakfast.
func MealPlan(day int, items []models.ItineraryItem) string {
	if day == 1 {
		return "N/A"
	}

	var lunch, dinner bool
	for _, it := range items {
		content := strings.ToLower(it.Title + " " + it.Description)
		lunch = lunch || strings.Contains(content, "lunch")
		dinner = dinner || strings.Contains(content, "dinner")
	}

	switch {
	case lunch && dinner:
		return "Breakfast, Lunch & Dinner"
	case lunch:
		return "Breakfast & Lunch"
	case dinner:
		return "Breakfast & Dinner"
	}
	return "Breakfast"
}
