// Package suggest asks a language model for itinerary ideas and turns the
// answer into candidate items the agent can add to a quote.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tripquote/internal/models"
)

// Budget is the spending style passed to the model.
type Budget string

const (
	BudgetLow      Budget = "budget"
	BudgetModerate Budget = "moderate"
	BudgetLuxury   Budget = "luxury"
)

var ErrInvalidRequest = errors.New("invalid suggestion request")

// ParseBudget accepts budget, moderate or luxury; empty means moderate.
func ParseBudget(s string) (Budget, error) {
	switch b := Budget(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BudgetModerate, nil
	case BudgetLow, BudgetModerate, BudgetLuxury:
		return b, nil
	}
	return "", fmt.Errorf("%w: unknown budget %q", ErrInvalidRequest, s)
}

// Request describes the trip to plan.
type Request struct {
	Destination  string
	DurationDays int
	Travelers    string
	Budget       Budget
	Interests    string
}

// Validate checks that the request can be sent.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	}
	if r.DurationDays < 1 {
		return fmt.Errorf("%w: duration must be at least one day", ErrInvalidRequest)
	}
	if _, err := ParseBudget(string(r.Budget)); err != nil {
		return err
	}
	return nil
}

// Candidate is one suggested itinerary item.
type Candidate struct {
	Type        models.ItemType `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Day         int             `json:"day"`
	Time        string          `json:"time,omitempty"`
}

// Suggester produces itinerary candidates for a request.
type Suggester interface {
	Suggest(ctx context.Context, req Request) ([]Candidate, error)
}

// Prompt renders the instruction sent to the model.
func Prompt(r Request) string {
	budget := r.Budget
	if budget == "" {
		budget = BudgetModerate
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed day-by-day travel itinerary for a trip to %s for %d days.\n", r.Destination, r.DurationDays)
	fmt.Fprintf(&b, "Travelers: %s.\n", r.Travelers)
	fmt.Fprintf(&b, "Budget Style: %s.\n", budget)
	fmt.Fprintf(&b, "Interests: %s.\n\n", r.Interests)
	b.WriteString("Provide a list of suggested items.\n")
	b.WriteString("For each item, specify the day number (1 for first day, 2 for second, etc.).\n")
	b.WriteString("Include generic flight placeholder for Day 1.\n")
	b.WriteString("Include hotel check-ins.\n")
	b.WriteString("Include specific activities for each day.\n")
	b.WriteString("Do NOT include prices.\n\n")
	b.WriteString(`Answer with a JSON object {"items": [...]} where every item has the fields ` +
		`"type" (one of flight, hotel, activity, transfer, other), "title", "description", ` +
		`"day" (integer) and optionally "time" (e.g. "14:00").`)
	return b.String()
}

// normalize fixes up what the model returned: unknown types become other,
// days below one become one, and untitled entries are dropped.
func normalize(in []Candidate) []Candidate {
	out := make([]Candidate, 0, len(in))
	for _, c := range in {
		c.Title = strings.TrimSpace(c.Title)
		if c.Title == "" {
			continue
		}
		if _, err := models.ParseItemType(string(c.Type)); err != nil {
			c.Type = models.ItemOther
		}
		c.Day = max(c.Day, 1)
		out = append(out, c)
	}
	return out
}
