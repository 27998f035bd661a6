package derive

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tripquote/internal/models"
)

// PriceLine is one row of a price breakdown.
type PriceLine struct {
	Label string
	Count int
	Rate  float64
	Total float64
	Unit  string
}

// Breakdown is the priced rows of a quote and their sum.
type Breakdown struct {
	Lines []PriceLine
	Total float64
}

// Price derives the breakdown of q. The adults row is always present; the
// other rows only when they carry a quantity (and, for the extra service, a
// title).
func Price(q models.Quote) Breakdown {
	t := q.Client.Travelers
	lines := []PriceLine{line("Adults", t.Adults, q.PricePerAdult, "pax")}
	if t.Children > 0 {
		lines = append(lines, line("Children", t.Children, q.PricePerChild, "pax"))
	}
	if t.Infants > 0 {
		lines = append(lines, line("Infants", t.Infants, q.PricePerInfant, "pax"))
	}
	if q.BaggagePcs > 0 {
		lines = append(lines, line("Baggage", q.BaggagePcs, q.BaggageRate, "Qty"))
	}
	if q.ExtraTitle != "" && q.ExtraPax > 0 {
		lines = append(lines, line(q.ExtraTitle, q.ExtraPax, q.ExtraRate, "Qty"))
	}

	var sum float64
	for _, l := range lines {
		sum += l.Total
	}
	return Breakdown{Lines: lines, Total: sum}
}

// Total is the quote total shown everywhere a single figure is needed.
func Total(q models.Quote) float64 {
	return Price(q).Total
}

func line(label string, count int, rate float64, unit string) PriceLine {
	return PriceLine{Label: label, Count: count, Rate: rate, Total: float64(count) * rate, Unit: unit}
}

// TravelersSummary renders head counts the way the proposal prints them.
func TravelersSummary(t models.Travelers) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d Adult(s)", t.Adults)
	if t.Children > 0 {
		fmt.Fprintf(&b, ", %d Child(ren)", t.Children)
	}
	if t.Infants > 0 {
		fmt.Fprintf(&b, ", %d Infant(s)", t.Infants)
	}
	return b.String()
}
