// Package proposal turns a quote into the client-facing travel proposal and
// renders it as plain text or PDF.
package proposal

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrijs2005/tripquote/internal/derive"
	"github.com/dmitrijs2005/tripquote/internal/models"
	"github.com/dmitrijs2005/tripquote/internal/quotes"
)

// Agency is the letterhead printed on every proposal.
type Agency struct {
	Name    string
	Address string
	Phone   string
}

func DefaultAgency() Agency {
	return Agency{
		Name:    "Simrik Adventures",
		Address: "Lazimpat, Kathmandu",
		Phone:   "01-4547009",
	}
}

// Day is one itinerary day that has at least one item.
type Day struct {
	Number   int
	Date     string
	MealPlan string
	Hotels   []derive.HotelMatch
	// Items excludes hotel items; stays are shown through Hotels.
	Items []models.ItineraryItem
}

// Label returns "Day N (date)" or "Day N" when the start date is unknown.
func (d Day) Label() string {
	if d.Date == "" {
		return "Day " + strconv.Itoa(d.Number)
	}
	return "Day " + strconv.Itoa(d.Number) + " (" + d.Date + ")"
}

type Proposal struct {
	Agency       Agency
	Reference    string
	Consultant   string
	Title        string
	ClientName   string
	ClientEmail  string
	Destination  string
	StartDate    string
	Travelers    string
	Currency     string
	Prices       derive.Breakdown
	Days         []Day
	Baggage      string
	Inclusions   []string
	Exclusions   []string
	Cancellation []string
}

const (
	longDate  = "2 Jan 2006"
	shortDate = "2 Jan"
)

// Build assembles the proposal view of q. Empty agency fields fall back to
// DefaultAgency.
func Build(q models.Quote, lib models.Library, agency Agency) Proposal {
	def := DefaultAgency()
	if agency.Name == "" {
		agency.Name = def.Name
	}
	if agency.Address == "" {
		agency.Address = def.Address
	}
	if agency.Phone == "" {
		agency.Phone = def.Phone
	}

	title := q.Title
	if title == "" {
		title = "Journey to " + q.Destination
	}

	p := Proposal{
		Agency:       agency,
		Reference:    q.ID,
		Consultant:   q.GeneratedBy,
		Title:        title,
		ClientName:   q.Client.Name,
		ClientEmail:  q.Client.Email,
		Destination:  q.Destination,
		Travelers:    derive.TravelersSummary(q.Client.Travelers),
		Currency:     q.Currency,
		Prices:       derive.Price(q),
		Baggage:      q.BaggageDetails,
		Inclusions:   derive.SmartInclusions(q),
		Exclusions:   derive.SmartExclusions(q),
		Cancellation: quotes.Policies(q.CancellationPolicy),
	}
	if d, ok := derive.DateForDay(q.StartDate, 1); ok {
		p.StartDate = d.Format(longDate)
	}

	groups := derive.GroupByDay(q.Items, q.StartDate, q.EndDate)
	for _, n := range derive.DaysWithItems(q.Items) {
		items := groups[n]
		day := Day{
			Number:   n,
			MealPlan: derive.MealPlan(n, items),
			Hotels:   derive.MatchHotels(items, lib.Hotels, q.Items),
		}
		if d, ok := derive.DateForDay(q.StartDate, n); ok {
			day.Date = d.Format(shortDate)
		}
		for _, it := range items {
			if it.Type != models.ItemHotel {
				day.Items = append(day.Items, it)
			}
		}
		p.Days = append(p.Days, day)
	}
	return p
}

var printer = message.NewPrinter(language.English)

// Amount formats v with thousands separators and at most two decimals.
func Amount(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return printer.Sprintf("%d", int64(v))
	}
	s := printer.Sprintf("%.2f", v)
	return strings.TrimSuffix(s, "0")
}
