// Package models defines the quotation documents edited by the tripquote CLI:
// quotes, itinerary items, the shared library and its templates.
//
// All types are plain values. Slices inside them are never mutated in place by
// the stores; use Clone before handing a value to code that may change it.
package models

import (
	"errors"
	"fmt"
	"time"
)

// QuoteStatus is the lifecycle state of a quote.
type QuoteStatus string

const (
	StatusDraft     QuoteStatus = "draft"
	StatusSent      QuoteStatus = "sent"
	StatusBooked    QuoteStatus = "booked"
	StatusCancelled QuoteStatus = "cancelled"
)

// Statuses lists every known status in display order.
var Statuses = []QuoteStatus{StatusDraft, StatusSent, StatusBooked, StatusCancelled}

var (
	ErrUnknownStatus   = errors.New("unknown quote status")
	ErrUnknownItemType = errors.New("unknown item type")
	ErrInvalidQuote    = errors.New("invalid quote")
)

// ParseStatus converts a wire value into a QuoteStatus.
func ParseStatus(s string) (QuoteStatus, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Travelers holds head counts per traveler class.
type Travelers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// ClientDetails describes who the proposal is prepared for.
type ClientDetails struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Travelers Travelers `json:"travelers"`
}

// Quote is one travel proposal under construction.
//
// StartDate and EndDate are calendar dates (YYYY-MM-DD). They stay strings so
// that an unparseable value round-trips untouched.
type Quote struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Destination string          `json:"destination"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	Client      ClientDetails   `json:"client"`
	Items       []ItineraryItem `json:"items"`
	Status      QuoteStatus     `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	Notes       string          `json:"notes,omitempty"`

	PricePerAdult  float64 `json:"pricePerAdult"`
	PricePerChild  float64 `json:"pricePerChild"`
	PricePerInfant float64 `json:"pricePerInfant"`
	Currency       string  `json:"currency"`

	Inclusions         []string `json:"inclusions"`
	Exclusions         []string `json:"exclusions"`
	CancellationPolicy string   `json:"cancellationPolicy"`
	FlightDetails      string   `json:"flightDetails"`
	HotelDetails       string   `json:"hotelDetails"`

	BaggageDetails string  `json:"baggageDetails,omitempty"`
	BaggageRate    float64 `json:"baggageRate"`
	BaggagePcs     int     `json:"baggagePcs"`
	GeneratedBy    string  `json:"generatedBy,omitempty"`

	ExtraTitle string  `json:"extraTitle,omitempty"`
	ExtraRate  float64 `json:"extraRate"`
	ExtraPax   int     `json:"extraPax"`
}

// DateLayout is the wire layout of StartDate and EndDate.
const DateLayout = "2006-01-02"

// NewQuote returns an empty draft with builder defaults: two adults, a five
// day window starting today and the given currency.
func NewQuote(id string, now time.Time, currency string) Quote {
	return Quote{
		ID:         id,
		StartDate:  now.UTC().Format(DateLayout),
		EndDate:    now.UTC().Add(5 * 24 * time.Hour).Format(DateLayout),
		Client:     ClientDetails{Travelers: Travelers{Adults: 2}},
		Items:      []ItineraryItem{},
		Status:     StatusDraft,
		CreatedAt:  now.UTC(),
		Currency:   currency,
		Inclusions: []string{},
		Exclusions: []string{},
	}
}

// Clone returns a deep copy of q.
func (q Quote) Clone() Quote {
	c := q
	c.Items = make([]ItineraryItem, len(q.Items))
	for i, it := range q.Items {
		c.Items[i] = it.Clone()
	}
	c.Inclusions = cloneStrings(q.Inclusions)
	c.Exclusions = cloneStrings(q.Exclusions)
	return c
}

// Validate checks the structural invariants of a quote.
func (q Quote) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidQuote)
	}
	if _, err := ParseStatus(string(q.Status)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuote, err)
	}
	t := q.Client.Travelers
	if t.Adults < 0 || t.Children < 0 || t.Infants < 0 {
		return fmt.Errorf("%w: negative traveler count", ErrInvalidQuote)
	}
	if q.BaggagePcs < 0 || q.ExtraPax < 0 {
		return fmt.Errorf("%w: negative quantity", ErrInvalidQuote)
	}
	seen := make(map[string]struct{}, len(q.Items))
	for _, it := range q.Items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidQuote, err)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("%w: duplicate item id %s", ErrInvalidQuote, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

// DisplayTitle is the title shown in lists, falling back to the destination.
func (q Quote) DisplayTitle() string {
	if q.Title != "" {
		return q.Title
	}
	return "Trip to " + q.Destination
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
