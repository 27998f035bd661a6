package models

// Library is the shared catalog of reusable content. The JSON layout matches
// the persisted and remotely published documents.
type Library struct {
	Inclusions           []string `json:"inclusions"`
	Exclusions           []string `json:"exclusions"`
	CancellationPolicies []string `json:"cancellationPolicies"`

	// Legacy free-text lists, kept so imported documents round-trip.
	FlightTemplates []string `json:"flightTemplates"`
	HotelTemplates  []string `json:"hotelTemplates"`

	Flights    []MasterItem `json:"flights"`
	Activities []MasterItem `json:"activities"`
	Transfers  []MasterItem `json:"transfers"`
	Hotels     []MasterItem `json:"hotels"`
	Others     []MasterItem `json:"others"`

	ItineraryTemplates []ItineraryTemplate `json:"itineraryTemplates"`
}

// DefaultLibrary returns the built-in catalog seeded on first run.
func DefaultLibrary() Library {
	return Library{
		Inclusions:           []string{"Welcome Drink", "Visa Assistance", "All Taxes & GST", "Professional Guide", "Private Transfers", "Daily Breakfast"},
		Exclusions:           []string{"Personal Expenses", "Travel Insurance", "Tips", "Entry Tickets", "Lunches & Dinners"},
		CancellationPolicies: []string{"Non-refundable.", "30-day free cancellation."},
		FlightTemplates:      []string{},
		HotelTemplates:       []string{},
		Flights: []MasterItem{{
			Title: "Standard KTM-PKR", Description: "Domestic scenic flight.",
			Inclusions: []string{"20kg Luggage", "7kg Handcarry"}, Exclusions: []string{"In-flight Meals"},
		}},
		Activities: []MasterItem{{
			Title: "Full Day Sightseeing", Description: "Visit historic UNESCO sites.",
			Inclusions: []string{"Private Car", "Entry Fees"}, Exclusions: []string{"Lunch"},
		}},
		Transfers: []MasterItem{{
			Title: "Airport Pick-up", Description: "Private sedan with name board.",
			Inclusions: []string{"Signage", "Waiting Time"}, Exclusions: []string{"Extra stopovers"},
		}},
		Hotels: []MasterItem{{
			Title: "4-Star Premium Stay", Description: "Central location with amenities.",
			Inclusions: []string{"Breakfast", "Free Wi-Fi"}, Exclusions: []string{"Mini Bar"},
		}},
		Others:             []MasterItem{},
		ItineraryTemplates: []ItineraryTemplate{},
	}
}

// Clone returns a deep copy of l. Nil lists come back empty.
func (l Library) Clone() Library {
	return Library{
		Inclusions:           cloneStrings(l.Inclusions),
		Exclusions:           cloneStrings(l.Exclusions),
		CancellationPolicies: cloneStrings(l.CancellationPolicies),
		FlightTemplates:      cloneStrings(l.FlightTemplates),
		HotelTemplates:       cloneStrings(l.HotelTemplates),
		Flights:              cloneMasters(l.Flights),
		Activities:           cloneMasters(l.Activities),
		Transfers:            cloneMasters(l.Transfers),
		Hotels:               cloneMasters(l.Hotels),
		Others:               cloneMasters(l.Others),
		ItineraryTemplates:   cloneTemplates(l.ItineraryTemplates),
	}
}

// Texts returns the string list behind a text category.
func (l *Library) Texts(c Category) (*[]string, bool) {
	switch c {
	case CategoryInclusions:
		return &l.Inclusions, true
	case CategoryExclusions:
		return &l.Exclusions, true
	case CategoryCancellationPolicies:
		return &l.CancellationPolicies, true
	}
	return nil, false
}

// Masters returns the master item list behind a master category.
func (l *Library) Masters(c Category) (*[]MasterItem, bool) {
	switch c {
	case CategoryFlights:
		return &l.Flights, true
	case CategoryActivities:
		return &l.Activities, true
	case CategoryTransfers:
		return &l.Transfers, true
	case CategoryHotels:
		return &l.Hotels, true
	case CategoryOthers:
		return &l.Others, true
	}
	return nil, false
}

// Len reports how many entries a category holds.
func (l *Library) Len(c Category) int {
	switch c.Kind() {
	case KindText:
		list, _ := l.Texts(c)
		return len(*list)
	case KindMaster:
		list, _ := l.Masters(c)
		return len(*list)
	case KindTemplate:
		return len(l.ItineraryTemplates)
	}
	return 0
}

func cloneMasters(in []MasterItem) []MasterItem {
	out := make([]MasterItem, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}
	return out
}

func cloneTemplates(in []ItineraryTemplate) []ItineraryTemplate {
	out := make([]ItineraryTemplate, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}
