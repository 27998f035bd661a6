package models

import (
	"errors"
	"fmt"
)

// Category names one container of the Library.
type Category int

const (
	CategoryInclusions Category = iota + 1
	CategoryExclusions
	CategoryCancellationPolicies
	CategoryFlights
	CategoryActivities
	CategoryTransfers
	CategoryHotels
	CategoryOthers
	CategoryItineraryTemplates
)

// Categories lists every library category.
var Categories = []Category{
	CategoryInclusions,
	CategoryExclusions,
	CategoryCancellationPolicies,
	CategoryFlights,
	CategoryActivities,
	CategoryTransfers,
	CategoryHotels,
	CategoryOthers,
	CategoryItineraryTemplates,
}

// Kind tells what a category stores.
type Kind int

const (
	KindText Kind = iota + 1
	KindMaster
	KindTemplate
)

var ErrUnknownCategory = errors.New("unknown library category")

// String returns the JSON key of the category.
func (c Category) String() string {
	switch c {
	case CategoryInclusions:
		return "inclusions"
	case CategoryExclusions:
		return "exclusions"
	case CategoryCancellationPolicies:
		return "cancellationPolicies"
	case CategoryFlights:
		return "flights"
	case CategoryActivities:
		return "activities"
	case CategoryTransfers:
		return "transfers"
	case CategoryHotels:
		return "hotels"
	case CategoryOthers:
		return "others"
	case CategoryItineraryTemplates:
		return "itineraryTemplates"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Kind reports whether the category holds strings, master items or templates.
func (c Category) Kind() Kind {
	switch c {
	case CategoryInclusions, CategoryExclusions, CategoryCancellationPolicies:
		return KindText
	case CategoryFlights, CategoryActivities, CategoryTransfers, CategoryHotels, CategoryOthers:
		return KindMaster
	case CategoryItineraryTemplates:
		return KindTemplate
	}
	return 0
}

// ParseCategory accepts the JSON key of a category, plus a few short aliases
// used on the command line.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if c.String() == s {
			return c, nil
		}
	}
	switch s {
	case "policies":
		return CategoryCancellationPolicies, nil
	case "templates", "trips":
		return CategoryItineraryTemplates, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// CategoryFor maps an item type to the master category that feeds it.
func CategoryFor(t ItemType) Category {
	switch t {
	case ItemFlight:
		return CategoryFlights
	case ItemHotel:
		return CategoryHotels
	case ItemActivity:
		return CategoryActivities
	case ItemTransfer:
		return CategoryTransfers
	}
	return CategoryOthers
}
