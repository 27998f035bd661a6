package models

import (
	"errors"
	"fmt"
)

// ItemType classifies an itinerary service.
type ItemType string

const (
	ItemFlight   ItemType = "flight"
	ItemHotel    ItemType = "hotel"
	ItemActivity ItemType = "activity"
	ItemTransfer ItemType = "transfer"
	ItemOther    ItemType = "other"
)

// ItemTypes lists every known item type.
var ItemTypes = []ItemType{ItemFlight, ItemHotel, ItemActivity, ItemTransfer, ItemOther}

// ParseItemType converts a wire value into an ItemType.
func ParseItemType(s string) (ItemType, error) {
	for _, t := range ItemTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownItemType, s)
}

// ItineraryItem is one scheduled service on a given day of a quote.
// Day 1 is the first day of the trip.
type ItineraryItem struct {
	ID          string   `json:"id"`
	Type        ItemType `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Day         int      `json:"day"`
	City        string   `json:"city,omitempty"`
	Time        string   `json:"time,omitempty"`
	Inclusions  []string `json:"inclusions"`
	Exclusions  []string `json:"exclusions"`
}

// Clone returns a deep copy of it.
func (it ItineraryItem) Clone() ItineraryItem {
	c := it
	c.Inclusions = cloneStrings(it.Inclusions)
	c.Exclusions = cloneStrings(it.Exclusions)
	return c
}

// Validate checks the item invariants.
func (it ItineraryItem) Validate() error {
	if it.ID == "" {
		return errors.New("item without id")
	}
	if _, err := ParseItemType(string(it.Type)); err != nil {
		return err
	}
	if it.Day < 1 {
		return fmt.Errorf("item %s: day must be positive, got %d", it.ID, it.Day)
	}
	return nil
}

// Shape strips the id, producing the form stored in templates.
func (it ItineraryItem) Shape() TemplateItem {
	c := it.Clone()
	return TemplateItem{
		Type:        c.Type,
		Title:       c.Title,
		Description: c.Description,
		Day:         c.Day,
		City:        c.City,
		Time:        c.Time,
		Inclusions:  c.Inclusions,
		Exclusions:  c.Exclusions,
	}
}

// TemplateItem is an itinerary item without identity, as recorded in an
// ItineraryTemplate.
type TemplateItem struct {
	Type        ItemType `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Day         int      `json:"day"`
	City        string   `json:"city,omitempty"`
	Time        string   `json:"time,omitempty"`
	Inclusions  []string `json:"inclusions"`
	Exclusions  []string `json:"exclusions"`
}

// Instantiate turns the shape into an itinerary item with the given id.
// A day below 1 becomes day 1 and an unknown type becomes ItemOther.
func (t TemplateItem) Instantiate(id string) ItineraryItem {
	typ := t.Type
	if _, err := ParseItemType(string(typ)); err != nil {
		typ = ItemOther
	}
	return ItineraryItem{
		ID:          id,
		Type:        typ,
		Title:       t.Title,
		Description: t.Description,
		Day:         max(t.Day, 1),
		City:        t.City,
		Time:        t.Time,
		Inclusions:  cloneStrings(t.Inclusions),
		Exclusions:  cloneStrings(t.Exclusions),
	}
}

// MasterItem is a reusable service kept in the library. Title is its natural key.
type MasterItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	City        string   `json:"city,omitempty"`
	Inclusions  []string `json:"inclusions"`
	Exclusions  []string `json:"exclusions"`
}

// Clone returns a deep copy of m.
func (m MasterItem) Clone() MasterItem {
	c := m
	c.Inclusions = cloneStrings(m.Inclusions)
	c.Exclusions = cloneStrings(m.Exclusions)
	return c
}

// ItineraryTemplate is a saved multi-day plan. Name is its natural key.
type ItineraryTemplate struct {
	Name        string         `json:"name"`
	Destination string         `json:"destination"`
	Items       []TemplateItem `json:"items"`
}

// Clone returns a deep copy of t.
func (t ItineraryTemplate) Clone() ItineraryTemplate {
	c := t
	c.Items = make([]TemplateItem, len(t.Items))
	for i, it := range t.Items {
		ci := it
		ci.Inclusions = cloneStrings(it.Inclusions)
		ci.Exclusions = cloneStrings(it.Exclusions)
		c.Items[i] = ci
	}
	return c
}
