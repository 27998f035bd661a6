package library

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dmitrijs2005/tripquote/internal/common"
	"github.com/dmitrijs2005/tripquote/internal/models"
)

const keyItineraryTemplates = "itineraryTemplates"

type fieldSetter func(l *models.Library, raw []byte) error

// fields maps each top-level library key to a setter that decodes into a
// fresh value, so nothing from the previous list leaks into the new one.
var fields = map[string]fieldSetter{
	"inclusions":           func(l *models.Library, raw []byte) error { return decodeList(raw, &l.Inclusions) },
	"exclusions":           func(l *models.Library, raw []byte) error { return decodeList(raw, &l.Exclusions) },
	"cancellationPolicies": func(l *models.Library, raw []byte) error { return decodeList(raw, &l.CancellationPolicies) },
	"flightTemplates":      func(l *models.Library, raw []byte) error { return decodeList(raw, &l.FlightTemplates) },
	"hotelTemplates":       func(l *models.Library, raw []byte) error { return decodeList(raw, &l.HotelTemplates) },
	"flights":              func(l *models.Library, raw []byte) error { return decodeList(raw, &l.Flights) },
	"activities":           func(l *models.Library, raw []byte) error { return decodeList(raw, &l.Activities) },
	"transfers":            func(l *models.Library, raw []byte) error { return decodeList(raw, &l.Transfers) },
	"hotels":               func(l *models.Library, raw []byte) error { return decodeList(raw, &l.Hotels) },
	"others":               func(l *models.Library, raw []byte) error { return decodeList(raw, &l.Others) },
	keyItineraryTemplates:  func(l *models.Library, raw []byte) error { return decodeList(raw, &l.ItineraryTemplates) },
}

func decodeList[T any](raw []byte, dst *[]T) error {
	var v []T
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	if v == nil {
		v = []T{}
	}
	*dst = v
	return nil
}

// Overlay replaces every known top-level key of base that is present in the
// JSON object raw. Keys absent from raw keep the value from base; unknown keys
// and keys listed in skip are ignored without being decoded. base is not
// modified.
func Overlay(base models.Library, raw []byte, skip ...string) (models.Library, error) {
	if !gjson.ValidBytes(raw) {
		return base, fmt.Errorf("%w: invalid JSON", common.ErrMalformedPayload)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return base, fmt.Errorf("%w: library must be an object", common.ErrMalformedPayload)
	}

	out := base.Clone()
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		set, ok := fields[key.String()]
		if !ok || slices.Contains(skip, key.String()) {
			return true
		}
		if e := set(&out, []byte(value.Raw)); e != nil {
			err = fmt.Errorf("%w: key %q: %v", common.ErrMalformedPayload, key.String(), e)
			return false
		}
		return true
	})
	if err != nil {
		return base, err
	}
	return out, nil
}

// MergeRemoteLibrary overlays a remote library object on the current one.
// Itinerary templates are never taken from the remote document.
func (s *Store) MergeRemoteLibrary(ctx context.Context, raw []byte) error {
	return s.mutate(ctx, "merge-remote-library", func(lib *models.Library) (bool, error) {
		merged, err := Overlay(*lib, raw, keyItineraryTemplates)
		if err != nil {
			return false, err
		}
		*lib = merged
		return true, nil
	})
}

// MergeRemoteTemplates appends the remote templates whose name is not used by
// an existing template. It returns how many were added.
func (s *Store) MergeRemoteTemplates(ctx context.Context, list []models.ItineraryTemplate) (int, error) {
	added := 0
	err := s.mutate(ctx, "merge-remote-templates", func(lib *models.Library) (bool, error) {
		existing := make(map[string]struct{}, len(lib.ItineraryTemplates))
		for _, t := range lib.ItineraryTemplates {
			existing[t.Name] = struct{}{}
		}
		for _, t := range list {
			if _, ok := existing[t.Name]; ok {
				continue
			}
			lib.ItineraryTemplates = append(lib.ItineraryTemplates, t.Clone())
			added++
		}
		return added > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// ExportLibrary renders the whole library as indented JSON.
func (s *Store) ExportLibrary() ([]byte, error) {
	return json.MarshalIndent(s.Snapshot(), "", "  ")
}

// ImportLibrary replaces the library with the JSON object in data.
func (s *Store) ImportLibrary(ctx context.Context, data []byte) error {
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return fmt.Errorf("%w: library must be a JSON object", common.ErrMalformedPayload)
	}
	var lib models.Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMalformedPayload, err)
	}
	return s.mutate(ctx, "import-library", func(cur *models.Library) (bool, error) {
		*cur = lib.Clone()
		return true, nil
	})
}

// ExportTemplates renders the itinerary templates as an indented JSON array.
func (s *Store) ExportTemplates() ([]byte, error) {
	return json.MarshalIndent(s.Snapshot().ItineraryTemplates, "", "  ")
}

// ImportTemplates appends every template of the JSON array in data and
// returns how many were appended.
func (s *Store) ImportTemplates(ctx context.Context, data []byte) (int, error) {
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsArray() {
		return 0, fmt.Errorf("%w: expected an array of templates", common.ErrMalformedPayload)
	}
	var list []models.ItineraryTemplate
	if err := json.Unmarshal(data, &list); err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrMalformedPayload, err)
	}
	err := s.mutate(ctx, "import-templates", func(lib *models.Library) (bool, error) {
		for _, t := range list {
			lib.ItineraryTemplates = append(lib.ItineraryTemplates, t.Clone())
		}
		return len(list) > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// TemplateMatch is a template together with its position in the library.
type TemplateMatch struct {
	Index    int
	Template models.ItineraryTemplate
}

// SearchTemplates returns the templates whose name or destination contains
// query, ignoring case. An empty query matches everything.
func (s *Store) SearchTemplates(query string) []TemplateMatch {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []TemplateMatch
	for i, t := range s.Snapshot().ItineraryTemplates {
		if strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.Destination), q) {
			out = append(out, TemplateMatch{Index: i, Template: t})
		}
	}
	return out
}

// Suggest lists the entries of a text category containing query that are not
// already in existing. Both checks ignore case.
func (s *Store) Suggest(c models.Category, query string, existing []string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	lib := s.Snapshot()
	list, ok := lib.Texts(c)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range *list {
		if strings.Contains(strings.ToLower(v), q) && !containsFold(existing, v) {
			out = append(out, v)
		}
	}
	return out
}
