package library

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/tripquote/internal/common"
	"github.com/dmitrijs2005/tripquote/internal/models"
)

func wrongKind(c models.Category, want string) error {
	return fmt.Errorf("%w: %s is not a %s category", common.ErrWrongCategory, c, want)
}

func outOfRange(c models.Category, index, n int) error {
	return fmt.Errorf("%w: %s[%d] of %d", common.ErrIndexOutOfRange, c, index, n)
}

// AddText appends text to a text category unless it is already present,
// compared case-insensitively.
func (s *Store) AddText(ctx context.Context, c models.Category, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return common.ErrBlankText
	}
	return s.mutate(ctx, "add-text", func(lib *models.Library) (bool, error) {
		list, ok := lib.Texts(c)
		if !ok {
			return false, wrongKind(c, "text")
		}
		if containsFold(*list, text) {
			return false, nil
		}
		*list = append(*list, text)
		return true, nil
	})
}

// AddMaster upserts item into a master category by exact title.
func (s *Store) AddMaster(ctx context.Context, c models.Category, item models.MasterItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return common.ErrTitleRequired
	}
	item = item.Clone()
	return s.mutate(ctx, "add-master", func(lib *models.Library) (bool, error) {
		list, ok := lib.Masters(c)
		if !ok {
			return false, wrongKind(c, "master")
		}
		if i := slices.IndexFunc(*list, func(m models.MasterItem) bool { return m.Title == item.Title }); i >= 0 {
			(*list)[i] = item
		} else {
			*list = append(*list, item)
		}
		return true, nil
	})
}

// AddTemplate appends tpl without any de-duplication.
func (s *Store) AddTemplate(ctx context.Context, tpl models.ItineraryTemplate) error {
	tpl = tpl.Clone()
	return s.mutate(ctx, "add-template", func(lib *models.Library) (bool, error) {
		lib.ItineraryTemplates = append(lib.ItineraryTemplates, tpl)
		return true, nil
	})
}

// UpdateText replaces the entry at index of a text category.
func (s *Store) UpdateText(ctx context.Context, c models.Category, index int, text string) error {
	return s.mutate(ctx, "update-text", func(lib *models.Library) (bool, error) {
		list, ok := lib.Texts(c)
		if !ok {
			return false, wrongKind(c, "text")
		}
		if index < 0 || index >= len(*list) {
			return false, outOfRange(c, index, len(*list))
		}
		(*list)[index] = text
		return true, nil
	})
}

// UpdateMaster replaces the entry at index of a master category.
func (s *Store) UpdateMaster(ctx context.Context, c models.Category, index int, item models.MasterItem) error {
	item = item.Clone()
	return s.mutate(ctx, "update-master", func(lib *models.Library) (bool, error) {
		list, ok := lib.Masters(c)
		if !ok {
			return false, wrongKind(c, "master")
		}
		if index < 0 || index >= len(*list) {
			return false, outOfRange(c, index, len(*list))
		}
		(*list)[index] = item
		return true, nil
	})
}

// UpdateTemplate replaces the template at index.
func (s *Store) UpdateTemplate(ctx context.Context, index int, tpl models.ItineraryTemplate) error {
	tpl = tpl.Clone()
	return s.mutate(ctx, "update-template", func(lib *models.Library) (bool, error) {
		n := len(lib.ItineraryTemplates)
		if index < 0 || index >= n {
			return false, outOfRange(models.CategoryItineraryTemplates, index, n)
		}
		lib.ItineraryTemplates[index] = tpl
		return true, nil
	})
}

// Remove deletes the entry at index of any category.
func (s *Store) Remove(ctx context.Context, c models.Category, index int) error {
	return s.mutate(ctx, "remove", func(lib *models.Library) (bool, error) {
		if c.Kind() == 0 {
			return false, fmt.Errorf("%w: %s", models.ErrUnknownCategory, c)
		}
		n := lib.Len(c)
		if index < 0 || index >= n {
			return false, outOfRange(c, index, n)
		}
		switch c.Kind() {
		case models.KindText:
			list, _ := lib.Texts(c)
			*list = slices.Delete(*list, index, index+1)
		case models.KindMaster:
			list, _ := lib.Masters(c)
			*list = slices.Delete(*list, index, index+1)
		case models.KindTemplate:
			lib.ItineraryTemplates = slices.Delete(lib.ItineraryTemplates, index, index+1)
		}
		return true, nil
	})
}

// SaveTrip records the itinerary of q as a template named name. Item ids are
// dropped; an empty destination becomes the default one.
func (s *Store) SaveTrip(ctx context.Context, name string, q models.Quote) (models.ItineraryTemplate, error) {
	if len(q.Items) == 0 {
		return models.ItineraryTemplate{}, common.ErrEmptyItinerary
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ItineraryTemplate{}, common.ErrNameRequired
	}

	tpl := models.ItineraryTemplate{
		Name:        name,
		Destination: q.Destination,
		Items:       make([]models.TemplateItem, len(q.Items)),
	}
	if tpl.Destination == "" {
		tpl.Destination = common.DefaultDestination
	}
	for i, it := range q.Items {
		tpl.Items[i] = it.Shape()
	}

	if err := s.AddTemplate(ctx, tpl); err != nil {
		return models.ItineraryTemplate{}, err
	}
	return tpl, nil
}

func containsFold(list []string, s string) bool {
	return slices.ContainsFunc(list, func(v string) bool { return strings.EqualFold(v, s) })
}
