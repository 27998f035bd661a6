package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tripquote/internal/common"
	"github.com/dmitrijs2005/tripquote/internal/models"
	"github.com/dmitrijs2005/tripquote/internal/quotes"
)

func (a *App) cmdTemplates(_ context.Context, args []string) error {
	matches := a.library.SearchTemplates(rest(args, 0))
	if len(matches) == 0 {
		a.printf("no templates\n")
		return nil
	}
	for _, m := range matches {
		a.printf("[%d] %s (%s, %d items)\n", m.Index, m.Template.Name, m.Template.Destination, len(m.Template.Items))
	}
	return nil
}

func (a *App) cmdInject(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return errUsage
	}
	tpls := a.library.Snapshot().ItineraryTemplates
	if idx < 0 || idx >= len(tpls) {
		return fmt.Errorf("%w: %d templates", common.ErrIndexOutOfRange, len(tpls))
	}
	return a.edit(func(e *quotes.Editor) error {
		a.printf("injected %d items from %q\n", e.InjectTemplate(tpls[idx]), tpls[idx].Name)
		return nil
	})
}

func (a *App) cmdSaveTrip(ctx context.Context, args []string) error {
	e, err := a.requireEditor()
	if err != nil {
		return err
	}
	name := rest(args, 0)
	if name == "" {
		name = e.TemplateName()
	}
	tpl, err := a.library.SaveTrip(ctx, name, e.Quote())
	if err != nil {
		return err
	}
	a.printf("saved template %q with %d items\n", tpl.Name, len(tpl.Items))
	return nil
}

// parseMaster reads "title | description | city | inc1, inc2 | exc1, exc2".
// Trailing parts may be omitted.
func parseMaster(s string) (models.MasterItem, error) {
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	m := models.MasterItem{Title: parts[0], Inclusions: []string{}, Exclusions: []string{}}
	if m.Title == "" {
		return m, common.ErrTitleRequired
	}
	if len(parts) > 1 {
		m.Description = parts[1]
	}
	if len(parts) > 2 {
		m.City = parts[2]
	}
	if len(parts) > 3 {
		m.Inclusions = splitList(parts[3])
	}
	if len(parts) > 4 {
		m.Exclusions = splitList(parts[4])
	}
	return m, nil
}

func (a *App) cmdLib(ctx context.Context, args []string) error {
	if len(args) < 1 {
		a.printf("categories:\n")
		lib := a.library.Snapshot()
		for _, c := range models.Categories {
			a.printf("  %-22s %d\n", c, lib.Len(c))
		}
		return nil
	}
	c, err := models.ParseCategory(args[0])
	if err != nil {
		return err
	}
	query := rest(args, 1)
	lib := a.library.Snapshot()

	switch c.Kind() {
	case models.KindText:
		if query != "" {
			var existing []string
			if a.editor != nil {
				q := a.editor.Quote()
				switch c {
				case models.CategoryInclusions:
					existing = q.Inclusions
				case models.CategoryExclusions:
					existing = q.Exclusions
				}
			}
			for _, s := range a.library.Suggest(c, query, existing) {
				a.printf("  %s\n", s)
			}
			return nil
		}
		list, _ := lib.Texts(c)
		for i, s := range *list {
			a.printf("[%d] %s\n", i, s)
		}
	case models.KindMaster:
		list, _ := lib.Masters(c)
		q := strings.ToLower(query)
		for i, m := range *list {
			if q != "" && !strings.Contains(strings.ToLower(m.Title), q) {
				continue
			}
			a.printf("[%d] %s", i, m.Title)
			if m.City != "" {
				a.printf(" (%s)", m.City)
			}
			if m.Description != "" {
				a.printf(": %s", m.Description)
			}
			a.printf("\n")
		}
	case models.KindTemplate:
		return a.cmdTemplates(ctx, args[1:])
	}
	return nil
}

func (a *App) cmdLibAdd(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	c, err := models.ParseCategory(args[0])
	if err != nil {
		return err
	}
	value := rest(args, 1)

	switch c.Kind() {
	case models.KindText:
		return a.library.AddText(ctx, c, value)
	case models.KindMaster:
		m, err := parseMaster(value)
		if err != nil {
			return err
		}
		return a.library.AddMaster(ctx, c, m)
	}
	return errors.New("templates are added with 'savetrip' or 'import templates'")
}

func (a *App) cmdLibEdit(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errUsage
	}
	c, err := models.ParseCategory(args[0])
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return errUsage
	}
	value := rest(args, 2)

	switch c.Kind() {
	case models.KindText:
		return a.library.UpdateText(ctx, c, idx, value)
	case models.KindMaster:
		m, err := parseMaster(value)
		if err != nil {
			return err
		}
		return a.library.UpdateMaster(ctx, c, idx, m)
	}

	// templates can only be renamed here
	tpls := a.library.Snapshot().ItineraryTemplates
	if idx < 0 || idx >= len(tpls) {
		return fmt.Errorf("%w: %d templates", common.ErrIndexOutOfRange, len(tpls))
	}
	tpl := tpls[idx]
	if tpl.Name = strings.TrimSpace(value); tpl.Name == "" {
		return common.ErrNameRequired
	}
	return a.library.UpdateTemplate(ctx, idx, tpl)
}

func (a *App) cmdLibRemove(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	c, err := models.ParseCategory(args[0])
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return errUsage
	}
	return a.library.Remove(ctx, c, idx)
}
