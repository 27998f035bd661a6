package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tripquote/internal/common"
	"github.com/dmitrijs2005/tripquote/internal/derive"
	"github.com/dmitrijs2005/tripquote/internal/models"
	"github.com/dmitrijs2005/tripquote/internal/quotes"
	"github.com/dmitrijs2005/tripquote/internal/suggest"
)

// findItem resolves ref as a full item id or a unique prefix within the open
// quote.
func (a *App) findItem(e *quotes.Editor, ref string) (models.ItineraryItem, error) {
	if it, err := e.Item(ref); err == nil {
		return it, nil
	}
	var found []models.ItineraryItem
	for _, it := range e.Quote().Items {
		if strings.HasPrefix(it.ID, ref) {
			found = append(found, it)
		}
	}
	if len(found) == 1 {
		return found[0], nil
	}
	if len(found) > 1 {
		return models.ItineraryItem{}, fmt.Errorf("item reference %q is ambiguous", ref)
	}
	return models.ItineraryItem{}, fmt.Errorf("item %q: %w", ref, common.ErrNotFound)
}

func parseTagList(s string) (quotes.TagList, error) {
	switch s {
	case "inc", "inclusions":
		return quotes.TagInclusions, nil
	case "exc", "exclusions":
		return quotes.TagExclusions, nil
	}
	return 0, errUsage
}

func (a *App) cmdAdd(_ context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	typ, err := models.ParseItemType(args[0])
	if err != nil {
		return err
	}
	day := 1
	if len(args) == 2 {
		if day, err = strconv.Atoi(args[1]); err != nil {
			return errUsage
		}
	}
	return a.edit(func(e *quotes.Editor) error {
		it, err := e.AddItem(typ, day)
		if err != nil {
			return err
		}
		a.printf("added %s %s on day %d\n", it.Type, shortID(it.ID), it.Day)
		return nil
	})
}

func (a *App) cmdEdit(_ context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	value := rest(args, 2)
	return a.edit(func(e *quotes.Editor) error {
		it, err := a.findItem(e, args[0])
		if err != nil {
			return err
		}

		var patch quotes.ItemPatch
		switch args[1] {
		case "title":
			patch.Title = &value
		case "description":
			patch.Description = &value
		case "city":
			patch.City = &value
		case "time":
			patch.Time = &value
		case "day":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("day must be a number, got %q", value)
			}
			patch.Day = &n
		case "type":
			t, err := models.ParseItemType(value)
			if err != nil {
				return err
			}
			patch.Type = &t
		default:
			return errUsage
		}
		return e.UpdateItem(it.ID, patch)
	})
}

func (a *App) cmdPick(_ context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	e, err := a.requireEditor()
	if err != nil {
		return err
	}
	it, err := a.findItem(e, args[0])
	if err != nil {
		return err
	}

	lib := a.library.Snapshot()
	c := models.CategoryFor(it.Type)
	masters, _ := lib.Masters(c)

	if len(args) == 1 {
		if len(*masters) == 0 {
			a.printf("library has no %s\n", c)
		}
		for i, m := range *masters {
			a.printf("[%d] %s", i, m.Title)
			if m.City != "" {
				a.printf(" (%s)", m.City)
			}
			a.printf("\n")
		}
		return nil
	}

	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return errUsage
	}
	if idx < 0 || idx >= len(*masters) {
		return fmt.Errorf("%w: %s has %d entries", common.ErrIndexOutOfRange, c, len(*masters))
	}
	m := (*masters)[idx]
	return a.edit(func(e *quotes.Editor) error {
		if err := e.ApplyMaster(it.ID, m); err != nil {
			return err
		}
		a.printf("%s is now %q\n", shortID(it.ID), m.Title)
		return nil
	})
}

func (a *App) cmdTag(_ context.Context, args []string) error {
	if len(args) < 3 {
		return errUsage
	}
	which, err := parseTagList(args[1])
	if err != nil {
		return err
	}
	return a.edit(func(e *quotes.Editor) error {
		it, err := a.findItem(e, args[0])
		if err != nil {
			return err
		}
		added, err := e.AddItemTag(it.ID, which, rest(args, 2))
		if err != nil {
			return err
		}
		if !added {
			a.printf("already tagged\n")
		}
		return nil
	})
}

func (a *App) cmdUntag(_ context.Context, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	which, err := parseTagList(args[1])
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(args[2])
	if err != nil {
		return errUsage
	}
	return a.edit(func(e *quotes.Editor) error {
		it, err := a.findItem(e, args[0])
		if err != nil {
			return err
		}
		return e.RemoveItemTag(it.ID, which, idx)
	})
}

func (a *App) cmdRemoveItem(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	return a.edit(func(e *quotes.Editor) error {
		it, err := a.findItem(e, args[0])
		if err != nil {
			return err
		}
		return e.RemoveItem(it.ID)
	})
}

func (a *App) cmdMoveDay(_ context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	day, err := strconv.Atoi(args[0])
	if err != nil {
		return errUsage
	}
	dir, err := derive.ParseDirection(args[1])
	if err != nil {
		return err
	}
	return a.edit(func(e *quotes.Editor) error {
		e.MoveDay(day, dir)
		return nil
	})
}

func (a *App) cmdToggle(_ context.Context, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	e, err := a.requireEditor()
	if err != nil {
		return err
	}

	var (
		category models.Category
		selected []string
		toggle   func(string) bool
	)
	q := e.Quote()
	switch args[0] {
	case "inc", "inclusions":
		category, selected, toggle = models.CategoryInclusions, q.Inclusions, e.ToggleInclusion
	case "exc", "exclusions":
		category, selected, toggle = models.CategoryExclusions, q.Exclusions, e.ToggleExclusion
	case "policy":
		category, selected, toggle = models.CategoryCancellationPolicies, quotes.Policies(q.CancellationPolicy), e.TogglePolicy
	default:
		return errUsage
	}

	text := strings.TrimSpace(rest(args, 1))
	if text == "" {
		lib := a.library.Snapshot()
		options, _ := lib.Texts(category)
		for _, o := range *options {
			mark := " "
			if slices.Contains(selected, o) {
				mark = "x"
			}
			a.printf("[%s] %s\n", mark, o)
		}
		return nil
	}

	// a number selects a library entry
	if idx, err := strconv.Atoi(text); err == nil {
		lib := a.library.Snapshot()
		options, _ := lib.Texts(category)
		if idx < 0 || idx >= len(*options) {
			return fmt.Errorf("%w: %s has %d entries", common.ErrIndexOutOfRange, category, len(*options))
		}
		text = (*options)[idx]
	}

	return a.edit(func(*quotes.Editor) error {
		if toggle(text) {
			a.printf("+ %s\n", text)
		} else {
			a.printf("- %s\n", text)
		}
		return nil
	})
}

func (a *App) cmdSuggest(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	if a.suggester == nil {
		return ErrSuggestDisabled
	}
	e, err := a.requireEditor()
	if err != nil {
		return err
	}
	days, err := strconv.Atoi(args[0])
	if err != nil {
		return errUsage
	}

	budget := suggest.BudgetModerate
	interestsFrom := 1
	if len(args) > 1 {
		if b, err := suggest.ParseBudget(args[1]); err == nil {
			budget, interestsFrom = b, 2
		}
	}

	q := e.Quote()
	req := suggest.Request{
		Destination:  q.Destination,
		DurationDays: days,
		Travelers:    derive.TravelersSummary(q.Client.Travelers),
		Budget:       budget,
		Interests:    rest(args, interestsFrom),
	}
	if err := req.Validate(); err != nil {
		return err
	}

	a.printf("asking for a %d day plan in %s...\n", days, q.Destination)
	cands, err := a.suggester.Suggest(ctx, req)
	if err != nil {
		return err
	}
	return a.edit(func(e *quotes.Editor) error {
		a.printf("added %d suggested items\n", e.AppendSuggestions(cands))
		return nil
	})
}
