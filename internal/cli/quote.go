package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/tripquote/internal/common"
	"github.com/dmitrijs2005/tripquote/internal/derive"
	"github.com/dmitrijs2005/tripquote/internal/models"
	"github.com/dmitrijs2005/tripquote/internal/proposal"
	"github.com/dmitrijs2005/tripquote/internal/quotes"
)

// findQuote resolves ref as a full id or a unique id prefix.
func (a *App) findQuote(ref string) (models.Quote, error) {
	if q, err := a.quotes.Get(ref); err == nil {
		return q, nil
	}
	var found []models.Quote
	for _, q := range a.quotes.List() {
		if strings.HasPrefix(q.ID, ref) {
			found = append(found, q)
		}
	}
	switch len(found) {
	case 0:
		return models.Quote{}, fmt.Errorf("quote %q: %w", ref, common.ErrNotFound)
	case 1:
		return found[0], nil
	}
	return models.Quote{}, fmt.Errorf("%w: %q", ErrAmbiguousQuoteRef, ref)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (a *App) cmdList(_ context.Context, args []string) error {
	list := a.quotes.Search(rest(args, 0))
	if len(list) == 0 {
		a.printf("no quotes\n")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCLIENT\tSTART\tSTATUS\tTOTAL")
	for _, q := range list {
		s := quotes.Summarize(q)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s %s\n", shortID(s.ID), s.Title, s.Client, s.StartDate, s.Status, s.Currency, proposal.Amount(s.Total))
	}
	return tw.Flush()
}

func (a *App) cmdStats(_ context.Context, _ []string) error {
	st := a.quotes.Stats()
	a.printf("total: %d\n", st.Total)
	for _, status := range models.Statuses {
		a.printf("  %-10s %d\n", status, st.ByStatus[status])
	}
	return nil
}

func (a *App) cmdNew(_ context.Context, _ []string) error {
	a.editor = quotes.NewDraft(a.now(), a.config.DefaultCurrency, a.config.Consultant)
	a.dirty = true
	a.printf("new quote %s\n", a.editor.Quote().ID)
	return nil
}

func (a *App) cmdOpen(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	q, err := a.findQuote(args[0])
	if err != nil {
		return err
	}
	a.editor = quotes.NewEditor(q)
	a.dirty = false
	a.printf("opened %s (%s)\n", q.ID, q.DisplayTitle())
	return nil
}

func (a *App) cmdShow(_ context.Context, _ []string) error {
	e, err := a.requireEditor()
	if err != nil {
		return err
	}
	q := e.Quote()

	a.printf("%s  [%s]  %s\n", q.DisplayTitle(), q.Status, q.ID)
	a.printf("client:      %s <%s> %s\n", q.Client.Name, q.Client.Email, q.Client.Phone)
	a.printf("destination: %s\n", q.Destination)
	a.printf("dates:       %s .. %s (%d days)\n", q.StartDate, q.EndDate, derive.DaySpan(q.StartDate, q.EndDate))
	a.printf("travelers:   %s\n", derive.TravelersSummary(q.Client.Travelers))
	if q.GeneratedBy != "" {
		a.printf("consultant:  %s\n", q.GeneratedBy)
	}

	groups := e.DayGroups()
	for _, day := range groups.Days() {
		label := fmt.Sprintf("Day %d", day)
		if d, ok := derive.DateForDay(q.StartDate, day); ok {
			label += " (" + d.Format("Mon 2 Jan") + ")"
		}
		a.printf("\n%s\n", label)
		for _, it := range groups[day] {
			a.printf("  %s  %-8s %s", shortID(it.ID), it.Type, it.Title)
			if it.Time != "" {
				a.printf(" @%s", it.Time)
			}
			if it.City != "" {
				a.printf(" [%s]", it.City)
			}
			a.printf("\n")
		}
	}
	if over := derive.OverflowDays(q.Items, q.StartDate, q.EndDate); len(over) > 0 {
		a.printf("\nwarning: items on days beyond the trip dates: %v\n", over)
	}

	b := derive.Price(q)
	a.printf("\nprice:\n")
	for _, l := range b.Lines {
		a.printf("  %-10s %d %s @ %s = %s\n", l.Label, l.Count, l.Unit, proposal.Amount(l.Rate), proposal.Amount(l.Total))
	}
	a.printf("  total      %s %s\n", q.Currency, proposal.Amount(b.Total))

	a.printf("\ninclusions: %s\n", strings.Join(q.Inclusions, "; "))
	a.printf("exclusions: %s\n", strings.Join(q.Exclusions, "; "))
	if q.CancellationPolicy != "" {
		a.printf("cancellation: %s\n", strings.Join(quotes.Policies(q.CancellationPolicy), " / "))
	}
	return nil
}

type fieldSetter func(q *models.Quote, v string) error

func str(dst func(q *models.Quote) *string) fieldSetter {
	return func(q *models.Quote, v string) error {
		*dst(q) = v
		return nil
	}
}

func count(name string, dst func(q *models.Quote) *int) fieldSetter {
	return func(q *models.Quote, v string) error {
		n, err := atoi(name, v)
		if err != nil {
			return err
		}
		*dst(q) = n
		return nil
	}
}

func amount(name string, dst func(q *models.Quote) *float64) fieldSetter {
	return func(q *models.Quote, v string) error {
		f, err := atof(name, v)
		if err != nil {
			return err
		}
		*dst(q) = f
		return nil
	}
}

func date(dst func(q *models.Quote) *string) fieldSetter {
	return func(q *models.Quote, v string) error {
		if _, err := time.Parse(models.DateLayout, v); err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD, got %q", v)
		}
		*dst(q) = v
		return nil
	}
}

var setFields = map[string]fieldSetter{
	"title":        str(func(q *models.Quote) *string { return &q.Title }),
	"destination":  str(func(q *models.Quote) *string { return &q.Destination }),
	"start":        date(func(q *models.Quote) *string { return &q.StartDate }),
	"end":          date(func(q *models.Quote) *string { return &q.EndDate }),
	"client":       str(func(q *models.Quote) *string { return &q.Client.Name }),
	"email":        str(func(q *models.Quote) *string { return &q.Client.Email }),
	"phone":        str(func(q *models.Quote) *string { return &q.Client.Phone }),
	"adults":       count("adults", func(q *models.Quote) *int { return &q.Client.Travelers.Adults }),
	"children":     count("children", func(q *models.Quote) *int { return &q.Client.Travelers.Children }),
	"infants":      count("infants", func(q *models.Quote) *int { return &q.Client.Travelers.Infants }),
	"adult-rate":   amount("adult-rate", func(q *models.Quote) *float64 { return &q.PricePerAdult }),
	"child-rate":   amount("child-rate", func(q *models.Quote) *float64 { return &q.PricePerChild }),
	"infant-rate":  amount("infant-rate", func(q *models.Quote) *float64 { return &q.PricePerInfant }),
	"currency":     str(func(q *models.Quote) *string { return &q.Currency }),
	"baggage":      str(func(q *models.Quote) *string { return &q.BaggageDetails }),
	"baggage-rate": amount("baggage-rate", func(q *models.Quote) *float64 { return &q.BaggageRate }),
	"baggage-pcs":  count("baggage-pcs", func(q *models.Quote) *int { return &q.BaggagePcs }),
	"extra":        str(func(q *models.Quote) *string { return &q.ExtraTitle }),
	"extra-rate":   amount("extra-rate", func(q *models.Quote) *float64 { return &q.ExtraRate }),
	"extra-pax":    count("extra-pax", func(q *models.Quote) *int { return &q.ExtraPax }),
	"consultant":   str(func(q *models.Quote) *string { return &q.GeneratedBy }),
	"flights":      str(func(q *models.Quote) *string { return &q.FlightDetails }),
	"hotels":       str(func(q *models.Quote) *string { return &q.HotelDetails }),
	"notes":        str(func(q *models.Quote) *string { return &q.Notes }),
}

func setFieldNames() string {
	names := make([]string, 0, len(setFields))
	for n := range setFields {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func (a *App) cmdSet(_ context.Context, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	setter, ok := setFields[args[0]]
	if !ok {
		return fmt.Errorf("unknown field %q", args[0])
	}
	value := rest(args, 1)

	if value == "" && args[0] == "notes" {
		text, err := GetMultiline(a.reader, "Enter notes", a.out)
		if err != nil {
			return err
		}
		value = text
	}

	return a.edit(func(e *quotes.Editor) error {
		return e.Update(func(q *models.Quote) error { return setter(q, value) })
	})
}

func (a *App) cmdSave(ctx context.Context, _ []string) error {
	e, err := a.requireEditor()
	if err != nil {
		return err
	}
	if err := a.quotes.Save(ctx, e.Quote()); err != nil {
		return err
	}
	a.dirty = false
	a.printf("saved %s\n", e.Quote().ID)
	return nil
}

func (a *App) cmdStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	q, err := a.findQuote(args[0])
	if err != nil {
		return err
	}
	st, err := models.ParseStatus(args[1])
	if err != nil {
		return err
	}
	if err := a.quotes.UpdateStatus(ctx, q.ID, st); err != nil {
		return err
	}
	if a.editor != nil && a.editor.Quote().ID == q.ID {
		_ = a.editor.Update(func(q *models.Quote) error { q.Status = st; return nil })
	}
	a.printf("%s is now %s\n", q.ID, st)
	return nil
}

func (a *App) cmdDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	q, err := a.findQuote(args[0])
	if err != nil {
		return err
	}
	if err := a.quotes.Delete(ctx, q.ID); err != nil {
		return err
	}
	if a.editor != nil && a.editor.Quote().ID == q.ID {
		a.editor, a.dirty = nil, false
	}
	a.printf("deleted %s\n", q.ID)
	return nil
}
