package proposal

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) section(title string) {
	t.printf("\n%s\n%s\n", strings.ToUpper(title), strings.Repeat("-", len(title)))
}

// RenderText writes p as a plain-text proposal.
func RenderText(w io.Writer, p Proposal) error {
	t := &textWriter{w: w}

	t.printf("%s\n%s | %s\n", p.Agency.Name, p.Agency.Address, p.Agency.Phone)
	if p.Consultant != "" {
		t.printf("Consultant: %s\n", p.Consultant)
	}
	t.printf("\nEXCLUSIVE TRAVEL PROPOSAL\n%s\n", p.Title)

	t.section("Prepared for")
	t.printf("%s\n", p.ClientName)
	if p.ClientEmail != "" {
		t.printf("%s\n", p.ClientEmail)
	}

	t.section("Trip overview")
	t.printf("Destination: %s\n", p.Destination)
	if p.StartDate != "" {
		t.printf("Period:      %s onwards\n", p.StartDate)
	}
	t.printf("Guest(s):    %s\n", p.Travelers)

	t.section("Price summary")
	if t.err == nil {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, l := range p.Prices.Lines {
			fmt.Fprintf(tw, "%s\t%d %s\t@ %s\t%s %s\n", l.Label, l.Count, l.Unit, Amount(l.Rate), p.Currency, Amount(l.Total))
		}
		fmt.Fprintf(tw, "Total\t\t\t%s %s\n", p.Currency, Amount(p.Prices.Total))
		t.err = tw.Flush()
	}

	t.section("Planned itinerary")
	if len(p.Days) == 0 {
		t.printf("No itinerary items yet.\n")
	}
	for _, d := range p.Days {
		t.printf("\n%s  [%s]\n", d.Label(), d.MealPlan)
		for _, h := range d.Hotels {
			t.printf("  Stay: %s\n", h.Title)
		}
		for _, it := range d.Items {
			head := it.Title
			if it.Time != "" {
				head = it.Time + " " + head
			}
			t.printf("  * %s (%s)\n", head, it.Type)
			if it.Description != "" {
				t.printf("    %s\n", it.Description)
			}
		}
	}

	if p.Baggage != "" {
		t.section("Baggage info")
		t.printf("%s\n", p.Baggage)
	}

	t.section("Inclusions")
	for _, s := range p.Inclusions {
		t.printf("  + %s\n", s)
	}
	t.section("Exclusions")
	for _, s := range p.Exclusions {
		t.printf("  - %s\n", s)
	}

	if len(p.Cancellation) > 0 {
		t.section("Cancellation terms")
		for _, c := range p.Cancellation {
			t.printf("  %s\n", c)
		}
	}

	t.printf("\nValidity: strictly 24 hours. Ref %s\n", p.Reference)
	return t.err
}
