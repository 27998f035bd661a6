// Package quotes manages saved quotes and the working copy being edited.
package quotes

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/tripquote/internal/common"
	"github.com/dmitrijs2005/tripquote/internal/derive"
	"github.com/dmitrijs2005/tripquote/internal/logging"
	"github.com/dmitrijs2005/tripquote/internal/models"
)

// Persister durably stores the full list of quotes.
type Persister interface {
	SaveQuotes(ctx context.Context, quotes []models.Quote) error
}

// Store keeps the saved quotes, newest first.
type Store struct {
	mu      sync.Mutex
	quotes  []models.Quote
	persist Persister
	log     logging.Logger
}

func NewStore(initial []models.Quote, p Persister, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{quotes: cloneAll(initial), persist: p, log: log}
}

func cloneAll(in []models.Quote) []models.Quote {
	out := make([]models.Quote, len(in))
	for i, q := range in {
		out[i] = q.Clone()
	}
	return out
}

func (s *Store) commit(ctx context.Context, op string, next []models.Quote) error {
	if s.persist != nil {
		if err := s.persist.SaveQuotes(ctx, next); err != nil {
			s.log.Error(ctx, "quotes not saved", "op", op, "error", err)
			return fmt.Errorf("failed to save quotes: %w", err)
		}
	}
	s.quotes = next
	return nil
}

// Reset replaces every quote in memory without persisting.
func (s *Store) Reset(qs []models.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes = cloneAll(qs)
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.quotes, func(q models.Quote) bool { return q.ID == id })
}

// List returns copies of all quotes.
func (s *Store) List() []models.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.quotes)
}

// Get returns a copy of the quote with the given id.
func (s *Store) Get(id string) (models.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return models.Quote{}, fmt.Errorf("quote %s: %w", id, common.ErrNotFound)
	}
	return s.quotes[i].Clone(), nil
}

// Save validates q and stores it, replacing the quote with the same id or
// prepending it when new.
func (s *Store) Save(ctx context.Context, q models.Quote) error {
	if err := q.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneAll(s.quotes)
	if i := s.index(q.ID); i >= 0 {
		next[i] = q.Clone()
	} else {
		next = append([]models.Quote{q.Clone()}, next...)
	}
	if err := s.commit(ctx, "save", next); err != nil {
		return err
	}
	s.log.Info(ctx, "quote saved", "id", q.ID, "items", len(q.Items))
	return nil
}

// Delete removes the quote with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("quote %s: %w", id, common.ErrNotFound)
	}
	next := slices.Delete(cloneAll(s.quotes), i, i+1)
	return s.commit(ctx, "delete", next)
}

// UpdateStatus moves a saved quote to status.
func (s *Store) UpdateStatus(ctx context.Context, id string, status models.QuoteStatus) error {
	if _, err := models.ParseStatus(string(status)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("quote %s: %w", id, common.ErrNotFound)
	}
	next := cloneAll(s.quotes)
	next[i].Status = status
	return s.commit(ctx, "status", next)
}

// Search returns the quotes whose title, destination or client name contain
// query, ignoring case.
func (s *Store) Search(query string) []models.Quote {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Quote
	for _, quote := range s.List() {
		if q == "" ||
			strings.Contains(strings.ToLower(quote.Title), q) ||
			strings.Contains(strings.ToLower(quote.Destination), q) ||
			strings.Contains(strings.ToLower(quote.Client.Name), q) {
			out = append(out, quote)
		}
	}
	return out
}

// Summary is one dashboard row.
type Summary struct {
	ID        string
	Title     string
	Client    string
	StartDate string
	Status    models.QuoteStatus
	Currency  string
	Total     float64
	Items     int
	CreatedAt time.Time
}

// Summarize builds the dashboard row of q. Its total is derive.Total, the
// same figure the proposal prints.
func Summarize(q models.Quote) Summary {
	return Summary{
		ID:        q.ID,
		Title:     q.DisplayTitle(),
		Client:    q.Client.Name,
		StartDate: q.StartDate,
		Status:    q.Status,
		Currency:  q.Currency,
		Total:     derive.Total(q),
		Items:     len(q.Items),
		CreatedAt: q.CreatedAt,
	}
}

// Summaries returns a dashboard row per saved quote.
func (s *Store) Summaries() []Summary {
	quotes := s.List()
	out := make([]Summary, len(quotes))
	for i, q := range quotes {
		out[i] = Summarize(q)
	}
	return out
}

// Stats are the dashboard counters.
type Stats struct {
	Total    int
	ByStatus map[models.QuoteStatus]int
}

func (s *Store) Stats() Stats {
	quotes := s.List()
	st := Stats{Total: len(quotes), ByStatus: make(map[models.QuoteStatus]int, len(models.Statuses))}
	for _, status := range models.Statuses {
		st.ByStatus[status] = 0
	}
	for _, q := range quotes {
		st.ByStatus[q.Status]++
	}
	return st
}
