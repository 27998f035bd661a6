package quotes

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/tripquote/internal/common"
	"github.com/dmitrijs2005/tripquote/internal/derive"
	"github.com/dmitrijs2005/tripquote/internal/models"
	"github.com/dmitrijs2005/tripquote/internal/suggest"
)

// Editor holds the working copy of one quote. Nothing reaches the store until
// the caller saves Quote().
type Editor struct {
	q    models.Quote
	idFn func() string
}

// NewEditor starts editing a copy of q.
func NewEditor(q models.Quote) *Editor {
	return &Editor{q: q.Clone(), idFn: uuid.NewString}
}

// NewDraft starts editing a fresh quote.
func NewDraft(now time.Time, currency, consultant string) *Editor {
	if currency == "" {
		currency = common.DefaultCurrency
	}
	q := models.NewQuote(uuid.NewString(), now, currency)
	q.GeneratedBy = consultant
	return NewEditor(q)
}

// Quote returns a copy of the working quote.
func (e *Editor) Quote() models.Quote {
	return e.q.Clone()
}

// Update lets fn change top-level fields of the working copy. Changes are
// discarded when fn returns an error.
func (e *Editor) Update(fn func(q *models.Quote) error) error {
	next := e.q.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	e.q = next
	return nil
}

func (e *Editor) itemIndex(id string) (int, error) {
	i := slices.IndexFunc(e.q.Items, func(it models.ItineraryItem) bool { return it.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("item %s: %w", id, common.ErrNotFound)
	}
	return i, nil
}

// Item returns a copy of the item with the given id.
func (e *Editor) Item(id string) (models.ItineraryItem, error) {
	i, err := e.itemIndex(id)
	if err != nil {
		return models.ItineraryItem{}, err
	}
	return e.q.Items[i].Clone(), nil
}

// AddItem appends a placeholder item of type typ on day.
func (e *Editor) AddItem(typ models.ItemType, day int) (models.ItineraryItem, error) {
	if _, err := models.ParseItemType(string(typ)); err != nil {
		return models.ItineraryItem{}, err
	}
	if day < 1 {
		return models.ItineraryItem{}, fmt.Errorf("day must be positive, got %d", day)
	}
	it := models.ItineraryItem{
		ID:         e.idFn(),
		Type:       typ,
		Title:      "New " + string(typ),
		Day:        day,
		Inclusions: []string{},
		Exclusions: []string{},
	}
	e.q.Items = append(e.q.Items, it)
	return it.Clone(), nil
}

// ItemPatch lists the item fields to change; nil fields are left alone.
type ItemPatch struct {
	Type        *models.ItemType
	Title       *string
	Description *string
	Day         *int
	City        *string
	Time        *string
	Inclusions  []string
	Exclusions  []string
}

// UpdateItem applies patch to the item with the given id.
func (e *Editor) UpdateItem(id string, patch ItemPatch) error {
	i, err := e.itemIndex(id)
	if err != nil {
		return err
	}
	it := e.q.Items[i].Clone()
	if patch.Type != nil {
		it.Type = *patch.Type
	}
	if patch.Title != nil {
		it.Title = *patch.Title
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.Day != nil {
		it.Day = *patch.Day
	}
	if patch.City != nil {
		it.City = *patch.City
	}
	if patch.Time != nil {
		it.Time = *patch.Time
	}
	if patch.Inclusions != nil {
		it.Inclusions = slices.Clone(patch.Inclusions)
	}
	if patch.Exclusions != nil {
		it.Exclusions = slices.Clone(patch.Exclusions)
	}
	if err := it.Validate(); err != nil {
		return err
	}
	e.q.Items[i] = it
	return nil
}

// RemoveItem drops the item with the given id.
func (e *Editor) RemoveItem(id string) error {
	i, err := e.itemIndex(id)
	if err != nil {
		return err
	}
	e.q.Items = slices.Delete(e.q.Items, i, i+1)
	return nil
}

// ApplyMaster copies the content of a library master item into an item.
// Type and day are kept.
func (e *Editor) ApplyMaster(id string, m models.MasterItem) error {
	i, err := e.itemIndex(id)
	if err != nil {
		return err
	}
	m = m.Clone()
	it := &e.q.Items[i]
	it.Title = m.Title
	it.Description = m.Description
	it.City = m.City
	it.Inclusions = m.Inclusions
	it.Exclusions = m.Exclusions
	return nil
}

// TagList selects one of the tag lists of an item.
type TagList int

const (
	TagInclusions TagList = iota + 1
	TagExclusions
)

func (e *Editor) tags(id string, which TagList) (*[]string, error) {
	i, err := e.itemIndex(id)
	if err != nil {
		return nil, err
	}
	switch which {
	case TagInclusions:
		return &e.q.Items[i].Inclusions, nil
	case TagExclusions:
		return &e.q.Items[i].Exclusions, nil
	}
	return nil, fmt.Errorf("unknown tag list %d", which)
}

// AddItemTag appends tag to an item list unless present, ignoring case. It
// reports whether the tag was added.
func (e *Editor) AddItemTag(id string, which TagList, tag string) (bool, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false, common.ErrBlankText
	}
	list, err := e.tags(id, which)
	if err != nil {
		return false, err
	}
	if slices.ContainsFunc(*list, func(v string) bool { return strings.EqualFold(v, tag) }) {
		return false, nil
	}
	*list = append(slices.Clone(*list), tag)
	return true, nil
}

// RemoveItemTag removes the tag at index from an item list.
func (e *Editor) RemoveItemTag(id string, which TagList, index int) error {
	list, err := e.tags(id, which)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*list) {
		return fmt.Errorf("%w: tag %d of %d", common.ErrIndexOutOfRange, index, len(*list))
	}
	*list = slices.Delete(slices.Clone(*list), index, index+1)
	return nil
}

// MoveDay swaps day with its neighbour in the given direction.
func (e *Editor) MoveDay(day int, dir derive.Direction) {
	e.q.Items = derive.MoveDay(e.q.Items, day, dir)
}

// InjectTemplate appends copies of every template item with fresh ids. The
// destination is taken from the template when the quote has none.
func (e *Editor) InjectTemplate(tpl models.ItineraryTemplate) int {
	for _, ti := range tpl.Items {
		e.q.Items = append(e.q.Items, ti.Instantiate(e.idFn()))
	}
	if e.q.Destination == "" {
		e.q.Destination = tpl.Destination
	}
	return len(tpl.Items)
}

// ToggleInclusion adds text to the quote inclusions, or removes it when
// present. It reports whether the text is now selected.
func (e *Editor) ToggleInclusion(text string) bool {
	return toggle(&e.q.Inclusions, text)
}

// ToggleExclusion is ToggleInclusion for exclusions.
func (e *Editor) ToggleExclusion(text string) bool {
	return toggle(&e.q.Exclusions, text)
}

func toggle(list *[]string, text string) bool {
	if i := slices.Index(*list, text); i >= 0 {
		*list = slices.Delete(slices.Clone(*list), i, i+1)
		return false
	}
	*list = append(slices.Clone(*list), text)
	return true
}

// Policies splits the cancellation policy into its clauses.
func Policies(policy string) []string {
	var out []string
	for _, p := range strings.Split(policy, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TogglePolicy adds or removes one clause of the cancellation policy.
func (e *Editor) TogglePolicy(policy string) bool {
	policy = strings.TrimSpace(policy)
	clauses := Policies(e.q.CancellationPolicy)
	on := toggle(&clauses, policy)
	e.q.CancellationPolicy = strings.Join(clauses, "\n")
	return on
}

// AppendSuggestions adds suggested items to the itinerary with fresh ids.
func (e *Editor) AppendSuggestions(cands []suggest.Candidate) int {
	for _, c := range cands {
		e.q.Items = append(e.q.Items, models.ItineraryItem{
			ID:          e.idFn(),
			Type:        c.Type,
			Title:       c.Title,
			Description: c.Description,
			Day:         max(c.Day, 1),
			Time:        c.Time,
			Inclusions:  []string{},
			Exclusions:  []string{},
		})
	}
	return len(cands)
}

// TemplateName proposes a name for saving the itinerary as a template.
func (e *Editor) TemplateName() string {
	if e.q.Title != "" {
		return e.q.Title
	}
	return e.q.Destination + " Journey"
}

// DayGroups groups the working items by day over the quote's date range.
func (e *Editor) DayGroups() derive.DayGroups {
	return derive.GroupByDay(e.q.Items, e.q.StartDate, e.q.EndDate)
}
