package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tripquote/internal/models"
)

func item(id string, typ models.ItemType, dayN int, title, city string) models.ItineraryItem {
	return models.ItineraryItem{ID: id, Type: typ, Day: dayN, Title: title, City: city}
}

func TestDaySpan(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		want       int
	}{
		{"five days", "2025-01-01", "2025-01-05", 5},
		{"same day", "2025-01-01", "2025-01-01", 1},
		{"reversed", "2025-01-05", "2025-01-01", 5},
		{"bad start", "soon", "2025-01-05", 1},
		{"empty end", "2025-01-01", "", 1},
		{"rfc3339", "2025-01-01T00:00:00Z", "2025-01-02T06:00:00Z", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaySpan(tc.start, tc.end))
		})
	}
}

func TestGroupByDay_AllDaysPresent(t *testing.T) {
	g := GroupByDay(nil, "2025-01-01", "2025-01-05")
	assert.Equal(t, []int{1, 2, 3, 4, 5}, g.Days())
	for _, d := range g.Days() {
		assert.NotNil(t, g[d])
		assert.Empty(t, g[d])
	}
}

func TestGroupByDay_ItemBeyondSpanExtends(t *testing.T) {
	items := []models.ItineraryItem{item("x", models.ItemActivity, 10, "Late", "")}
	g := GroupByDay(items, "2025-01-01", "2025-01-05")
	assert.Len(t, g.Days(), 10)
	assert.Equal(t, 10, g.Days()[9])
	require.Len(t, g[10], 1)
	assert.Equal(t, "x", g[10][0].ID)
}

func TestGroupByDay_PreservesInsertionOrder(t *testing.T) {
	items := []models.ItineraryItem{
		item("a", models.ItemActivity, 2, "A", ""),
		item("b", models.ItemHotel, 1, "B", ""),
		item("c", models.ItemTransfer, 2, "C", ""),
	}
	g := GroupByDay(items, "2025-01-01", "2025-01-02")
	require.Len(t, g[2], 2)
	assert.Equal(t, "a", g[2][0].ID)
	assert.Equal(t, "c", g[2][1].ID)
}

func TestOverflowAndDaysWithItems(t *testing.T) {
	items := []models.ItineraryItem{
		item("a", models.ItemActivity, 7, "A", ""),
		item("b", models.ItemActivity, 2, "B", ""),
		item("c", models.ItemActivity, 7, "C", ""),
		item("d", models.ItemActivity, 6, "D", ""),
	}
	assert.Equal(t, []int{6, 7}, OverflowDays(items, "2025-01-01", "2025-01-05"))
	assert.Empty(t, OverflowDays(items[1:2], "2025-01-01", "2025-01-05"))
	assert.Equal(t, []int{2, 6, 7}, DaysWithItems(items))
}

func TestDateForDay(t *testing.T) {
	d, ok := DateForDay("2025-01-30", 3)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), d)

	_, ok = DateForDay("", 1)
	assert.False(t, ok)
}

func TestMoveDay_SwapsWholeDays(t *testing.T) {
	items := []models.ItineraryItem{
		item("A", models.ItemActivity, 2, "A", ""),
		item("B", models.ItemActivity, 3, "B", ""),
		item("C", models.ItemActivity, 5, "C", ""),
		item("D", models.ItemActivity, 3, "D", ""),
	}
	out := MoveDay(items, 3, Up)

	assert.Equal(t, 3, out[0].Day)
	assert.Equal(t, 2, out[1].Day)
	assert.Equal(t, 5, out[2].Day)
	assert.Equal(t, 2, out[3].Day)
	// input untouched
	assert.Equal(t, 2, items[0].Day)

	back := MoveDay(out, 2, Down)
	for i := range items {
		assert.Equal(t, items[i].Day, back[i].Day)
	}
}

func TestMoveDay_FirstDayUpIsNoop(t *testing.T) {
	items := []models.ItineraryItem{item("A", models.ItemActivity, 1, "A", ""), item("B", models.ItemActivity, 2, "B", "")}
	out := MoveDay(items, 1, Up)
	assert.Equal(t, 1, out[0].Day)
	assert.Equal(t, 2, out[1].Day)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(" UP ")
	require.NoError(t, err)
	assert.Equal(t, Up, d)
	d, err = ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, Down, d)
	_, err = ParseDirection("left")
	require.Error(t, err)
}

func TestMealPlan(t *testing.T) {
	dinner := []models.ItineraryItem{item("a", models.ItemActivity, 2, "Farewell Dinner Cruise", "")}
	assert.Equal(t, "N/A", MealPlan(1, dinner))
	assert.Equal(t, "Breakfast & Dinner", MealPlan(2, dinner))
	assert.Equal(t, "Breakfast", MealPlan(3, nil))

	lunch := []models.ItineraryItem{{Title: "Village walk", Description: "with LUNCH at a farmhouse"}}
	assert.Equal(t, "Breakfast & Lunch", MealPlan(4, lunch))

	both := append(lunch, dinner...)
	assert.Equal(t, "Breakfast, Lunch & Dinner", MealPlan(5, both))
}

func TestMatchHotels_ByCity(t *testing.T) {
	lib := []models.MasterItem{
		{Title: "Lakeside Inn", City: "Pokhara"},
		{Title: "Hyatt", City: "Kathmandu"},
		{Title: "No City"},
	}
	pokharaDay := []models.ItineraryItem{item("a", models.ItemActivity, 2, "Boating", "  pokhara ")}
	otherDay := []models.ItineraryItem{item("b", models.ItemActivity, 3, "Walk", "Bhaktapur")}

	got := MatchHotels(pokharaDay, lib, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Lakeside Inn", got[0].Title)
	assert.True(t, got[0].FromLibrary)

	assert.Empty(t, MatchHotels(otherDay, lib, nil))
	assert.Empty(t, MatchHotels(nil, lib, nil))
}

func TestMatchHotels_HotelItemsDoNotSeedCities(t *testing.T) {
	lib := []models.MasterItem{{Title: "Lakeside Inn", City: "Pokhara"}}
	day := []models.ItineraryItem{item("h", models.ItemHotel, 2, "Stay", "Pokhara")}
	assert.Empty(t, MatchHotels(day, lib, day))
}

func TestMatchHotels_LibraryFirstThenQuoteDeduped(t *testing.T) {
	lib := []models.MasterItem{{Title: "Lakeside Inn", City: "Pokhara", Description: "lib"}}
	quoteItems := []models.ItineraryItem{
		item("h1", models.ItemHotel, 4, "LAKESIDE INN", "pokhara"),
		item("h2", models.ItemHotel, 4, "Fish Tail Lodge", "Pokhara"),
		item("h3", models.ItemHotel, 4, "Dwarika", "Kathmandu"),
	}
	day := []models.ItineraryItem{item("a", models.ItemTransfer, 2, "Drive", "Pokhara")}

	got := MatchHotels(day, lib, quoteItems)
	require.Len(t, got, 2)
	assert.Equal(t, "lib", got[0].Description)
	assert.Equal(t, "Fish Tail Lodge", got[1].Title)
	assert.False(t, got[1].FromLibrary)
}

func TestMatchHotels_DedupeIgnoresSurroundingSpace(t *testing.T) {
	lib := []models.MasterItem{{Title: "Lakeside Inn", City: "Pokhara"}}
	quoteItems := []models.ItineraryItem{item("h1", models.ItemHotel, 4, " lakeside inn ", "Pokhara  ")}
	day := []models.ItineraryItem{item("a", models.ItemTransfer, 2, "Drive", "Pokhara")}

	got := MatchHotels(day, lib, quoteItems)
	require.Len(t, got, 1)
	assert.True(t, got[0].FromLibrary)
}

func TestSmartLists(t *testing.T) {
	q := models.Quote{
		Inclusions: []string{"Welcome Drink", ""},
		Exclusions: []string{"Tips"},
		Items: []models.ItineraryItem{
			{Type: models.ItemFlight, Inclusions: []string{"20kg Luggage"}, Exclusions: []string{"Meals"}},
			{Type: models.ItemActivity, Inclusions: []string{"Guide", "Welcome Drink"}, Exclusions: []string{"Tips", "Lunch"}},
			{Type: models.ItemHotel, Inclusions: []string{"Breakfast", ""}},
		},
	}
	assert.Equal(t, []string{"Welcome Drink", "Guide", "Breakfast"}, SmartInclusions(q))
	assert.Equal(t, []string{"Tips", "Lunch"}, SmartExclusions(q))
	assert.Equal(t, []string{}, SmartInclusions(models.Quote{}))
}

func TestPrice_AdultsOnly(t *testing.T) {
	q := models.Quote{PricePerAdult: 100, Client: models.ClientDetails{Travelers: models.Travelers{Adults: 2}}}
	b := Price(q)
	require.Len(t, b.Lines, 1)
	assert.Equal(t, "Adults", b.Lines[0].Label)
	assert.InDelta(t, 200, b.Total, 1e-9)
	assert.InDelta(t, 200, Total(q), 1e-9)
}

func TestPrice_AdultsRowEvenWhenZero(t *testing.T) {
	b := Price(models.Quote{})
	require.Len(t, b.Lines, 1)
	assert.Zero(t, b.Total)
}

func TestPrice_AllRows(t *testing.T) {
	q := models.Quote{
		Client:         models.ClientDetails{Travelers: models.Travelers{Adults: 2, Children: 1, Infants: 1}},
		PricePerAdult:  100,
		PricePerChild:  50,
		PricePerInfant: 10,
		BaggagePcs:     3,
		BaggageRate:    5,
		ExtraTitle:     "Rafting",
		ExtraPax:       2,
		ExtraRate:      20,
	}
	b := Price(q)
	labels := make([]string, 0, len(b.Lines))
	for _, l := range b.Lines {
		labels = append(labels, l.Label)
	}
	assert.Equal(t, []string{"Adults", "Children", "Infants", "Baggage", "Rafting"}, labels)
	assert.InDelta(t, 200+50+10+15+40, b.Total, 1e-9)
	assert.Equal(t, "Qty", b.Lines[3].Unit)
}

func TestPrice_ExtraNeedsTitleAndPax(t *testing.T) {
	q := models.Quote{ExtraRate: 99, ExtraPax: 3}
	assert.Len(t, Price(q).Lines, 1)
	q.ExtraTitle = "Spa"
	q.ExtraPax = 0
	assert.Len(t, Price(q).Lines, 1)
}

func TestTotal_MatchesBreakdownSum(t *testing.T) {
	for i := 0; i < 20; i++ {
		q := models.Quote{
			Client:         models.ClientDetails{Travelers: models.Travelers{Adults: i % 4, Children: i % 3, Infants: i % 2}},
			PricePerAdult:  float64(i) * 12.5,
			PricePerChild:  float64(i) * 3,
			PricePerInfant: 1.25,
			BaggagePcs:     i % 5,
			BaggageRate:    7,
			ExtraPax:       i % 3,
			ExtraRate:      11,
		}
		if i%2 == 0 {
			q.ExtraTitle = "Extra"
		}
		var sum float64
		for _, l := range Price(q).Lines {
			sum += l.Total
		}
		assert.InDelta(t, sum, Total(q), 1e-9)
	}
}

func TestTravelersSummary(t *testing.T) {
	assert.Equal(t, "2 Adult(s)", TravelersSummary(models.Travelers{Adults: 2}))
	assert.Equal(t, "2 Adult(s), 1 Child(ren), 3 Infant(s)", TravelersSummary(models.Travelers{Adults: 2, Children: 1, Infants: 3}))
}
