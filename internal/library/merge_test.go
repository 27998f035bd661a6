package library

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tripquote/internal/common"
	"github.com/dmitrijs2005/tripquote/internal/models"
)

func TestOverlay_ReplacesPresentKeysOnly(t *testing.T) {
	base := models.DefaultLibrary()
	raw := []byte(`{"inclusions":["Only This"],"hotels":[{"title":"Remote Hotel","description":"","city":"Pokhara","inclusions":[],"exclusions":[]}],"unknown":1}`)

	out, err := Overlay(base, raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Only This"}, out.Inclusions)
	require.Len(t, out.Hotels, 1)
	assert.Equal(t, "Remote Hotel", out.Hotels[0].Title)
	assert.Equal(t, base.Exclusions, out.Exclusions)
	assert.Equal(t, base.Flights, out.Flights)
}

func TestOverlay_FreshValuesNoLeak(t *testing.T) {
	base := models.DefaultLibrary()
	raw := []byte(`{"flights":[{"title":"Remote"}]}`)

	out, err := Overlay(base, raw)
	require.NoError(t, err)
	require.Len(t, out.Flights, 1)
	assert.Empty(t, out.Flights[0].Description)
	assert.Nil(t, out.Flights[0].Inclusions)
}

func TestOverlay_NullBecomesEmpty(t *testing.T) {
	out, err := Overlay(models.DefaultLibrary(), []byte(`{"exclusions":null}`))
	require.NoError(t, err)
	assert.NotNil(t, out.Exclusions)
	assert.Empty(t, out.Exclusions)
}

func TestOverlay_Malformed(t *testing.T) {
	base := models.DefaultLibrary()
	for _, raw := range []string{`[1,2]`, `"str"`, `{"inclusions":"not a list"}`, `{broken`} {
		out, err := Overlay(base, []byte(raw))
		require.ErrorIs(t, err, common.ErrMalformedPayload, raw)
		assert.Equal(t, base.Inclusions, out.Inclusions)
	}
}

func TestMergeRemoteLibrary_KeepsTemplates(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddTemplate(ctx, models.ItineraryTemplate{Name: "Local"}))

	raw := []byte(`{"inclusions":["Remote"],"itineraryTemplates":[{"name":"Remote Trip","destination":"X","items":[]}]}`)
	require.NoError(t, s.MergeRemoteLibrary(ctx, raw))

	lib := s.Snapshot()
	assert.Equal(t, []string{"Remote"}, lib.Inclusions)
	require.Len(t, lib.ItineraryTemplates, 1)
	assert.Equal(t, "Local", lib.ItineraryTemplates[0].Name)
}

func TestMergeRemoteLibrary_IgnoresRemoteTemplatesValue(t *testing.T) {
	tests := []struct {
		name      string
		templates string
	}{
		{name: "string", templates: `"not-a-list"`},
		{name: "badly typed items", templates: `[{"name":1,"items":"x"},42]`},
		{name: "object", templates: `{"name":"T"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newStore(t)
			ctx := context.Background()
			require.NoError(t, s.AddTemplate(ctx, models.ItineraryTemplate{Name: "Local"}))

			raw := []byte(`{"inclusions":["Remote Only"],"itineraryTemplates":` + tt.templates + `}`)
			require.NoError(t, s.MergeRemoteLibrary(ctx, raw))

			lib := s.Snapshot()
			assert.Equal(t, []string{"Remote Only"}, lib.Inclusions)
			require.Len(t, lib.ItineraryTemplates, 1)
			assert.Equal(t, "Local", lib.ItineraryTemplates[0].Name)
		})
	}
}

func TestMergeRemoteLibrary_MalformedLeavesState(t *testing.T) {
	s, p := newStore(t)
	before := s.Snapshot()
	require.ErrorIs(t, s.MergeRemoteLibrary(context.Background(), []byte(`[]`)), common.ErrMalformedPayload)
	assert.Equal(t, before, s.Snapshot())
	assert.Empty(t, p.saved)
}

func TestMergeRemoteTemplates_DedupByName(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddTemplate(ctx, models.ItineraryTemplate{Name: "Everest Base Camp"}))
	before := s.Snapshot()

	added, err := s.MergeRemoteTemplates(ctx, []models.ItineraryTemplate{
		{Name: "Everest Base Camp", Destination: "remote"},
		{Name: "Annapurna"},
		{Name: "everest base camp"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	after := s.Snapshot()
	names := []string{}
	for _, tpl := range after.ItineraryTemplates {
		names = append(names, tpl.Name)
	}
	assert.Equal(t, []string{"Everest Base Camp", "Annapurna", "everest base camp"}, names)
	assert.Empty(t, after.ItineraryTemplates[0].Destination)

	after.ItineraryTemplates = before.ItineraryTemplates
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("template merge touched other keys:\n%s", diff)
	}
}

func TestMergeRemoteTemplates_NothingNew(t *testing.T) {
	s, p := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddTemplate(ctx, models.ItineraryTemplate{Name: "A"}))

	added, err := s.MergeRemoteTemplates(ctx, []models.ItineraryTemplate{{Name: "A"}})
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Len(t, p.saved, 1)
}

func TestLibraryExportImport_RoundTrip(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddTemplate(ctx, models.ItineraryTemplate{
		Name: "T", Destination: "Nepal",
		Items: []models.TemplateItem{{Type: models.ItemHotel, Title: "H", Day: 1, Inclusions: []string{}, Exclusions: []string{}}},
	}))
	want := s.Snapshot()

	data, err := s.ExportLibrary()
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"inclusions\"")

	other := NewStore(models.Library{}, nil, nil)
	require.NoError(t, other.ImportLibrary(ctx, data))
	if diff := cmp.Diff(want, other.Snapshot()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportLibrary_RejectsNonObject(t *testing.T) {
	s, _ := newStore(t)
	require.ErrorIs(t, s.ImportLibrary(context.Background(), []byte(`null`)), common.ErrMalformedPayload)
	require.ErrorIs(t, s.ImportLibrary(context.Background(), []byte(`[]`)), common.ErrMalformedPayload)
}

func TestTemplatesExportImport(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddTemplate(ctx, models.ItineraryTemplate{Name: "A", Items: []models.TemplateItem{}}))

	data, err := s.ExportTemplates()
	require.NoError(t, err)

	n, err := s.ImportTemplates(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, s.Snapshot().ItineraryTemplates, 2, "import appends without dedupe")

	_, err = s.ImportTemplates(ctx, []byte(`{"name":"A"}`))
	require.ErrorIs(t, err, common.ErrMalformedPayload)
}

func TestSearchTemplates(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddTemplate(ctx, models.ItineraryTemplate{Name: "Everest Trek", Destination: "Nepal"}))
	require.NoError(t, s.AddTemplate(ctx, models.ItineraryTemplate{Name: "Paro Valley", Destination: "Bhutan"}))

	got := s.SearchTemplates("NEPAL")
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Index)

	got = s.SearchTemplates("paro")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Index)

	assert.Len(t, s.SearchTemplates(""), 2)
}

func TestSuggest(t *testing.T) {
	s, _ := newStore(t)

	got := s.Suggest(models.CategoryInclusions, "trans", nil)
	assert.Equal(t, []string{"Private Transfers"}, got)

	got = s.Suggest(models.CategoryInclusions, "a", []string{"welcome drink", "VISA ASSISTANCE"})
	assert.NotContains(t, got, "Welcome Drink")
	assert.NotContains(t, got, "Visa Assistance")
	assert.Contains(t, got, "All Taxes & GST")

	assert.Nil(t, s.Suggest(models.CategoryInclusions, "  ", nil))
	assert.Nil(t, s.Suggest(models.CategoryFlights, "std", nil))
}
