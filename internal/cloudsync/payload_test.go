package cloudsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tripquote/internal/common"
)

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"  https://example.com/lib.json  ":                 "https://example.com/lib.json",
		"https://example.com/lib.json#section":              "https://example.com/lib.json",
		"https://gist.github.com/user/abc123":               "https://gist.githubusercontent.com/user/abc123/raw",
		"https://gist.github.com/user/abc123#file-x":        "https://gist.githubusercontent.com/user/abc123/raw",
		"https://gist.githubusercontent.com/user/abc/raw/x": "https://gist.githubusercontent.com/user/abc/raw/x",
		"https://gist.github.com/user/abc/raw/file.json":    "https://gist.github.com/user/abc/raw/file.json",
		"":                                                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeURL(in), in)
	}
}

func TestLibraryDocument(t *testing.T) {
	doc, err := LibraryDocument([]byte(`{"record":{"inclusions":["A"]},"metadata":{}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"inclusions":["A"]}`, string(doc))

	doc, err = LibraryDocument([]byte(`{"inclusions":["B"]}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"inclusions":["B"]}`, string(doc))

	// a falsy record falls back to the whole document
	doc, err = LibraryDocument([]byte(`{"record":null,"exclusions":[]}`))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "exclusions")

	for _, bad := range []string{`[]`, `"x"`, `{"record":"text"}`, `not json`} {
		_, err := LibraryDocument([]byte(bad))
		require.ErrorIs(t, err, common.ErrMalformedPayload, bad)
	}
}

func TestTemplateList(t *testing.T) {
	shapes := []string{
		`[{"name":"A","destination":"X","items":[]}]`,
		`{"itineraryTemplates":[{"name":"A","destination":"X","items":[]}]}`,
		`{"templates":[{"name":"A","destination":"X","items":[]}]}`,
		`{"itineraryTemplates":null,"templates":[{"name":"A","destination":"X","items":[]}]}`,
	}
	for _, body := range shapes {
		list, err := TemplateList([]byte(body))
		require.NoError(t, err, body)
		require.Len(t, list, 1, body)
		assert.Equal(t, "A", list[0].Name)
	}

	for _, bad := range []string{`{"name":"A"}`, `{"templates":{"a":1}}`, `42`, `{`} {
		_, err := TemplateList([]byte(bad))
		require.ErrorIs(t, err, common.ErrMalformedPayload, bad)
	}
}
