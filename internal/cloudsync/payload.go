package cloudsync

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dmitrijs2005/tripquote/internal/common"
	"github.com/dmitrijs2005/tripquote/internal/models"
)

// NormalizeURL trims the URL, drops its fragment and turns a gist share link
// into the raw download link.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if i := strings.IndexByte(u, '#'); i >= 0 {
		u = u[:i]
	}
	if strings.Contains(u, "gist.github.com") && !strings.Contains(u, "/raw") {
		u = strings.Replace(u, "gist.github.com", "gist.githubusercontent.com", 1) + "/raw"
	}
	return u
}

// truthy applies JavaScript truthiness to a JSON value; the published
// documents were written against that rule.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	case gjson.True, gjson.JSON:
		return true
	}
	return r.Exists()
}

func parse(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON", common.ErrMalformedPayload)
	}
	return gjson.ParseBytes(body), nil
}

// LibraryDocument returns the library object carried by a main channel
// payload: either the document itself or its "record" member.
func LibraryDocument(body []byte) ([]byte, error) {
	root, err := parse(body)
	if err != nil {
		return nil, err
	}
	doc := root
	if rec := root.Get("record"); root.IsObject() && truthy(rec) {
		doc = rec
	}
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: library document is not an object", common.ErrMalformedPayload)
	}
	return []byte(doc.Raw), nil
}

// TemplateList returns the templates carried by a templates channel payload:
// a bare array, or the array under "itineraryTemplates" or else "templates".
func TemplateList(body []byte) ([]models.ItineraryTemplate, error) {
	root, err := parse(body)
	if err != nil {
		return nil, err
	}
	list := root
	if root.IsObject() {
		list = root.Get("itineraryTemplates")
		if !truthy(list) {
			list = root.Get("templates")
		}
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: no template array found", common.ErrMalformedPayload)
	}

	var out []models.ItineraryTemplate
	if err := json.Unmarshal([]byte(list.Raw), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedPayload, err)
	}
	return out, nil
}
