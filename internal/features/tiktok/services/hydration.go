package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StateScriptID is the id of the script element holding the profile's hydration blob
const StateScriptID = "SIGI_STATE"

// userPosts is the part of the hydration blob the feed is built from
type userPosts struct {
	List  []any
	Items map[string]any
}

// findStateScript returns the text of the hydration script element.
// ok is false when the element is missing or empty.
func findStateScript(html []byte) (text string, ok bool, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", false, fmt.Errorf("failed to parse profile html: %w", err)
	}

	script := doc.Find(fmt.Sprintf(`script[id=%q]`, StateScriptID)).First()
	if script.Length() == 0 {
		return "", false, nil
	}

	// Text keeps script content verbatim; Html would entity-escape it
	text = script.Text()
	if text == "" {
		return "", false, nil
	}
	return text, true, nil
}

// parseUserPosts decodes the hydration blob and walks ItemList.userPost.
// Missing or null levels become empty; a list that is not an array is an error.
func parseUserPosts(raw string) (*userPosts, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var state any
	if err := dec.Decode(&state); err != nil {
		return nil, fmt.Errorf("failed to decode hydration state: %w", err)
	}
	// Anything after the value, even a stray closing bracket, is malformed
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("failed to decode hydration state: trailing data after JSON value")
	}

	posts := &userPosts{
		List:  []any{},
		Items: map[string]any{},
	}

	switch list := lookup(state, "ItemList", "userPost", "list").(type) {
	case nil:
	case []any:
		posts.List = list
	default:
		return nil, fmt.Errorf("ItemList.userPost.list is %T, not an array", list)
	}

	if items, ok := lookup(state, "ItemList", "userPost", "map").(map[string]any); ok {
		posts.Items = items
	}

	return posts, nil
}

// lookup follows path through nested objects, yielding nil at the first gap
func lookup(v any, path ...string) any {
	for _, key := range path {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = obj[key]
	}
	return v
}

// headSlice returns list[0:n] with negative n counting back from the end
func headSlice(list []any, n int) []any {
	if n < 0 {
		n += len(list)
		if n < 0 {
			n = 0
		}
	}
	if n > len(list) {
		n = len(list)
	}
	return list[:n]
}

// keyOf turns a list entry into the key used to index the item map
func keyOf(v any) (string, bool) {
	switch k := v.(type) {
	case string:
		return k, true
	case json.Number:
		return k.String(), true
	default:
		return "", false
	}
}

// itemID returns the item's own id when it is present and truthy
func itemID(item any) (string, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return "", false
	}

	switch id := obj["id"].(type) {
	case string:
		return id, id != ""
	case json.Number:
		if f, err := id.Float64(); err != nil || f == 0 {
			return "", false
		}
		return id.String(), true
	case bool:
		return "true", id
	default:
		return "", false
	}
}
