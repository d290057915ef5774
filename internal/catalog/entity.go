package catalog

import (
	"strconv"

	"github.com/bookhive/order_picker_service/common/constants"
)

type Kind string

const (
	KindBook Kind = "book"
	KindUser Kind = "user"
)

// Entity is one selectable catalog item. SearchFields carries the values
// used for query matching, Display the values rendered by the dashboard.
type Entity struct {
	ID           string            `json:"id"`
	Kind         Kind              `json:"kind"`
	SearchFields []string          `json:"searchFields"`
	Display      map[string]string `json:"display"`
}

// NormalizeBook builds an Entity from a raw upstream record. Every field is
// total-defaulted so nothing downstream ever sees a missing value.
//
// Default table:
//
//	id             id, then _id; record dropped when both missing
//	title          "Untitled"
//	author         "Unknown Author"
//	language       "Unknown"
//	publisher      "Unknown"
//	publishedYear  "N/A"
//	coverUrl       coverUrl, then coverImage, then placeholder cover
//
// Records with isActive == false are dropped.
func NormalizeBook(raw map[string]any) (Entity, bool) {
	id := stringField(raw, "", "id", "_id")
	if id == "" {
		return Entity{}, false
	}
	if active, ok := raw["isActive"].(bool); ok && !active {
		return Entity{}, false
	}

	title := stringField(raw, "Untitled", "title")
	author := stringField(raw, "Unknown Author", "author")
	language := stringField(raw, "Unknown", "language")
	publisher := stringField(raw, "Unknown", "publisher")

	return Entity{
		ID:           id,
		Kind:         KindBook,
		SearchFields: []string{title, author, language, publisher},
		Display: map[string]string{
			"title":         title,
			"author":        author,
			"language":      language,
			"publisher":     publisher,
			"publishedYear": stringField(raw, "N/A", "publishedYear"),
			"coverUrl":      stringField(raw, constants.DefaultCoverURL, "coverUrl", "coverImage"),
		},
	}, true
}

// NormalizeUser applies the same discipline to user records.
//
// Default table:
//
//	id        id, then _id; record dropped when both missing
//	userName  "Unnamed User"
//	email     "unknown@example.com"
//	avatar    placeholder avatar
func NormalizeUser(raw map[string]any) (Entity, bool) {
	id := stringField(raw, "", "id", "_id")
	if id == "" {
		return Entity{}, false
	}

	name := stringField(raw, "Unnamed User", "userName", "name")
	email := stringField(raw, "unknown@example.com", "email")

	return Entity{
		ID:           id,
		Kind:         KindUser,
		SearchFields: []string{name, email, id},
		Display: map[string]string{
			"userName": name,
			"email":    email,
			"avatar":   stringField(raw, constants.DefaultAvatarURL, "avatar"),
		},
	}, true
}

// Placeholder stands in for an entity referenced by id but absent from the
// catalog, e.g. a book on an existing order that has since been deleted.
// Callers render it as a regular row instead of failing.
func Placeholder(kind Kind, id string) Entity {
	display := map[string]string{
		"title":    "No longer available",
		"coverUrl": constants.DefaultCoverURL,
	}
	if kind == KindUser {
		display = map[string]string{
			"userName": "Unknown user",
			"email":    "unknown@example.com",
			"avatar":   constants.DefaultAvatarURL,
		}
	}
	return Entity{ID: id, Kind: kind, Display: display}
}

// stringField returns the first usable value among keys, stringifying JSON
// numbers, or def when none is present.
func stringField(raw map[string]any, def string, keys ...string) string {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		}
	}
	return def
}
