package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/order_picker_service/common/constants"
)

func TestNormalizeBook_FullRecord(t *testing.T) {
	e, ok := NormalizeBook(map[string]any{
		"id":            "b-1",
		"title":         "Atomic Habits",
		"author":        "James Clear",
		"language":      "English",
		"publisher":     "Avery",
		"publishedYear": "2018",
		"coverUrl":      "https://cdn.example.com/atomic.jpg",
		"isActive":      true,
	})
	require.True(t, ok)

	assert.Equal(t, "b-1", e.ID)
	assert.Equal(t, KindBook, e.Kind)
	assert.Equal(t, []string{"Atomic Habits", "James Clear", "English", "Avery"}, e.SearchFields)
	assert.Equal(t, "2018", e.Display["publishedYear"])
	assert.Equal(t, "https://cdn.example.com/atomic.jpg", e.Display["coverUrl"])
}

func TestNormalizeBook_DefaultsEveryMissingField(t *testing.T) {
	e, ok := NormalizeBook(map[string]any{"_id": "b-2"})
	require.True(t, ok)

	assert.Equal(t, "b-2", e.ID)
	assert.Equal(t, "Untitled", e.Display["title"])
	assert.Equal(t, "Unknown Author", e.Display["author"])
	assert.Equal(t, "Unknown", e.Display["language"])
	assert.Equal(t, "Unknown", e.Display["publisher"])
	assert.Equal(t, "N/A", e.Display["publishedYear"])
	assert.Equal(t, constants.DefaultCoverURL, e.Display["coverUrl"])

	for key, value := range e.Display {
		assert.NotEmpty(t, value, "display field %q must never be empty", key)
	}
}

func TestNormalizeBook_IDFallsBackToMongoID(t *testing.T) {
	e, ok := NormalizeBook(map[string]any{"_id": "mongo-1", "title": "Deep Work"})
	require.True(t, ok)
	assert.Equal(t, "mongo-1", e.ID)

	// Plain id wins when both are present.
	e, ok = NormalizeBook(map[string]any{"id": "plain-1", "_id": "mongo-1"})
	require.True(t, ok)
	assert.Equal(t, "plain-1", e.ID)
}

func TestNormalizeBook_DropsRecordsWithoutID(t *testing.T) {
	_, ok := NormalizeBook(map[string]any{"title": "Orphan"})
	assert.False(t, ok)
}

func TestNormalizeBook_DropsInactiveBooks(t *testing.T) {
	_, ok := NormalizeBook(map[string]any{"id": "b-3", "isActive": false})
	assert.False(t, ok)
}

func TestNormalizeBook_StringifiesNumericYear(t *testing.T) {
	// JSON numbers decode as float64.
	e, ok := NormalizeBook(map[string]any{"id": "b-4", "publishedYear": float64(2018)})
	require.True(t, ok)
	assert.Equal(t, "2018", e.Display["publishedYear"])
}

func TestNormalizeBook_CoverImageFallback(t *testing.T) {
	e, ok := NormalizeBook(map[string]any{"id": "b-5", "coverImage": "https://cdn.example.com/alt.jpg"})
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/alt.jpg", e.Display["coverUrl"])
}

func TestNormalizeUser_Defaults(t *testing.T) {
	e, ok := NormalizeUser(map[string]any{"id": "u-1"})
	require.True(t, ok)

	assert.Equal(t, KindUser, e.Kind)
	assert.Equal(t, "Unnamed User", e.Display["userName"])
	assert.Equal(t, "unknown@example.com", e.Display["email"])
	assert.Equal(t, constants.DefaultAvatarURL, e.Display["avatar"])
	assert.Equal(t, []string{"Unnamed User", "unknown@example.com", "u-1"}, e.SearchFields)
}

func TestNormalizeUser_SearchableByNameEmailAndID(t *testing.T) {
	e, ok := NormalizeUser(map[string]any{
		"id":       "u-2",
		"userName": "Karen Lee",
		"email":    "karen@example.com",
	})
	require.True(t, ok)
	assert.Equal(t, []string{"Karen Lee", "karen@example.com", "u-2"}, e.SearchFields)
}

func TestNormalizeUser_DropsRecordsWithoutID(t *testing.T) {
	_, ok := NormalizeUser(map[string]any{"email": "ghost@example.com"})
	assert.False(t, ok)
}

func TestPlaceholder(t *testing.T) {
	book := Placeholder(KindBook, "deleted-1")
	assert.Equal(t, "deleted-1", book.ID)
	assert.Equal(t, "No longer available", book.Display["title"])
	assert.NotEmpty(t, book.Display["coverUrl"])

	user := Placeholder(KindUser, "deleted-2")
	assert.Equal(t, "Unknown user", user.Display["userName"])
}
