package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/order_picker_service/internal/catalog"
)

func bookCatalog() []catalog.Entity {
	return []catalog.Entity{
		{ID: "1", Kind: catalog.KindBook, SearchFields: []string{"Atomic Habits", "James Clear", "English", "Avery"}},
		{ID: "2", Kind: catalog.KindBook, SearchFields: []string{"Deep Work", "Cal Newport", "English", "Grand Central"}},
		{ID: "3", Kind: catalog.KindBook, SearchFields: []string{"Essentialism", "Greg McKeown", "Spanish", "Crown"}},
	}
}

func ids(entities []catalog.Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.ID
	}
	return out
}

func TestFilter_SubstringMatch(t *testing.T) {
	got := Filter("atomic", bookCatalog(), Options{})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilter_CaseInsensitive(t *testing.T) {
	lower := Filter("atomic", bookCatalog(), Options{})
	upper := Filter("ATOMIC", bookCatalog(), Options{})
	mixed := Filter("AtOmIc", bookCatalog(), Options{})

	assert.Equal(t, lower, upper)
	assert.Equal(t, lower, mixed)
}

func TestFilter_MatchesAnySearchField(t *testing.T) {
	byAuthor := Filter("newport", bookCatalog(), Options{})
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "2", byAuthor[0].ID)

	byLanguage := Filter("english", bookCatalog(), Options{})
	assert.Equal(t, []string{"1", "2"}, ids(byLanguage))
}

func TestFilter_EmptyQueryShowsAllByDefault(t *testing.T) {
	got := Filter("", bookCatalog(), Options{})
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))
}

func TestFilter_EmptyQueryMatchNonePolicy(t *testing.T) {
	got := Filter("", bookCatalog(), Options{EmptyQuery: MatchNone})
	assert.Empty(t, got)

	// A non-empty query behaves the same under both policies.
	assert.Equal(t,
		ids(Filter("deep", bookCatalog(), Options{})),
		ids(Filter("deep", bookCatalog(), Options{EmptyQuery: MatchNone})))
}

func TestFilter_PreservesCatalogOrder(t *testing.T) {
	got := Filter("e", bookCatalog(), Options{})
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))
}

func TestFilter_NoMatch(t *testing.T) {
	got := Filter("zzzzz", bookCatalog(), Options{})
	assert.Empty(t, got)
}

func TestFilter_EmptyCatalogIsSafe(t *testing.T) {
	assert.Empty(t, Filter("anything", nil, Options{}))
	assert.Empty(t, Filter("", nil, Options{}))
}

func TestFilter_IsPureAcrossSequentialQueries(t *testing.T) {
	cat := bookCatalog()

	// Simulate keystrokes: each call depends only on its own query, the
	// last result never reflects an earlier one.
	_ = Filter("a", cat, Options{})
	_ = Filter("at", cat, Options{})
	got := Filter("atomic", cat, Options{})

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	again := Filter("atomic", cat, Options{})
	assert.Equal(t, got, again)
}

func TestFilter_DoesNotAliasCatalogSlice(t *testing.T) {
	cat := bookCatalog()
	got := Filter("", cat, Options{})
	got[0] = catalog.Entity{ID: "mutated"}
	assert.Equal(t, "1", cat[0].ID)
}

func TestFilter_FuzzyFallback(t *testing.T) {
	// "atomc" is one edit away from "atomic"; substring matching misses it.
	assert.Empty(t, Filter("atomc", bookCatalog(), Options{}))

	got := Filter("atomc", bookCatalog(), Options{Fuzzy: true})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilter_FuzzyRespectsMaxDistance(t *testing.T) {
	got := Filter("atm", bookCatalog(), Options{Fuzzy: true, MaxDistance: 1})
	assert.Empty(t, got)
}
