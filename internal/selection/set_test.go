package selection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_AddKeepsInsertionOrder(t *testing.T) {
	s := NewSet()

	require.NoError(t, s.Add("book-1"))
	require.NoError(t, s.Add("book-2"))
	require.NoError(t, s.Add("book-3"))

	assert.Equal(t, []string{"book-1", "book-2", "book-3"}, s.OrderedIDs())
	assert.Equal(t, 3, s.Len())
}

func TestSet_DuplicateAddIsRejectedWithoutMutation(t *testing.T) {
	s := NewSet()
	require.NoError(t, s.Add("book-1"))

	err := s.Add("book-1")
	require.Error(t, err)

	var dup *DuplicateSelectionError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "book-1", dup.ID)

	assert.Equal(t, []string{"book-1"}, s.OrderedIDs())
}

func TestSet_UniquenessUnderArbitraryAddSequences(t *testing.T) {
	s := NewSet()
	ids := []string{"a", "b", "a", "c", "b", "a", "c", "c"}

	for _, id := range ids {
		err := s.Add(id)
		if err != nil {
			var dup *DuplicateSelectionError
			require.ErrorAs(t, err, &dup)
		}
		// No duplicates after any prefix.
		seen := map[string]int{}
		for _, m := range s.OrderedIDs() {
			seen[m]++
			assert.Equal(t, 1, seen[m])
		}
	}
	assert.Equal(t, []string{"a", "b", "c"}, s.OrderedIDs())
}

func TestSet_RemoveIsIdempotent(t *testing.T) {
	s := NewSet("a", "b")

	s.Remove("a")
	assert.Equal(t, []string{"b"}, s.OrderedIDs())

	// Removing again, or removing something never added, changes nothing.
	s.Remove("a")
	s.Remove("never-added")
	assert.Equal(t, []string{"b"}, s.OrderedIDs())
}

func TestSet_ReAddAppendsAtEnd(t *testing.T) {
	s := NewSet()
	require.NoError(t, s.Add("a"))
	require.NoError(t, s.Add("b"))

	s.Remove("a")
	require.NoError(t, s.Add("a"))

	assert.Equal(t, []string{"b", "a"}, s.OrderedIDs())
}

func TestSet_Contains(t *testing.T) {
	s := NewSet("a")

	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("b"))

	s.Remove("a")
	assert.False(t, s.Contains("a"))
}

func TestSet_SeedDropsDuplicates(t *testing.T) {
	s := NewSet("a", "b", "a", "c", "b")
	assert.Equal(t, []string{"a", "b", "c"}, s.OrderedIDs())
}

func TestSet_OrderedIDsReturnsACopy(t *testing.T) {
	s := NewSet("a", "b")

	ids := s.OrderedIDs()
	ids[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, s.OrderedIDs())
}

func TestDuplicateSelectionError_Message(t *testing.T) {
	err := &DuplicateSelectionError{ID: "book-9"}
	assert.Equal(t, fmt.Sprintf("entity %q already selected", "book-9"), err.Error())
}
