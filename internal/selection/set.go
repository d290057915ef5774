// Package selection holds the ordered set of entities the user has picked
// for submission. Insertion order is the submission order.
package selection

import "fmt"

// DuplicateSelectionError reports an Add for an id already in the set.
// The set is unchanged; callers surface a transient notice and move on.
type DuplicateSelectionError struct {
	ID string
}

func (e *DuplicateSelectionError) Error() string {
	return fmt.Sprintf("entity %q already selected", e.ID)
}

// Set is an ordered collection of entity ids with no duplicates.
// It is not safe for concurrent use; the owning session serializes access.
type Set struct {
	members []string
	index   map[string]struct{}
}

// NewSet returns a set pre-seeded with the given ids, e.g. the book list of
// an order being edited. Duplicate seeds are dropped, first occurrence wins.
func NewSet(seed ...string) *Set {
	s := &Set{index: make(map[string]struct{}, len(seed))}
	for _, id := range seed {
		if _, ok := s.index[id]; ok {
			continue
		}
		s.index[id] = struct{}{}
		s.members = append(s.members, id)
	}
	return s
}

// Add appends id to the set. Adding an id that is already a member returns
// DuplicateSelectionError and leaves the set unchanged.
func (s *Set) Add(id string) error {
	if _, ok := s.index[id]; ok {
		return &DuplicateSelectionError{ID: id}
	}
	s.index[id] = struct{}{}
	s.members = append(s.members, id)
	return nil
}

// Remove deletes id from the set. Removing an absent id is a no-op.
func (s *Set) Remove(id string) {
	if _, ok := s.index[id]; !ok {
		return
	}
	delete(s.index, id)
	for i, member := range s.members {
		if member == id {
			s.members = append(s.members[:i], s.members[i+1:]...)
			break
		}
	}
}

func (s *Set) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// OrderedIDs returns the members in insertion order. Re-adding a removed id
// appends it at the end, not at its original position.
func (s *Set) OrderedIDs() []string {
	out := make([]string, len(s.members))
	copy(out, s.members)
	return out
}

func (s *Set) Len() int { return len(s.members) }
