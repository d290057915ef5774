package search

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/bookhive/order_picker_service/common/constants"
	"github.com/bookhive/order_picker_service/internal/catalog"
)

// EmptyQueryPolicy decides what an empty query matches. Screens differ:
// most show the full catalog, some show nothing until the user types.
type EmptyQueryPolicy int

const (
	MatchAll EmptyQueryPolicy = iota
	MatchNone
)

type Options struct {
	EmptyQuery EmptyQueryPolicy

	// Fuzzy enables a levenshtein fallback per word when no substring
	// matches. Off by default; substring semantics are unchanged.
	Fuzzy       bool
	MaxDistance int
}

// Filter returns the entities whose search fields contain query,
// case-insensitively, preserving catalog fetch order. It is pure: the
// result depends only on its arguments.
func Filter(query string, entities []catalog.Entity, opts Options) []catalog.Entity {
	q := strings.ToLower(query)
	if q == "" {
		if opts.EmptyQuery == MatchNone {
			return nil
		}
		out := make([]catalog.Entity, len(entities))
		copy(out, entities)
		return out
	}

	var out []catalog.Entity
	for _, e := range entities {
		if matches(q, e, opts) {
			out = append(out, e)
		}
	}
	return out
}

func matches(q string, e catalog.Entity, opts Options) bool {
	for _, field := range e.SearchFields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	if !opts.Fuzzy {
		return false
	}

	maxDist := opts.MaxDistance
	if maxDist <= 0 {
		maxDist = constants.MAX_LEVENSHTEIN_DISTANCE
	}
	for _, field := range e.SearchFields {
		for _, word := range strings.Fields(strings.ToLower(field)) {
			if levenshtein.ComputeDistance(q, word) <= maxDist {
				return true
			}
		}
	}
	return false
}
