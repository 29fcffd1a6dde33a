// The target site's markup changes often, so every lookup is an ordered
// cascade of strategies: try the most specific selector first, fall through
// to broader ones, and treat "nothing matched anywhere" as a valid empty
// result rather than an error.

package scraper

import "log"

// Strategy is one way of locating a set of items on the current page.
// Run returns the items it found; an error counts the same as zero items.
type Strategy[T any] struct {
	Name string
	Run  func() ([]T, error)
}

// FirstNonEmpty runs strategies in order and returns the results of the
// first one that yields at least one item, together with that strategy's
// name. Later strategies are never invoked once one succeeds. Returns
// (nil, "") when every strategy came up empty.
func FirstNonEmpty[T any](strategies ...Strategy[T]) ([]T, string) {
	for _, s := range strategies {
		items, err := s.Run()
		if err != nil {
			log.Printf("⚠️ 戦略「%s」が失敗しました: %v", s.Name, err)
			continue
		}
		if len(items) > 0 {
			return items, s.Name
		}
	}
	return nil, ""
}

// ValueStrategy is the scalar variant used for single-field lookups.
type ValueStrategy struct {
	Name string
	Run  func() (string, error)
}

// FirstValue returns the first non-empty string produced by the strategies,
// or "" when none of them matched.
func FirstValue(strategies ...ValueStrategy) string {
	for _, s := range strategies {
		v, err := s.Run()
		if err != nil {
			continue
		}
		if v != "" {
			return v
		}
	}
	return ""
}
