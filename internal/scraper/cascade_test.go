package scraper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstNonEmpty_StopsAtFirstHit(t *testing.T) {
	callsA, callsB, callsC := 0, 0, 0

	items, name := FirstNonEmpty(
		Strategy[string]{Name: "anchor-scan", Run: func() ([]string, error) {
			callsA++
			return []string{"a", "b"}, nil
		}},
		Strategy[string]{Name: "table-scan", Run: func() ([]string, error) {
			callsB++
			return []string{"c"}, nil
		}},
		Strategy[string]{Name: "company-crawl", Run: func() ([]string, error) {
			callsC++
			return nil, nil
		}},
	)

	assert.Equal(t, []string{"a", "b"}, items)
	assert.Equal(t, "anchor-scan", name)
	assert.Equal(t, 1, callsA)
	assert.Equal(t, 0, callsB, "later strategies must not run once one succeeds")
	assert.Equal(t, 0, callsC)
}

func TestFirstNonEmpty_ErrorCountsAsEmpty(t *testing.T) {
	items, name := FirstNonEmpty(
		Strategy[int]{Name: "broken", Run: func() ([]int, error) {
			return nil, errors.New("selector timed out")
		}},
		Strategy[int]{Name: "fallback", Run: func() ([]int, error) {
			return []int{7}, nil
		}},
	)

	assert.Equal(t, []int{7}, items)
	assert.Equal(t, "fallback", name)
}

func TestFirstNonEmpty_AllEmpty(t *testing.T) {
	items, name := FirstNonEmpty(
		Strategy[string]{Name: "one", Run: func() ([]string, error) { return nil, nil }},
		Strategy[string]{Name: "two", Run: func() ([]string, error) { return []string{}, nil }},
	)

	assert.Nil(t, items)
	assert.Equal(t, "", name)
}

func TestFirstValue(t *testing.T) {
	v := FirstValue(
		ValueStrategy{Name: "th-exact", Run: func() (string, error) { return "", nil }},
		ValueStrategy{Name: "xpath", Run: func() (string, error) { return "", errors.New("no node") }},
		ValueStrategy{Name: "data-label", Run: func() (string, error) { return "東京都内", nil }},
	)
	assert.Equal(t, "東京都内", v)

	assert.Equal(t, "", FirstValue(
		ValueStrategy{Name: "none", Run: func() (string, error) { return "", nil }},
	))
}
