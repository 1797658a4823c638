// Package fuzzy ranks declared flag spellings against a mistyped option so
// unknown-option errors can carry a "did you mean" hint.
package fuzzy

import (
	"sort"
	"strings"
)

// Matcher scores candidates by bounded Levenshtein distance.
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a matcher accepting candidates within maxDistance edits.
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2,
	}
}

// Match is a ranked candidate.
type Match struct {
	Value    string
	Distance int
	Score    float64 // 0.0 to 1.0, higher is better
}

// Best returns the best candidate or "" when none is close enough.
func (m *Matcher) Best(input string, candidates []string) string {
	matches := m.Matches(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// Matches returns every candidate within range, best first. Leading dashes
// are ignored on both sides, so "--verbos" ranks "--verbose" and "-verbose"
// equally well.
func (m *Matcher) Matches(input string, candidates []string) []Match {
	needle := strings.ToLower(strings.TrimLeft(input, "-"))
	if len(needle) < m.minLength {
		return nil
	}

	var matches []Match
	for _, candidate := range candidates {
		hay := strings.ToLower(strings.TrimLeft(candidate, "-"))
		if hay == needle {
			continue
		}
		distance := m.distance(needle, hay)
		if distance > m.maxDistance {
			continue
		}
		matches = append(matches, Match{
			Value:    candidate,
			Distance: distance,
			Score:    m.score(needle, hay, distance),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// score favors small edit distance, then a shared prefix.
func (m *Matcher) score(a, b string, distance int) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1.0
	}
	s := 1.0 - float64(distance)/float64(longest)
	if p := commonPrefix(a, b); p > 0 {
		s += float64(p) / float64(min(len(a), len(b))) * 0.3
	}
	return min(s, 1.0)
}

// distance is a two-row Levenshtein that bails out once every cell in a row
// exceeds maxDistance.
func (m *Matcher) distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if abs(len(a)-len(b)) > m.maxDistance {
		return m.maxDistance + 1
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	cur := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}
	for i := 1; i <= len(b); i++ {
		cur[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if a[j-1] == b[i-1] {
				cost = 0
			}
			cur[j] = min(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
			rowMin = min(rowMin, cur[j])
		}
		if rowMin > m.maxDistance {
			return m.maxDistance + 1
		}
		prev, cur = cur, prev
	}
	return prev[len(a)]
}

func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// SuggestFlag returns the declared flag closest to input.
func SuggestFlag(input string, flags []string, maxDistance int) string {
	return NewMatcher(maxDistance).Best(input, flags)
}

// Suggestions returns up to limit candidates close to input, best first.
func Suggestions(input string, candidates []string, maxDistance, limit int) []string {
	matches := NewMatcher(maxDistance).Matches(input, candidates)
	out := make([]string, 0, min(len(matches), limit))
	for i, match := range matches {
		if i >= limit {
			break
		}
		out = append(out, match.Value)
	}
	return out
}
