// Package fuzzy provides edit-distance matching for parser suggestions.
// Used by clamp/errors.go to attach "did you mean" hints to classification
// failures on unknown options and sub-commands.
package fuzzy

import (
	"sort"
	"strings"
)

// Matcher ranks candidate names against a mistyped input.
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a matcher with the given maximum edit distance.
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2, // too-short inputs produce noise, not suggestions
	}
}

// Match is a ranked candidate.
type Match struct {
	Value    string
	Distance int
}

// FindBest returns the closest candidate, or "" when nothing is within the
// configured distance.
func (m *Matcher) FindBest(input string, candidates []string) string {
	matches := m.FindMatches(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// FindMatches returns all candidates within the configured distance, closest
// first. Ties are broken by longer common prefix, then declaration order.
func (m *Matcher) FindMatches(input string, candidates []string) []Match {
	if len(input) < m.minLength {
		return nil
	}

	lowered := strings.ToLower(input)
	matches := make([]Match, 0, 4)
	order := make(map[string]int, len(candidates))

	for i, candidate := range candidates {
		lc := strings.ToLower(candidate)
		if lc == lowered {
			continue // exact matches are not typos
		}
		if _, seen := order[candidate]; !seen {
			order[candidate] = i
		}
		if d := levenshtein(lowered, lc, m.maxDistance); d <= m.maxDistance {
			matches = append(matches, Match{Value: candidate, Distance: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		pi := commonPrefixLen(lowered, strings.ToLower(matches[i].Value))
		pj := commonPrefixLen(lowered, strings.ToLower(matches[j].Value))
		if pi != pj {
			return pi > pj
		}
		return order[matches[i].Value] < order[matches[j].Value]
	})

	return matches
}

// levenshtein computes edit distance with two rolling rows, bailing out early
// once every entry in a row exceeds maxDistance.
func levenshtein(a, b string, maxDistance int) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		if rowMin > maxDistance {
			return maxDistance + 1
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// FindBestOption finds the closest long-option name for a mistyped token.
func FindBestOption(input string, options []string, maxDistance int) string {
	return NewMatcher(maxDistance).FindBest(input, options)
}

// FindBestCommand finds the closest sub-command name for a mistyped token.
func FindBestCommand(input string, commands []string, maxDistance int) string {
	return NewMatcher(maxDistance).FindBest(input, commands)
}
