//nolint:testpackage // using package name 'fuzzy' to access unexported fields for testing
package fuzzy

import "testing"

func TestFindBest(t *testing.T) {
	m := NewMatcher(2)
	candidates := []string{"build", "clean", "deploy", "status"}

	cases := []struct {
		input string
		want  string
	}{
		{"biuld", "build"},
		{"buil", "build"},
		{"clena", "clean"},
		{"deplyo", "deploy"},
		{"xyzzy", ""},
		{"b", ""}, // below the minimum input length
	}
	for _, tc := range cases {
		if got := m.FindBest(tc.input, candidates); got != tc.want {
			t.Errorf("FindBest(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestExactMatchIsNotATypo(t *testing.T) {
	m := NewMatcher(2)
	if got := m.FindBest("build", []string{"build", "builds"}); got != "builds" {
		t.Errorf("Exact matches must be skipped, got %q", got)
	}
}

func TestCaseInsensitive(t *testing.T) {
	m := NewMatcher(2)
	if got := m.FindBest("BIULD", []string{"build"}); got != "build" {
		t.Errorf("Matching should ignore case, got %q", got)
	}
}

func TestTieBreakPrefersCommonPrefix(t *testing.T) {
	m := NewMatcher(2)
	// "verbos" is distance 1 from both; "verbose" shares the longer prefix.
	got := m.FindMatches("verbos", []string{"verbios", "verbose"})
	if len(got) == 0 || got[0].Value != "verbose" {
		t.Errorf("Expected the longer common prefix to win, got %v", got)
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flag", "flag", 0},
		{"cat", "cut", 1},
	}
	for _, tc := range cases {
		if got := levenshtein(tc.a, tc.b, 10); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLevenshteinBailout(t *testing.T) {
	if got := levenshtein("completely", "different", 2); got <= 2 {
		t.Errorf("Expected the bailout to report above the cap, got %d", got)
	}
}
