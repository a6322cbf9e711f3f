// Package suggest ranks candidate names by similarity to a (likely
// mistyped) input string.
package suggest

import (
	"sort"
	"strings"
)

// minScore is the similarity below which a candidate is not worth offering.
const minScore = 0.5

type scored struct {
	name  string
	score float64
}

// Similar returns up to max candidates similar to target, best match first.
// Ties break alphabetically.
func Similar(target string, candidates []string, max int) []string {
	if target == "" || max <= 0 {
		return nil
	}
	ranked := make([]scored, 0, len(candidates))
	for _, name := range candidates {
		if s := similarity(target, name); s > minScore {
			ranked = append(ranked, scored{name: name, score: s})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score == ranked[j].score {
			return ranked[i].name < ranked[j].name
		}
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > max {
		ranked = ranked[:max]
	}
	names := make([]string, 0, len(ranked))
	for _, s := range ranked {
		names = append(names, s.name)
	}
	return names
}

func similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1
	}
	// Typing a prefix of a longer name is the common case.
	if strings.HasPrefix(b, a) {
		return 0.9
	}
	longest := max(len(a), len(b))
	return 1 - float64(editDistance(a, b))/float64(longest)
}

// editDistance is a two-row Levenshtein distance.
func editDistance(a, b string) int {
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
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
