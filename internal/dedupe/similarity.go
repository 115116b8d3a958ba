// Package dedupe flags probable duplicate contacts before they are created.
// Matching is name-first: email and phone equality only ever corroborate a
// name that already matched, so a shared office number or billing address
// never triggers a duplicate on its own.
package dedupe

import "strings"

// Similarity scores how alike two strings are on a 0..1 scale: 1.0 for an
// exact match after trimming and lower-casing, 0 when either side is empty.
// The score is normalized Levenshtein distance over runes. Intended for
// name-sized inputs; the DP table is O(len(a)*len(b)).
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	ra := []rune(a)
	rb := []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	return 1 - float64(levenshtein(ra, rb))/float64(maxLen)
}

// levenshtein computes edit distance with a two-row DP table.
func levenshtein(a, b []rune) int {
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
			best := prev[j] + 1 // deletion
			if ins := curr[j-1] + 1; ins < best {
				best = ins
			}
			if sub := prev[j-1] + cost; sub < best {
				best = sub
			}
			curr[j] = best
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
