package usecase

import "strings"

// Similarity helpers return a 0-100 score so thresholds read the same as the
// tuning they were lifted from. Everything is compared lower-cased.

// ratio computes a Levenshtein-based similarity between two strings.
func ratio(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 100
	}
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	dist := levenshteinDistance(a, b)
	return (longest - dist) * 100 / longest
}

// partialRatio computes the best ratio of the shorter string against any
// equal-length window of the longer one. A clean substring scores 100.
func partialRatio(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == "" || b == "" {
		return 0
	}

	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if strings.Contains(longer, shorter) {
		return 100
	}

	best := 0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		if r := ratio(shorter, longer[i:i+len(shorter)]); r > best {
			best = r
		}
	}
	if best == 0 {
		best = ratio(shorter, longer)
	}
	return best
}

// wordRatio returns the best similarity between the candidate and either the
// whole target or any single word of it. Multi-word catalog colors like
// "pink nude" match a requested "nude" through their constituent words.
func wordRatio(target, candidate string) int {
	best := ratio(target, candidate)
	for _, word := range strings.Fields(target) {
		if r := ratio(word, candidate); r > best {
			best = r
		}
	}
	return best
}

// levenshteinDistance calculates the edit distance between two strings.
// Uses two rows instead of a full matrix for space efficiency.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
