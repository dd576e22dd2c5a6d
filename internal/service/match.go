package service

// similarityRatio measures how alike two strings are as
// 2*M / (len(a)+len(b)), where M is the length of their longest common
// subsequence. 1 means identical, 0 means nothing in common.
func similarityRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	// Single-row LCS table.
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	matches := prev[len(b)]
	return 2 * float64(matches) / float64(len(a)+len(b))
}

// closestMatch returns the candidate most similar to name, or "" when
// no candidate reaches the cutoff. Candidates are assumed normalized.
func closestMatch(name string, candidates []string, cutoff float64) string {
	best := ""
	bestRatio := cutoff
	for _, candidate := range candidates {
		if ratio := similarityRatio(name, candidate); ratio >= bestRatio {
			best = candidate
			bestRatio = ratio
		}
	}
	return best
}
