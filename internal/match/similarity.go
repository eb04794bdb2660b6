package match

// Similarity scores two raw strings in [0, 1] using the longest common
// subsequence: 1 - indelDistance/maxLen, where indelDistance is the number
// of insertions plus deletions needed to turn one string into the other.
// Identical strings (after scoring normalization) score 1.0 and the score
// is monotone in edit distance. O(|a|*|b|) time, O(min) space.
func Similarity(a, b string) float64 {
	na, nb := normalizeForScoring(a), normalizeForScoring(b)
	if na == nb {
		return 1.0
	}
	la, lb := len(na), len(nb)
	if la == 0 || lb == 0 {
		return 0.0
	}
	lcs := lcsLength(na, nb)
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	dist := la + lb - 2*lcs
	score := 1.0 - float64(dist)/float64(maxLen)
	if score < 0 {
		return 0.0
	}
	return score
}

// lcsLength computes the longest-common-subsequence length with a
// two-row dynamic program.
func lcsLength(a, b string) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for j := 1; j <= len(b); j++ {
		for i := 1; i <= len(a); i++ {
			if a[i-1] == b[j-1] {
				curr[i] = prev[i-1] + 1
			} else if prev[i] >= curr[i-1] {
				curr[i] = prev[i]
			} else {
				curr[i] = curr[i-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}
