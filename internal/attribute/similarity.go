package attribute

import "strings"

// Similarity scores two normalized names. Exact matches score 1.0,
// containment 0.9, everything else the Ratcliff-Obershelp ratio.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.9
	}
	return ratio(a, b)
}

// ratio is the Ratcliff-Obershelp similarity: twice the number of
// matching characters over the total length, where matches are found by
// recursively taking the longest common substring and matching the
// pieces on either side of it.
func ratio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	m := matchTotal(a, b, 0, len(a), 0, len(b))
	return 2.0 * float64(m) / float64(total)
}

func matchTotal(a, b string, alo, ahi, blo, bhi int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	return size +
		matchTotal(a, b, alo, i, blo, j) +
		matchTotal(a, b, i+size, ahi, j+size, bhi)
}

// longestMatch finds the longest common substring of a[alo:ahi] and
// b[blo:bhi], preferring the leftmost position in a and then in b on
// ties.
func longestMatch(a, b string, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo

	// j2len[j] is the length of the common substring ending at a[i] and
	// b[j], carried forward one row at a time.
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return besti, bestj, bestsize
}
