// Package editdist provides bounded Damerau-Levenshtein distances and
// single-edit neighborhood expansion for candidate generation.
package editdist

// Distance computes the Damerau-Levenshtein distance between two strings:
// the minimum number of single-character insertions, deletions,
// substitutions, or adjacent transpositions required to change one word
// into the other. This implementation works with runes to properly handle
// Unicode input, even though dictionary words are ASCII.
func Distance(a, b string) int {
	return DistanceWithLimit(a, b, -1)
}

// DistanceWithLimit computes the Damerau-Levenshtein distance with early
// termination. If maxDistance is non-negative and the actual distance
// exceeds it, maxDistance + 1 is returned instead of the exact value.
func DistanceWithLimit(a, b string, maxDistance int) int {
	runesA := []rune(a)
	runesB := []rune(b)

	lenA := len(runesA)
	lenB := len(runesB)

	// Length difference is a lower bound on the distance.
	if maxDistance >= 0 {
		lengthDiff := lenA - lenB
		if lengthDiff < 0 {
			lengthDiff = -lengthDiff
		}
		if lengthDiff > maxDistance {
			return maxDistance + 1
		}
	}

	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	// Three rolling rows: transpositions need the i-2 row.
	prevPrevRow := make([]int, lenB+1)
	prevRow := make([]int, lenB+1)
	currRow := make([]int, lenB+1)

	for j := 0; j <= lenB; j++ {
		prevRow[j] = j
	}

	for i := 1; i <= lenA; i++ {
		currRow[0] = i
		minInRow := i

		for j := 1; j <= lenB; j++ {
			cost := 0
			if runesA[i-1] != runesB[j-1] {
				cost = 1
			}

			deletion := prevRow[j] + 1
			insertion := currRow[j-1] + 1
			substitution := prevRow[j-1] + cost

			currRow[j] = min3(deletion, insertion, substitution)

			// Transposition (Damerau extension)
			if i > 1 && j > 1 &&
				runesA[i-1] == runesB[j-2] &&
				runesA[i-2] == runesB[j-1] {
				transposition := prevPrevRow[j-2] + cost
				if transposition < currRow[j] {
					currRow[j] = transposition
				}
			}

			if currRow[j] < minInRow {
				minInRow = currRow[j]
			}
		}

		// If the minimum of the current row already exceeds the limit,
		// the final distance will too.
		if maxDistance >= 0 && minInRow > maxDistance {
			return maxDistance + 1
		}

		prevPrevRow, prevRow, currRow = prevRow, currRow, prevPrevRow
	}

	return prevRow[lenB]
}

// min3 is a helper function to find the minimum of three integers
func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
