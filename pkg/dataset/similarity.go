package dataset

import "strings"

// Confidence thresholds for relationship detection.
const (
	// MinConfidence is the cutoff below which a column pair is not
	// considered a relationship.
	MinConfidence = 0.7
	// exactCutoff separates exact from fuzzy match types.
	exactCutoff = 0.95
	// conventionConfidence is awarded when two names share a naming
	// convention base token (id/code/name).
	conventionConfidence = 0.9
	// fuzzyFloor is the minimum normalized similarity for a pure
	// string-similarity match.
	fuzzyFloor = 0.8
	// fuzzyDiscount scales string similarity relative to semantic matches.
	fuzzyDiscount = 0.8
)

// conventionTokens are the naming-convention base tokens tested during
// relationship detection: a column named "branch_id" and one named "id"
// both reduce to the token "id".
var conventionTokens = []string{"id", "code", "name"}

// Normalize returns the canonical matching form of a cell or column name:
// lowercased and trimmed. All membership and matching operations use
// normalized values.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MatchConfidence scores how likely two column names refer to the same
// real-world field. Returns a confidence in [0, 1]:
//
//  1. exact normalized match: 1.0
//  2. shared naming-convention token (x_id/id, x_code/code, x_name/name): 0.9
//  3. Levenshtein similarity > 0.8, discounted by 0.8
//  4. otherwise 0
func MatchConfidence(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}

	for _, token := range conventionTokens {
		if matchesToken(na, token) && matchesToken(nb, token) {
			return conventionConfidence
		}
	}

	if sim := Similarity(na, nb); sim > fuzzyFloor {
		return sim * fuzzyDiscount
	}
	return 0
}

// matchesToken reports whether a normalized name reduces to the given
// convention token: either the bare token or a "_token" suffix.
func matchesToken(name, token string) bool {
	return name == token || strings.HasSuffix(name, "_"+token)
}

// matchTypeFor maps a confidence score to a match type.
func matchTypeFor(confidence float64) MatchType {
	if confidence > exactCutoff {
		return MatchExact
	}
	return MatchFuzzy
}

// Similarity computes normalized Levenshtein similarity between two
// strings: (maxLen - distance) / maxLen, in [0, 1].
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	return float64(maxLen-levenshtein(a, b)) / float64(maxLen)
}

// levenshtein calculates the Levenshtein distance between two strings.
func levenshtein(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	// Create distance matrix
	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}
