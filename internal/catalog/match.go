package catalog

import (
	"math"
	"strings"

	"lickees/internal/domain"
)

// DefaultMatchThreshold is the minimum similarity percent for a fuzzy name
// match during stock imports.
const DefaultMatchThreshold = 85.0

// Resolve maps a free-typed name (a spreadsheet cell, say) to a catalog item.
// Names are compared after normalisation; when no exact match exists the
// closest item scoring at least threshold percent wins, ties going to the
// smaller edit distance and then to catalog order.
func Resolve(raw string, threshold float64) (domain.CatalogItem, bool) {
	target := normalizeName(raw)
	if target == "" {
		return domain.CatalogItem{}, false
	}
	for _, item := range flavours {
		if normalizeName(item.Name) == target {
			return item, true
		}
	}
	if threshold >= 100 {
		return domain.CatalogItem{}, false
	}

	targetRunes := []rune(target)
	bestScore := -1.0
	bestDistance := math.MaxInt
	var best domain.CatalogItem
	for _, item := range flavours {
		candidate := []rune(normalizeName(item.Name))
		distance := editDistance(targetRunes, candidate)
		score := 100 * (1 - float64(distance)/float64(max(len(targetRunes), len(candidate))))
		if score > bestScore || (score == bestScore && distance < bestDistance) {
			bestScore = score
			bestDistance = distance
			best = item
		}
	}
	return best, bestScore >= threshold
}

func normalizeName(raw string) string {
	value := strings.TrimSpace(strings.ToLower(raw))
	if value == "" {
		return ""
	}
	replacer := strings.NewReplacer(
		"\ufeff", " ",
		"\u00a0", " ",
		",", " ",
		":", " ",
		";", " ",
		"/", " ",
		"(", " ",
		")", " ",
		"-", " ",
		"_", " ",
		"&", " and ",
	)
	value = replacer.Replace(value)
	return strings.Join(strings.Fields(value), " ")
}

// editDistance is the Levenshtein distance between two names.
func editDistance(a, b []rune) int {
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(a); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			next := min(row[j]+1, row[j-1]+1, diag+cost)
			diag = row[j]
			row[j] = next
		}
	}
	return row[len(b)]
}
