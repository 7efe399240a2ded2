package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// SuggestSeed returns the closest seed name to a mistyped input
func (c *Catalog) SuggestSeed(input string) (string, bool) {
	names := make([]string, len(c.seeds))
	for i, s := range c.seeds {
		names[i] = s.Name
	}
	return closest(input, names)
}

// SuggestGear returns the closest gear name to a mistyped input
func (c *Catalog) SuggestGear(input string) (string, bool) {
	names := make([]string, len(c.gear))
	for i, g := range c.gear {
		names[i] = g.Name
	}
	return closest(input, names)
}

// SuggestFruit returns the closest fruit item name to a mistyped input
func (c *Catalog) SuggestFruit(input string) (string, bool) {
	names := make([]string, len(c.seeds))
	for i, s := range c.seeds {
		names[i] = s.FruitName
	}
	return closest(input, names)
}

// closest picks the candidate with the smallest edit distance, ignoring case.
// Ties keep catalog order.
func closest(input string, candidates []string) (string, bool) {
	token := strings.ToLower(strings.TrimSpace(input))
	if token == "" {
		return "", false
	}

	best := ""
	bestDist := -1
	for _, cand := range candidates {
		lc := strings.ToLower(cand)
		dist := levenshtein.ComputeDistance(token, lc)
		if dist > levenshteinLimit(len(lc)) {
			continue
		}
		if bestDist == -1 || dist < bestDist {
			best = cand
			bestDist = dist
		}
	}
	return best, bestDist != -1
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
