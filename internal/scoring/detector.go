package scoring

import "strings"

// DetectCategory classifies resume text by counting occurrences of each
// taxonomy keyword as a case-insensitive substring. The category with the
// strictly highest total wins; ties go to the earliest declared category.
// A text matching nothing classifies as general. Returns the winning
// category together with the per-category occurrence counts.
func DetectCategory(text string) (string, map[string]int) {
	lower := strings.ToLower(text)

	scores := make(map[string]int, len(detectionTaxonomy))
	best := CategoryGeneral
	bestScore := 0

	for _, def := range detectionTaxonomy {
		score := 0
		for _, kw := range def.Keywords {
			score += strings.Count(lower, kw)
		}
		scores[def.Name] = score
		if score > bestScore {
			best = def.Name
			bestScore = score
		}
	}

	return best, scores
}
