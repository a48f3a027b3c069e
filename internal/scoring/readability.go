package scoring

import (
	"fmt"
	"regexp"
	"strings"

	"atscreen/internal/types"
)

var (
	alnumPattern       = regexp.MustCompile(`[a-zA-Z0-9\s]`)
	capitalizedPattern = regexp.MustCompile(`\b[A-Z][a-z]+`)
)

// checkReadability scores text quality: word-count band, average sentence
// length, bullet usage, special-character density and capitalization.
// Additive bonuses, capped at 100.
func checkReadability(doc *types.ParsedDocument) types.CriterionResult {
	text := doc.RawText
	if text == "" {
		return types.CriterionResult{Score: 0, Feedback: []string{"No text found"}}
	}

	score := 0
	var feedback []string

	wordCount := doc.WordCount
	sentenceCount := 0
	for _, s := range strings.Split(text, ".") {
		if strings.TrimSpace(s) != "" {
			sentenceCount++
		}
	}

	switch {
	case wordCount >= 300 && wordCount <= 800:
		score += 30
		feedback = append(feedback, fmt.Sprintf("✓ Good word count: %d words", wordCount))
	case wordCount < 300:
		score += 15
		feedback = append(feedback, fmt.Sprintf("⚠ Word count low: %d words (consider adding more detail)", wordCount))
	default:
		score += 20
		feedback = append(feedback, fmt.Sprintf("⚠ Word count high: %d words (consider condensing)", wordCount))
	}

	if sentenceCount > 0 {
		avgLen := float64(wordCount) / float64(sentenceCount)
		if avgLen >= 10 && avgLen <= 20 {
			score += 25
			feedback = append(feedback, "✓ Good average sentence length")
		} else {
			score += 15
			feedback = append(feedback, "⚠ Consider varying sentence length for better readability")
		}
	}

	if strings.ContainsAny(text, "•·-*") {
		score += 20
		feedback = append(feedback, "✓ Uses bullet points effectively")
	} else {
		score += 5
		feedback = append(feedback, "⚠ Consider using bullet points for better organization")
	}

	// Stripping letters, digits and whitespace leaves only special characters.
	specialRatio := float64(len(alnumPattern.ReplaceAllString(text, ""))) / float64(len(text))
	if specialRatio < 0.1 {
		score += 15
		feedback = append(feedback, "✓ Clean text with minimal special characters")
	} else {
		score += 5
		feedback = append(feedback, "⚠ High ratio of special characters may cause parsing issues")
	}

	capitalized := len(capitalizedPattern.FindAllString(text, -1))
	totalWords := len(strings.Fields(text))
	if totalWords > 0 && float64(capitalized)/float64(totalWords) > 0.1 {
		score += 10
		feedback = append(feedback, "✓ Proper capitalization usage")
	}

	return types.CriterionResult{Score: clamp(score, 0, 100), Feedback: feedback}
}
