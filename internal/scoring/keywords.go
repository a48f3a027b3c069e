package scoring

import (
	"fmt"
	"strings"

	"atscreen/internal/types"
)

// checkKeywords matches the category keyword set against the resume text
// using case-insensitive substring search. The score is the match
// percentage with a 1.2 multiplier, capped at 100, so a partial match can
// still reach full marks.
func checkKeywords(doc *types.ParsedDocument, category string) types.KeywordResult {
	lower := strings.ToLower(doc.RawText)
	keywords := JobKeywordsFor(category)

	var found, missing []string
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			found = append(found, strings.ToLower(kw))
		} else {
			missing = append(missing, strings.ToLower(kw))
		}
	}

	matchPct := 0.0
	if len(keywords) > 0 {
		matchPct = float64(len(found)) / float64(len(keywords)) * 100
	}
	score := int(min(100, matchPct*1.2))

	feedback := []string{
		fmt.Sprintf("✓ Found %d out of %d relevant keywords", len(found), len(keywords)),
		fmt.Sprintf("Match rate: %.1f%%", matchPct),
	}
	if len(found) > 0 {
		feedback = append(feedback, "✓ Matched keywords: "+strings.Join(head(found, 10), ", "))
	}
	if len(missing) > 0 && len(missing) <= 10 {
		feedback = append(feedback, "⚠ Consider adding: "+strings.Join(head(missing, 5), ", "))
	}

	return types.KeywordResult{
		Score:           score,
		Feedback:        feedback,
		FoundKeywords:   found,
		MissingKeywords: missing,
		MatchPercentage: matchPct,
	}
}

// head returns at most n leading elements of s without copying.
func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
