package scoring

import (
	"regexp"

	"atscreen/internal/types"
)

var strictEmailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}$`)

// checkContact scores contact completeness: name 40, email 40 with a 10
// point bonus for a strictly valid address, phone 20, capped at 100.
func checkContact(doc *types.ParsedDocument) types.CriterionResult {
	score := 0
	var feedback []string

	if doc.Name != "" {
		score += 40
		feedback = append(feedback, "✓ Name found: "+doc.Name)
	} else {
		feedback = append(feedback, "⚠ Name not clearly identified")
	}

	if doc.Email != "" {
		score += 40
		feedback = append(feedback, "✓ Email found: "+doc.Email)
		if strictEmailPattern.MatchString(doc.Email) {
			score += 10
			feedback = append(feedback, "✓ Email format is valid")
		} else {
			feedback = append(feedback, "⚠ Email format may be invalid")
		}
	} else {
		feedback = append(feedback, "⚠ Email address not found")
	}

	if doc.Phone != "" {
		score += 20
		feedback = append(feedback, "✓ Phone found: "+doc.Phone)
	} else {
		feedback = append(feedback, "⚠ Phone number not found")
	}

	return types.CriterionResult{Score: clamp(score, 0, 100), Feedback: feedback}
}
