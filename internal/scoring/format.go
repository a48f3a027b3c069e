package scoring

import (
	"regexp"
	"strings"

	"atscreen/internal/types"
)

var (
	imagePattern = regexp.MustCompile(`(image|img|picture|photo|graphic)`)
	tablePattern = regexp.MustCompile(`\|.*\|`)
	wordPattern  = regexp.MustCompile(`[^\w\s]`)
)

// checkFormat scores format compatibility. It starts from a baseline of 50,
// subtracts penalties for elements automated parsers choke on and adds
// bonuses for cleanly identified fields and sections, clamped to [0, 100].
func checkFormat(doc *types.ParsedDocument) types.CriterionResult {
	score := 0
	var feedback, issues []string

	text := doc.RawText
	lower := strings.ToLower(text)

	if imagePattern.MatchString(lower) {
		issues = append(issues, "Possible images detected - ATS may not process these")
		score -= 20
	}

	if strings.Contains(text, "\t") || tablePattern.MatchString(text) {
		issues = append(issues, "Possible tables detected - may cause parsing issues")
		score -= 15
	}

	lines := strings.Split(text, "\n")
	irregular := 0
	for _, line := range lines {
		if len(strings.Fields(line)) > 20 {
			irregular++
		}
	}
	if float64(irregular) > float64(len(lines))*0.3 {
		issues = append(issues, "Irregular text spacing detected - may indicate complex formatting")
		score -= 10
	}

	if len(text) > 0 {
		cleanRatio := float64(len(wordPattern.ReplaceAllString(text, ""))) / float64(len(text))
		if cleanRatio < 0.7 {
			issues = append(issues, "High number of special characters - may indicate formatting issues")
			score -= 10
		}
	}

	if doc.Name != "" {
		score += 15
		feedback = append(feedback, "✓ Clear name identification")
	}
	if doc.Email != "" {
		score += 15
		feedback = append(feedback, "✓ Email address found")
	}
	if doc.Phone != "" {
		score += 10
		feedback = append(feedback, "✓ Phone number found")
	}
	if len(doc.Education) > 0 {
		score += 10
		feedback = append(feedback, "✓ Education section identified")
	}
	if len(doc.Experience) > 0 {
		score += 15
		feedback = append(feedback, "✓ Experience section identified")
	}
	if len(doc.Skills) > 0 {
		score += 10
		feedback = append(feedback, "✓ Skills section identified")
	}

	score = clamp(score+50, 0, 100)

	for _, issue := range issues {
		feedback = append(feedback, "⚠ "+issue)
	}

	return types.CriterionResult{Score: score, Feedback: feedback, Issues: issues}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
