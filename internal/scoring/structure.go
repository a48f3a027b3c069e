package scoring

import "atscreen/internal/types"

// sectionPresence records which essential resume sections were found.
type sectionPresence struct {
	Contact    bool
	Experience bool
	Education  bool
	Skills     bool
}

// checkStructure scores the presence of the four essential sections with
// fixed weights: contact 25, experience 30, education 25, skills 20.
func checkStructure(doc *types.ParsedDocument) (types.CriterionResult, sectionPresence) {
	sections := sectionPresence{
		Contact:    doc.Email != "" || doc.Phone != "",
		Experience: len(doc.Experience) > 0,
		Education:  len(doc.Education) > 0,
		Skills:     len(doc.Skills) > 0,
	}

	score := 0
	var feedback []string

	if sections.Contact {
		score += 25
		feedback = append(feedback, "✓ Contact information present")
	} else {
		feedback = append(feedback, "⚠ Missing contact information")
	}
	if sections.Experience {
		score += 30
		feedback = append(feedback, "✓ Experience section present")
	} else {
		feedback = append(feedback, "⚠ Missing experience section")
	}
	if sections.Education {
		score += 25
		feedback = append(feedback, "✓ Education section present")
	} else {
		feedback = append(feedback, "⚠ Missing education section")
	}
	if sections.Skills {
		score += 20
		feedback = append(feedback, "✓ Skills section present")
	} else {
		feedback = append(feedback, "⚠ Missing skills section")
	}

	return types.CriterionResult{Score: clamp(score, 0, 100), Feedback: feedback}, sections
}
