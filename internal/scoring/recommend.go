package scoring

import (
	"strings"

	"atscreen/internal/types"
)

const maxRecommendations = 10

// buildRecommendations turns criterion results into actionable advice.
// Rules fire in a fixed order so output is deterministic; the overall
// banner is prepended last and the list is capped at ten entries.
func buildRecommendations(report *types.AnalysisReport, sections sectionPresence) []string {
	var recs []string

	if report.Format.Score < 70 {
		recs = append(recs,
			"Use a simple, clean format without tables, text boxes, or images",
			"Stick to standard fonts like Arial, Calibri, or Times New Roman",
			"Avoid headers and footers that may not be parsed correctly",
		)
	}

	if report.Keywords.Score < 60 {
		if len(report.Keywords.MissingKeywords) > 0 {
			recs = append(recs, "Include relevant keywords: "+
				strings.Join(head(report.Keywords.MissingKeywords, 5), ", "))
		}
		recs = append(recs, "Tailor your resume to include industry-specific terminology")
	}

	if report.Readability.Score < 70 {
		recs = append(recs,
			"Use bullet points to organize information clearly",
			"Keep sentences concise and easy to read",
			"Aim for 300-800 words total",
		)
	}

	if report.Structure.Score < 70 {
		if !sections.Contact {
			recs = append(recs, "Ensure contact information is clearly visible at the top")
		}
		if !sections.Experience {
			recs = append(recs, "Include a detailed work experience section")
		}
		if !sections.Skills {
			recs = append(recs, "Add a skills section with relevant technical and soft skills")
		}
	}

	if report.Contact.Score < 70 {
		recs = append(recs,
			"Include your full name, email, and phone number",
			"Use a professional email address",
			"Ensure contact information is at the top of the resume",
		)
	}

	if report.OverallScore < 60 {
		recs = append([]string{"Consider a major revision focusing on ATS compatibility"}, recs...)
	} else if report.OverallScore < 80 {
		recs = append([]string{"Your resume is good but could benefit from minor improvements"}, recs...)
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
