package formatters

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atscreen/internal/types"
)

func sampleAnalysis() *types.AnalysisReport {
	return &types.AnalysisReport{
		OverallScore: 72.5,
		Rating:       "Good",
		Description:  "Your resume is well-optimized for ATS systems with room for improvement.",
		JobCategory:  "software_engineer",
		Format:       types.CriterionResult{Score: 80, Feedback: []string{"Clean single-column layout"}},
		Keywords: types.KeywordResult{
			Score:           65,
			Feedback:        []string{"Found 9 of 14 relevant keywords"},
			FoundKeywords:   []string{"python", "docker"},
			MissingKeywords: []string{"kubernetes"},
			MatchPercentage: 64.3,
		},
		Readability:     types.CriterionResult{Score: 70, Feedback: []string{"Good use of bullet points"}},
		Structure:       types.CriterionResult{Score: 75, Feedback: []string{"All major sections present"}},
		Contact:         types.CriterionResult{Score: 90, Feedback: []string{"Complete contact information"}},
		Recommendations: []string{"Add missing keywords", "Shorten long sentences"},
	}
}

func sampleScreening() *types.ScreeningReport {
	return &types.ScreeningReport{
		SubmissionID: "abc-123",
		Category:     "software_engineer",
		Analysis:     sampleAnalysis(),
		Evaluation: types.CompanyEvaluation{
			FinalScore:             68.6,
			ATSCompatibility:       80,
			KeywordRelevance:       77.5,
			ExperienceLevel:        50,
			EducationBackground:    50,
			SkillsMatch:            77.5,
			PassesCriteria:         true,
			RequiredKeywordsFound:  10,
			RequiredKeywordsTotal:  10,
			PreferredKeywordsFound: 2,
			PreferredKeywordsTotal: 8,
			MinimumATSScore:        75,
		},
	}
}

func TestJSONFormatterHandlesAnyType(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(sampleAnalysis(), "json")
	require.NoError(t, err)

	var decoded types.AnalysisReport
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 72.5, decoded.OverallScore)
	assert.Equal(t, "software_engineer", decoded.JobCategory)

	// Types without a dedicated formatter fall back to JSON's "any" slot.
	out, err = registry.Format(map[string]int{"a": 1}, "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, out)
}

func TestAnalysisTextFormat(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(sampleAnalysis(), "text")
	require.NoError(t, err)

	assert.Contains(t, out, "=== ATS COMPATIBILITY REPORT ===")
	assert.Contains(t, out, "Overall Score: 72.5/100 (Good)")
	assert.Contains(t, out, "Job Category: software_engineer")
	assert.Contains(t, out, "=== KEYWORD MATCHING ===\nScore: 65/100")
	assert.Contains(t, out, "=== RECOMMENDATIONS ===")
	assert.Contains(t, out, "1. Add missing keywords")
	assert.Contains(t, out, "2. Shorten long sentences")
}

func TestAnalysisMarkdownFormat(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(sampleAnalysis(), "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "# ATS Compatibility Report")
	assert.Contains(t, out, "**Overall Score:** 72.5/100 (Good)")
	assert.Contains(t, out, "## Keyword Matching")
	assert.Contains(t, out, "## Recommendations")
}

func TestAnalysisFormatAcceptsValueAndPointer(t *testing.T) {
	registry := NewFormatterRegistry()

	fromPointer, err := registry.Format(sampleAnalysis(), "text")
	require.NoError(t, err)
	fromValue, err := registry.Format(*sampleAnalysis(), "text")
	require.NoError(t, err)
	assert.Equal(t, fromPointer, fromValue)
}

func TestDetectionFormats(t *testing.T) {
	registry := NewFormatterRegistry()
	detection := types.CategoryDetection{
		Category: "tech",
		Scores:   map[string]int{"tech": 5, "finance": 1},
	}

	text, err := registry.Format(detection, "text")
	require.NoError(t, err)
	assert.Contains(t, text, "Detected Category: tech")
	assert.Contains(t, text, "tech")
	assert.Contains(t, text, "finance")

	md, err := registry.Format(detection, "markdown")
	require.NoError(t, err)
	assert.Contains(t, md, "**Detected Category:** tech")
	assert.Contains(t, md, "| Category | Score |")
	assert.Contains(t, md, "| tech | 5 |")
}

func TestScreeningFormats(t *testing.T) {
	registry := NewFormatterRegistry()
	report := sampleScreening()

	text, err := registry.Format(report, "text")
	require.NoError(t, err)
	assert.Contains(t, text, "=== COMPANY SCREENING REPORT ===")
	assert.Contains(t, text, "Submission ID: abc-123")
	assert.Contains(t, text, "Decision: PASSED")
	assert.Contains(t, text, "Final Score:          68.6/100")
	assert.Contains(t, text, "ATS Compatibility:    80.0/100 (minimum 75)")
	assert.Contains(t, text, "Required Keywords:  10/10 found")
	assert.Contains(t, text, "=== FEEDBACK ===")

	report.Evaluation.PassesCriteria = false
	md, err := registry.Format(report, "markdown")
	require.NoError(t, err)
	assert.Contains(t, md, "# Company Screening Report")
	assert.Contains(t, md, "**Decision:** Rejected")
	assert.Contains(t, md, "| Final Score | 68.6/100 |")
	assert.Contains(t, md, "**Preferred Keywords:** 2/8 found")
}

func TestFormatUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()

	_, err := registry.Format(sampleAnalysis(), "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no formatter found")
}

func TestFormatterTypeMismatch(t *testing.T) {
	// Wiring a dedicated formatter under the wrong type surfaces the
	// type check inside the formatter itself.
	var f AnalysisTextFormatter
	_, err := f.Format(types.CategoryDetection{Category: "tech"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected AnalysisReport")
}

func TestGetSupportedFormats(t *testing.T) {
	registry := NewFormatterRegistry()
	formats := registry.GetSupportedFormats()
	assert.ElementsMatch(t, []string{"json", "text", "markdown"}, formats)
}
