package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"atscreen/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisReport", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisReport", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "CategoryDetection", &DetectionTextFormatter{})
	registry.RegisterFormatter("markdown", "CategoryDetection", &DetectionMarkdownFormatter{})
	registry.RegisterFormatter("text", "ScreeningReport", &ScreeningTextFormatter{})
	registry.RegisterFormatter("markdown", "ScreeningReport", &ScreeningMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case *types.AnalysisReport, types.AnalysisReport:
		return "AnalysisReport"
	case types.CategoryDetection:
		return "CategoryDetection"
	case *types.ScreeningReport, types.ScreeningReport:
		return "ScreeningReport"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func asAnalysisReport(data any) (*types.AnalysisReport, bool) {
	switch v := data.(type) {
	case *types.AnalysisReport:
		return v, true
	case types.AnalysisReport:
		return &v, true
	default:
		return nil, false
	}
}

func asScreeningReport(data any) (*types.ScreeningReport, bool) {
	switch v := data.(type) {
	case *types.ScreeningReport:
		return v, true
	case types.ScreeningReport:
		return &v, true
	default:
		return nil, false
	}
}

// AnalysisTextFormatter handles text formatting for analysis reports
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := asAnalysisReport(data)
	if !ok {
		return "", fmt.Errorf("expected AnalysisReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS COMPATIBILITY REPORT ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %.1f/100 (%s)\n", result.OverallScore, result.Rating))
	output.WriteString(result.Description)
	output.WriteString("\n\n")
	output.WriteString(fmt.Sprintf("Job Category: %s\n\n", result.JobCategory))

	writeCriterionText(&output, "FORMAT COMPATIBILITY", result.Format.Score, result.Format.Feedback)
	output.WriteString(fmt.Sprintf("=== KEYWORD MATCHING ===\nScore: %d/100\n", result.Keywords.Score))
	for _, line := range result.Keywords.Feedback {
		output.WriteString(fmt.Sprintf("  %s\n", line))
	}
	output.WriteString("\n")
	writeCriterionText(&output, "READABILITY", result.Readability.Score, result.Readability.Feedback)
	writeCriterionText(&output, "STRUCTURE & ORGANIZATION", result.Structure.Score, result.Structure.Feedback)
	writeCriterionText(&output, "CONTACT INFORMATION", result.Contact.Score, result.Contact.Feedback)

	if len(result.Recommendations) > 0 {
		output.WriteString("=== RECOMMENDATIONS ===\n")
		for i, rec := range result.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}

	return output.String(), nil
}

func writeCriterionText(output *strings.Builder, title string, score int, feedback []string) {
	output.WriteString(fmt.Sprintf("=== %s ===\nScore: %d/100\n", title, score))
	for _, line := range feedback {
		output.WriteString(fmt.Sprintf("  %s\n", line))
	}
	output.WriteString("\n")
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisReport"
}

// AnalysisMarkdownFormatter handles markdown formatting for analysis reports
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := asAnalysisReport(data)
	if !ok {
		return "", fmt.Errorf("expected AnalysisReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Compatibility Report\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %.1f/100 (%s)\n\n", result.OverallScore, result.Rating))
	output.WriteString(result.Description)
	output.WriteString("\n\n")
	output.WriteString(fmt.Sprintf("**Job Category:** %s\n\n", result.JobCategory))

	writeCriterionMarkdown(&output, "Format Compatibility", result.Format.Score, result.Format.Feedback)
	output.WriteString(fmt.Sprintf("## Keyword Matching\n\n**Score:** %d/100\n\n", result.Keywords.Score))
	for _, line := range result.Keywords.Feedback {
		output.WriteString(fmt.Sprintf("- %s\n", line))
	}
	output.WriteString("\n")
	writeCriterionMarkdown(&output, "Readability", result.Readability.Score, result.Readability.Feedback)
	writeCriterionMarkdown(&output, "Structure & Organization", result.Structure.Score, result.Structure.Feedback)
	writeCriterionMarkdown(&output, "Contact Information", result.Contact.Score, result.Contact.Feedback)

	if len(result.Recommendations) > 0 {
		output.WriteString("## Recommendations\n\n")
		for i, rec := range result.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}

	return output.String(), nil
}

func writeCriterionMarkdown(output *strings.Builder, title string, score int, feedback []string) {
	output.WriteString(fmt.Sprintf("## %s\n\n**Score:** %d/100\n\n", title, score))
	for _, line := range feedback {
		output.WriteString(fmt.Sprintf("- %s\n", line))
	}
	output.WriteString("\n")
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisReport"
}

// DetectionTextFormatter handles text formatting for category detection results
type DetectionTextFormatter struct{}

func (dtf *DetectionTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CategoryDetection)
	if !ok {
		return "", fmt.Errorf("expected CategoryDetection, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== CATEGORY DETECTION ===\n\n")
	output.WriteString(fmt.Sprintf("Detected Category: %s\n\n", result.Category))
	output.WriteString("Category Scores:\n")
	for category, score := range result.Scores {
		output.WriteString(fmt.Sprintf("  %-12s %d\n", category, score))
	}

	return output.String(), nil
}

func (dtf *DetectionTextFormatter) SupportedType() string {
	return "CategoryDetection"
}

// DetectionMarkdownFormatter handles markdown formatting for category detection results
type DetectionMarkdownFormatter struct{}

func (dmf *DetectionMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CategoryDetection)
	if !ok {
		return "", fmt.Errorf("expected CategoryDetection, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Category Detection\n\n")
	output.WriteString(fmt.Sprintf("**Detected Category:** %s\n\n", result.Category))
	output.WriteString("## Category Scores\n\n")
	output.WriteString("| Category | Score |\n|----------|-------|\n")
	for category, score := range result.Scores {
		output.WriteString(fmt.Sprintf("| %s | %d |\n", category, score))
	}

	return output.String(), nil
}

func (dmf *DetectionMarkdownFormatter) SupportedType() string {
	return "CategoryDetection"
}

// ScreeningTextFormatter handles text formatting for screening reports
type ScreeningTextFormatter struct{}

func (stf *ScreeningTextFormatter) Format(data any) (string, error) {
	result, ok := asScreeningReport(data)
	if !ok {
		return "", fmt.Errorf("expected ScreeningReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== COMPANY SCREENING REPORT ===\n\n")
	output.WriteString(fmt.Sprintf("Position Category: %s\n", result.Category))
	if result.SubmissionID != "" {
		output.WriteString(fmt.Sprintf("Submission ID: %s\n", result.SubmissionID))
	}
	output.WriteString("\n")

	ev := result.Evaluation
	decision := "REJECTED"
	if ev.PassesCriteria {
		decision = "PASSED"
	}
	output.WriteString(fmt.Sprintf("Decision: %s\n\n", decision))
	output.WriteString(fmt.Sprintf("Final Score:          %.1f/100\n", ev.FinalScore))
	output.WriteString(fmt.Sprintf("ATS Compatibility:    %.1f/100 (minimum %d)\n", ev.ATSCompatibility, ev.MinimumATSScore))
	output.WriteString(fmt.Sprintf("Keyword Relevance:    %.1f/100\n", ev.KeywordRelevance))
	output.WriteString(fmt.Sprintf("Experience Level:     %.1f/100\n", ev.ExperienceLevel))
	output.WriteString(fmt.Sprintf("Education Background: %.1f/100\n", ev.EducationBackground))
	output.WriteString(fmt.Sprintf("Skills Match:         %.1f/100\n\n", ev.SkillsMatch))
	output.WriteString(fmt.Sprintf("Required Keywords:  %d/%d found\n", ev.RequiredKeywordsFound, ev.RequiredKeywordsTotal))
	output.WriteString(fmt.Sprintf("Preferred Keywords: %d/%d found\n", ev.PreferredKeywordsFound, ev.PreferredKeywordsTotal))

	if result.Analysis != nil && len(result.Analysis.Recommendations) > 0 {
		output.WriteString("\n=== FEEDBACK ===\n")
		for i, rec := range result.Analysis.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}

	return output.String(), nil
}

func (stf *ScreeningTextFormatter) SupportedType() string {
	return "ScreeningReport"
}

// ScreeningMarkdownFormatter handles markdown formatting for screening reports
type ScreeningMarkdownFormatter struct{}

func (smf *ScreeningMarkdownFormatter) Format(data any) (string, error) {
	result, ok := asScreeningReport(data)
	if !ok {
		return "", fmt.Errorf("expected ScreeningReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Company Screening Report\n\n")
	output.WriteString(fmt.Sprintf("**Position Category:** %s\n\n", result.Category))

	ev := result.Evaluation
	decision := "Rejected"
	if ev.PassesCriteria {
		decision = "Passed"
	}
	output.WriteString(fmt.Sprintf("**Decision:** %s\n\n", decision))

	output.WriteString("## Score Breakdown\n\n")
	output.WriteString("| Component | Score |\n|-----------|-------|\n")
	output.WriteString(fmt.Sprintf("| Final Score | %.1f/100 |\n", ev.FinalScore))
	output.WriteString(fmt.Sprintf("| ATS Compatibility | %.1f/100 |\n", ev.ATSCompatibility))
	output.WriteString(fmt.Sprintf("| Keyword Relevance | %.1f/100 |\n", ev.KeywordRelevance))
	output.WriteString(fmt.Sprintf("| Experience Level | %.1f/100 |\n", ev.ExperienceLevel))
	output.WriteString(fmt.Sprintf("| Education Background | %.1f/100 |\n", ev.EducationBackground))
	output.WriteString(fmt.Sprintf("| Skills Match | %.1f/100 |\n\n", ev.SkillsMatch))

	output.WriteString(fmt.Sprintf("**Required Keywords:** %d/%d found\n\n", ev.RequiredKeywordsFound, ev.RequiredKeywordsTotal))
	output.WriteString(fmt.Sprintf("**Preferred Keywords:** %d/%d found\n\n", ev.PreferredKeywordsFound, ev.PreferredKeywordsTotal))

	if result.Analysis != nil && len(result.Analysis.Recommendations) > 0 {
		output.WriteString("## Feedback\n\n")
		for i, rec := range result.Analysis.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}

	return output.String(), nil
}

func (smf *ScreeningMarkdownFormatter) SupportedType() string {
	return "ScreeningReport"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
