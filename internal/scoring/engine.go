package scoring

import (
	"strings"

	"atscreen/internal/types"
)

// minAnalyzableLength is the shortest trimmed text worth scoring. Anything
// below it produces a zero-score report, not an error.
const minAnalyzableLength = 50

// Engine runs the full scoring pipeline. It is stateless after
// construction; concurrent use is safe because weights, thresholds and the
// keyword taxonomy are read-only.
type Engine struct {
	weights    Weights
	thresholds Thresholds
	policy     ScreeningPolicy
}

// NewEngine validates the configuration and returns a ready engine. Weight
// sets that do not sum to 100 are rejected here rather than skewing every
// subsequent score.
func NewEngine(weights Weights, thresholds Thresholds, policy ScreeningPolicy) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Engine{weights: weights, thresholds: thresholds, policy: policy}, nil
}

// NewDefaultEngine returns an engine with the standard weights,
// thresholds and screening policy.
func NewDefaultEngine() *Engine {
	eng, err := NewEngine(DefaultWeights(), DefaultThresholds(), DefaultScreeningPolicy())
	if err != nil {
		panic(err) // defaults are compile-time constants that sum to 100
	}
	return eng
}

// Analyze runs every criterion scorer over the document and aggregates the
// weighted overall score, rating and recommendations. When no category is
// given it is auto-detected from the text. Unknown categories fall back to
// the general keyword set; they are never an error.
func (e *Engine) Analyze(doc *types.ParsedDocument, category string) *types.AnalysisReport {
	if tooShort(doc.RawText) {
		return e.shortTextReport(category)
	}

	var categoryScores map[string]int
	if category == "" {
		category, categoryScores = DetectCategory(doc.RawText)
	}

	format := checkFormat(doc)
	keywords := checkKeywords(doc, category)
	readability := checkReadability(doc)
	structure, sections := checkStructure(doc)
	contact := checkContact(doc)

	overall, rating, description := overallScore(e.weights, e.thresholds,
		format.Score, keywords.Score, readability.Score, structure.Score, contact.Score)

	report := &types.AnalysisReport{
		OverallScore:   overall,
		Rating:         rating,
		Description:    description,
		JobCategory:    category,
		Format:         format,
		Keywords:       keywords,
		Readability:    readability,
		Structure:      structure,
		Contact:        contact,
		CategoryScores: categoryScores,
		WeightedScores: map[string]float64{
			"format":      float64(format.Score) * float64(e.weights.Format) / 100,
			"keywords":    float64(keywords.Score) * float64(e.weights.Keywords) / 100,
			"readability": float64(readability.Score) * float64(e.weights.Readability) / 100,
			"structure":   float64(structure.Score) * float64(e.weights.Structure) / 100,
			"contact":     float64(contact.Score) * float64(e.weights.Contact) / 100,
		},
	}
	report.Recommendations = buildRecommendations(report, sections)

	return report
}

// Screen evaluates the company hiring decision using this engine's policy.
func (e *Engine) Screen(atsScore float64, foundKeywords []string, resumeText, category string) types.CompanyEvaluation {
	return Screen(e.policy, atsScore, foundKeywords, resumeText, category)
}

// QuickScore is the single-number ATS check: keyword coverage of the flat
// keyword list minus formatting and length penalties, clamped to [0, 100].
// Text below the minimum analyzable length scores zero.
func (e *Engine) QuickScore(text string) int {
	if tooShort(text) {
		return 0
	}

	lower := strings.ToLower(text)

	matched := 0
	for _, kw := range quickKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched++
		}
	}
	score := matched * 100 / len(quickKeywords)

	penalty := 0
	if strings.Contains(lower, "table") {
		penalty += 10
	}
	if strings.Contains(lower, "graphic") || strings.Contains(lower, "image") {
		penalty += 10
	}
	if strings.Contains(lower, "header") || strings.Contains(lower, "footer") {
		penalty += 5
	}

	wordCount := len(strings.Fields(text))
	if wordCount < 100 {
		penalty += 20
	} else if wordCount > 1000 {
		penalty += 10
	}

	return clamp(score-penalty, 0, 100)
}

// Weights returns the configured criterion weights.
func (e *Engine) Weights() Weights { return e.weights }

// Policy returns the configured screening policy.
func (e *Engine) Policy() ScreeningPolicy { return e.policy }

func tooShort(text string) bool {
	return len(strings.TrimSpace(text)) < minAnalyzableLength
}

// shortTextReport is the fixed zero result for texts too short to score.
func (e *Engine) shortTextReport(category string) *types.AnalysisReport {
	if category == "" {
		category = CategoryGeneral
	}
	return &types.AnalysisReport{
		OverallScore:    0,
		Rating:          RatingVeryPoor,
		Description:     ratingDescriptions[RatingVeryPoor],
		JobCategory:     category,
		Format:          types.CriterionResult{Score: 0},
		Keywords:        types.KeywordResult{Score: 0, MissingKeywords: head(JobKeywordsFor(category), 5)},
		Readability:     types.CriterionResult{Score: 0},
		Structure:       types.CriterionResult{Score: 0},
		Contact:         types.CriterionResult{Score: 0},
		Recommendations: []string{"Resume text is too short or empty"},
	}
}
