package types

// ParsedDocument holds the fields extracted from a resume before scoring.
type ParsedDocument struct {
	RawText    string   `json:"rawText"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Education  []string `json:"education"`
	Experience []string `json:"experience"`
	Skills     []string `json:"skills"`
	WordCount  int      `json:"wordCount"`
}

// CriterionResult is the outcome of a single scoring criterion.
type CriterionResult struct {
	Score    int      `json:"score"`    // 0-100
	Feedback []string `json:"feedback"` // Per-check feedback lines
	Issues   []string `json:"issues,omitempty"`
}

// KeywordResult extends CriterionResult with the keyword breakdown.
type KeywordResult struct {
	Score           int      `json:"score"`
	Feedback        []string `json:"feedback"`
	FoundKeywords   []string `json:"foundKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
	MatchPercentage float64  `json:"matchPercentage"`
}

// CategoryDetection is the result of classifying resume text.
type CategoryDetection struct {
	Category string         `json:"category"`
	Scores   map[string]int `json:"scores"` // occurrence count per category
}

// AnalysisReport is the full per-criterion analysis of a resume.
type AnalysisReport struct {
	OverallScore    float64            `json:"overallScore"`
	Rating          string             `json:"rating"`
	Description     string             `json:"description"`
	JobCategory     string             `json:"jobCategory"`
	Format          CriterionResult    `json:"format"`
	Keywords        KeywordResult      `json:"keywords"`
	Readability     CriterionResult    `json:"readability"`
	Structure       CriterionResult    `json:"structure"`
	Contact         CriterionResult    `json:"contact"`
	Recommendations []string           `json:"recommendations"`
	CategoryScores  map[string]int     `json:"categoryScores,omitempty"`
	WeightedScores  map[string]float64 `json:"weightedScores,omitempty"`
}

// CompanyEvaluation is the screening verdict against company job requirements.
type CompanyEvaluation struct {
	FinalScore             float64 `json:"finalScore"`
	ATSCompatibility       float64 `json:"atsCompatibility"`
	KeywordRelevance       float64 `json:"keywordRelevance"`
	ExperienceLevel        float64 `json:"experienceLevel"`
	EducationBackground    float64 `json:"educationBackground"`
	SkillsMatch            float64 `json:"skillsMatch"`
	PassesCriteria         bool    `json:"passesCriteria"`
	RequiredKeywordsFound  int     `json:"requiredKeywordsFound"`
	RequiredKeywordsTotal  int     `json:"requiredKeywordsTotal"`
	PreferredKeywordsFound int     `json:"preferredKeywordsFound"`
	PreferredKeywordsTotal int     `json:"preferredKeywordsTotal"`
	MinimumATSScore        int     `json:"minimumAtsScore"`
}

// ScreeningReport bundles the analysis with the company evaluation for a
// single submission.
type ScreeningReport struct {
	SubmissionID     string            `json:"submissionId"`
	Category         string            `json:"category"`
	Analysis         *AnalysisReport   `json:"analysis"`
	Evaluation       CompanyEvaluation `json:"evaluation"`
	CandidateEmail   string            `json:"candidateEmail,omitempty"`
	NotificationSent bool              `json:"notificationSent"`
}
