package scoring

import (
	"math"
	"strings"

	"atscreen/internal/errors"
	"atscreen/internal/types"
)

// JobRequirements describes what a company demands for a job category.
type JobRequirements struct {
	RequiredKeywords  []string `mapstructure:"requiredKeywords"`
	PreferredKeywords []string `mapstructure:"preferredKeywords"`
	MinimumExperience int      `mapstructure:"minimumExperience"`
	RequiredEducation []string `mapstructure:"requiredEducation"`
	MinimumATSScore   int      `mapstructure:"minimumAtsScore"`
}

// ScreeningPolicy holds the weights and pass thresholds for the company
// screening decision. Weights must sum to 100.
type ScreeningPolicy struct {
	ATSWeight        int `mapstructure:"atsWeight"`
	KeywordWeight    int `mapstructure:"keywordWeight"`
	ExperienceWeight int `mapstructure:"experienceWeight"`
	EducationWeight  int `mapstructure:"educationWeight"`
	SkillsWeight     int `mapstructure:"skillsWeight"`

	MinKeywordRelevance float64 `mapstructure:"minKeywordRelevance"`
	MinFinalScore       float64 `mapstructure:"minFinalScore"`
}

// DefaultScreeningPolicy returns the standard screening weights and
// thresholds.
func DefaultScreeningPolicy() ScreeningPolicy {
	return ScreeningPolicy{
		ATSWeight:           30,
		KeywordWeight:       25,
		ExperienceWeight:    20,
		EducationWeight:     15,
		SkillsWeight:        10,
		MinKeywordRelevance: 40,
		MinFinalScore:       60,
	}
}

func (p ScreeningPolicy) Validate() error {
	sum := p.ATSWeight + p.KeywordWeight + p.ExperienceWeight + p.EducationWeight + p.SkillsWeight
	if sum != 100 {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"screening weights must sum to 100", nil).
			WithContext("sum", sum)
	}
	return nil
}

// defaultRequirements applies to categories without a dedicated entry.
var defaultRequirements = JobRequirements{
	RequiredKeywords:  []string{"experience", "skills", "communication"},
	PreferredKeywords: []string{"leadership", "team", "project", "management"},
	MinimumExperience: 0,
	RequiredEducation: nil,
	MinimumATSScore:   60,
}

// jobRequirements holds per-category company hiring requirements.
var jobRequirements = map[string]JobRequirements{
	"software_engineer": {
		RequiredKeywords: []string{
			"python", "java", "javascript", "sql", "git",
			"api", "database", "testing", "algorithms", "agile",
		},
		PreferredKeywords: []string{
			"react", "node.js", "docker", "aws", "cloud",
			"scrum", "machine learning", "data structures",
		},
		MinimumExperience: 2,
		RequiredEducation: []string{"bachelor", "computer science", "engineering"},
		MinimumATSScore:   75,
	},
	"data_scientist": {
		RequiredKeywords: []string{
			"python", "sql", "machine learning", "statistics", "data analysis",
		},
		PreferredKeywords: []string{
			"deep learning", "tensorflow", "pytorch", "pandas", "numpy",
			"data visualization", "big data", "spark",
		},
		MinimumExperience: 2,
		RequiredEducation: []string{"bachelor", "statistics", "mathematics", "computer science"},
		MinimumATSScore:   75,
	},
	"marketing": {
		RequiredKeywords: []string{
			"digital marketing", "seo", "social media", "campaign management",
		},
		PreferredKeywords: []string{
			"google analytics", "content marketing", "email marketing",
			"brand management", "conversion optimization",
		},
		MinimumExperience: 1,
		RequiredEducation: []string{"bachelor", "marketing", "business"},
		MinimumATSScore:   65,
	},
	"project_manager": {
		RequiredKeywords: []string{
			"project management", "planning", "communication", "stakeholder management",
		},
		PreferredKeywords: []string{
			"agile", "scrum", "pmp", "risk management", "budget management",
		},
		MinimumExperience: 3,
		RequiredEducation: []string{"bachelor", "management", "business"},
		MinimumATSScore:   70,
	},
}

// RequirementsFor returns the hiring requirements for a job category,
// falling back to the default set for unknown categories. The category is
// matched case-insensitively.
func RequirementsFor(category string) JobRequirements {
	if req, ok := jobRequirements[strings.ToLower(category)]; ok {
		return req
	}
	return defaultRequirements
}

// neutralSubScore stands in for sub-scores the engine does not derive from
// text. Years of experience and degree level are not parsed, so both the
// experience and education components stay at this neutral midpoint.
const neutralSubScore = 50.0

// Screen evaluates a candidate against the company requirements for a job
// category. keyword_relevance weighs required matches at 70% and preferred
// matches at 30%; an empty keyword list contributes zero for its term.
// skills_match mirrors keyword_relevance since no separate skill scoring
// exists. The candidate passes only when the ATS score meets the category
// minimum, keyword relevance meets the policy floor and the weighted final
// score meets the policy floor.
func Screen(policy ScreeningPolicy, atsScore float64, foundKeywords []string, resumeText, category string) types.CompanyEvaluation {
	req := RequirementsFor(category)
	lower := strings.ToLower(resumeText)

	reqFound := countMatches(lower, foundKeywords, req.RequiredKeywords)
	prefFound := countMatches(lower, foundKeywords, req.PreferredKeywords)

	relevance := 0.0
	if len(req.RequiredKeywords) > 0 {
		relevance += float64(reqFound) / float64(len(req.RequiredKeywords)) * 70
	}
	if len(req.PreferredKeywords) > 0 {
		relevance += float64(prefFound) / float64(len(req.PreferredKeywords)) * 30
	}

	experience := neutralSubScore
	education := neutralSubScore
	skills := relevance

	final := atsScore*float64(policy.ATSWeight)/100 +
		relevance*float64(policy.KeywordWeight)/100 +
		experience*float64(policy.ExperienceWeight)/100 +
		education*float64(policy.EducationWeight)/100 +
		skills*float64(policy.SkillsWeight)/100
	final = math.Round(final*10) / 10

	passes := atsScore >= float64(req.MinimumATSScore) &&
		relevance >= policy.MinKeywordRelevance &&
		final >= policy.MinFinalScore

	return types.CompanyEvaluation{
		FinalScore:             final,
		ATSCompatibility:       atsScore,
		KeywordRelevance:       relevance,
		ExperienceLevel:        experience,
		EducationBackground:    education,
		SkillsMatch:            skills,
		PassesCriteria:         passes,
		RequiredKeywordsFound:  reqFound,
		RequiredKeywordsTotal:  len(req.RequiredKeywords),
		PreferredKeywordsFound: prefFound,
		PreferredKeywordsTotal: len(req.PreferredKeywords),
		MinimumATSScore:        req.MinimumATSScore,
	}
}

// countMatches counts requirement keywords present either in the
// already-found keyword list or anywhere in the resume text.
func countMatches(lowerText string, foundKeywords, required []string) int {
	found := make(map[string]bool, len(foundKeywords))
	for _, kw := range foundKeywords {
		found[strings.ToLower(kw)] = true
	}

	count := 0
	for _, kw := range required {
		kwLower := strings.ToLower(kw)
		if found[kwLower] || strings.Contains(lowerText, kwLower) {
			count++
		}
	}
	return count
}
