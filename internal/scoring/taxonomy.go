package scoring

import "strings"

// CategoryGeneral is the fallback category when no taxonomy keywords match
// and when an unknown category name is supplied.
const CategoryGeneral = "general"

// categoryDef binds a detection category to its keyword list. Declaration
// order matters: ties during detection resolve to the earliest entry.
type categoryDef struct {
	Name     string
	Keywords []string
}

// detectionTaxonomy drives auto-detection. Keywords are matched as
// case-insensitive substrings and every occurrence counts.
var detectionTaxonomy = []categoryDef{
	{
		Name: "education",
		Keywords: []string{
			"curriculum", "classroom", "student", "teaching", "lesson", "teacher", "school",
			"syllabus", "assessment", "pedagogy", "learning", "education", "instructor",
			"tutoring", "academic", "grade", "course", "training", "workshop",
		},
	},
	{
		Name: "art",
		Keywords: []string{
			"creative", "design", "visual", "portfolio", "exhibition", "art", "gallery",
			"photography", "painting", "graphic", "illustration", "artistic", "aesthetic",
			"drawing", "sculpture", "media", "digital art", "adobe", "photoshop",
		},
	},
	{
		Name: "tech",
		Keywords: []string{
			"python", "sql", "api", "javascript", "programming", "machine learning",
			"java", "react", "node.js", "git", "software", "developer", "coding",
			"database", "algorithm", "framework", "backend", "frontend", "devops",
		},
	},
	{
		Name: "healthcare",
		Keywords: []string{
			"patient", "clinical", "medical", "treatment", "health", "nurse", "doctor",
			"hospital", "therapy", "diagnosis", "care", "pharmaceutical", "surgery",
			"healthcare", "medical records", "patient care",
		},
	},
	{
		Name: "finance",
		Keywords: []string{
			"financial", "accounting", "budget", "analysis", "audit", "investment",
			"tax", "banking", "finance", "economics", "portfolio", "risk", "trading",
			"financial planning", "excel", "financial modeling",
		},
	},
	{
		Name: "marketing",
		Keywords: []string{
			"marketing", "advertising", "branding", "campaign", "social media", "seo",
			"content", "digital marketing", "analytics", "conversion", "lead generation",
		},
	},
	{
		Name: "sales",
		Keywords: []string{
			"sales", "client", "customer", "revenue", "negotiation", "pipeline",
			"crm", "quota", "relationship", "business development",
		},
	},
}

// jobKeywords holds the keyword sets used for keyword-matching scoring,
// keyed by job category.
var jobKeywords = map[string][]string{
	"software_engineer": {
		"python", "java", "javascript", "react", "node.js", "sql", "git",
		"api", "database", "agile", "scrum", "docker", "aws", "cloud",
		"machine learning", "data structures", "algorithms", "testing",
	},
	"data_scientist": {
		"python", "r", "sql", "machine learning", "deep learning", "tensorflow",
		"pytorch", "pandas", "numpy", "matplotlib", "scikit-learn", "statistics",
		"data analysis", "data visualization", "big data", "hadoop", "spark",
	},
	"marketing": {
		"digital marketing", "seo", "sem", "social media", "content marketing",
		"google analytics", "facebook ads", "email marketing", "campaign management",
		"brand management", "market research", "roi", "conversion optimization",
	},
	"project_manager": {
		"project management", "agile", "scrum", "kanban", "pmp", "risk management",
		"stakeholder management", "budget management", "timeline", "deliverables",
		"team leadership", "communication", "planning", "execution",
	},
}

// generalKeywords is returned for any category without a dedicated set.
var generalKeywords = []string{
	"experience", "skills", "education", "leadership", "team", "project",
	"management", "communication", "problem solving", "analytical",
	"creative", "innovative", "results", "achievements", "professional",
}

// JobKeywordsFor returns the keyword set for a job category, falling back
// to the general set for unknown categories. The category is matched
// case-insensitively. Never fails.
func JobKeywordsFor(category string) []string {
	if kw, ok := jobKeywords[strings.ToLower(category)]; ok {
		return kw
	}
	return generalKeywords
}

// quickKeywords is the flat keyword list used by the single-pass quick score.
var quickKeywords = []string{
	"Python", "SQL", "machine learning", "project", "team", "problem-solving",
	"JavaScript", "Java", "React", "Node.js", "API", "database", "Git", "Agile",
}
