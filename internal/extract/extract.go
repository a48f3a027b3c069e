// Package extract turns raw resume text into a structured document the
// scoring engine can consume: contact details, section contents and word
// counts pulled out with plain heuristics.
package extract

import (
	"regexp"
	"strings"

	"atscreen/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	namePattern  = regexp.MustCompile(`^[A-Za-z\s.]+$`)

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\+?\d{10,15}`),
		regexp.MustCompile(`\(\d{3}\)\s?\d{3}[-.\s]?\d{4}`),
	}

	datePattern    = regexp.MustCompile(`\d{4}|\d{1,2}/\d{4}|\d{1,2}/\d{1,2}/\d{4}`)
	skillDelimiter = regexp.MustCompile(`[,•·\-\|\n]`)
)

var educationKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "degree", "university",
	"college", "institute", "school", "education", "b.s.", "b.a.",
	"m.s.", "m.a.", "ph.d.", "mba", "certification",
}

var experienceKeywords = []string{
	"experience", "work", "employment", "career", "position",
	"job", "role", "worked", "company", "organization",
}

var skillsSectionKeywords = []string{"skills", "technical skills", "competencies", "technologies"}

// FromText builds a ParsedDocument from plain resume text.
func FromText(text string) *types.ParsedDocument {
	return &types.ParsedDocument{
		RawText:    text,
		Name:       extractName(text),
		Email:      extractEmail(text),
		Phone:      extractPhone(text),
		Education:  extractEducation(text),
		Experience: extractExperience(text),
		Skills:     extractSkills(text),
		WordCount:  len(strings.Fields(text)),
	}
}

func extractEmail(text string) string {
	return emailPattern.FindString(text)
}

func extractPhone(text string) string {
	for _, p := range phonePatterns {
		if m := p.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// extractName scans the first five lines for a short all-letter line, the
// usual place for a candidate header.
func extractName(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || len(strings.Fields(line)) > 4 {
			continue
		}
		if len(line) >= 3 && len(line) <= 50 && namePattern.MatchString(line) {
			return line
		}
	}
	return ""
}

func extractEducation(text string) []string {
	var info []string
	for _, line := range strings.Split(strings.ToLower(text), "\n") {
		for _, kw := range educationKeywords {
			if strings.Contains(line, kw) {
				info = append(info, strings.TrimSpace(line))
				break
			}
		}
	}
	return info
}

// extractExperience harvests lines mentioning employment terms or dates;
// year patterns catch lines like "2019 - 2023" that name no keyword.
func extractExperience(text string) []string {
	var info []string
	for _, line := range strings.Split(strings.ToLower(text), "\n") {
		matched := datePattern.MatchString(line)
		if !matched {
			for _, kw := range experienceKeywords {
				if strings.Contains(line, kw) {
					matched = true
					break
				}
			}
		}
		if matched {
			info = append(info, strings.TrimSpace(line))
		}
	}
	return info
}

// extractSkills collects delimited items between a skills heading and the
// next major section heading.
func extractSkills(text string) []string {
	var skills []string
	inSection := false

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))

		entering := false
		for _, kw := range skillsSectionKeywords {
			if strings.Contains(lower, kw) {
				entering = true
				break
			}
		}
		if entering {
			inSection = true
			continue
		}

		if inSection {
			switch lower {
			case "experience", "education", "work history", "employment":
				inSection = false
			}
		}

		if inSection && strings.TrimSpace(line) != "" {
			for _, item := range skillDelimiter.Split(line, -1) {
				item = strings.TrimSpace(item)
				if len(item) > 1 {
					skills = append(skills, item)
				}
			}
		}
	}

	return skills
}
