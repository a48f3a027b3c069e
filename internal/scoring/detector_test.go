package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "tech resume",
			text:     "Experienced developer with python, sql and javascript. Built api services and database backends.",
			expected: "tech",
		},
		{
			name:     "education resume",
			text:     "Classroom teacher developing curriculum and lesson plans for student assessment.",
			expected: "education",
		},
		{
			name:     "healthcare resume",
			text:     "Registered nurse with clinical experience in patient care and treatment planning at a hospital.",
			expected: "healthcare",
		},
		{
			name:     "no matches falls back to general",
			text:     "zzz yyy xxx www vvv",
			expected: CategoryGeneral,
		},
		{
			name:     "empty text falls back to general",
			text:     "",
			expected: CategoryGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, scores := DetectCategory(tt.text)
			assert.Equal(t, tt.expected, category)
			assert.Len(t, scores, len(detectionTaxonomy))
		})
	}
}

func TestDetectCategoryTieBreak(t *testing.T) {
	// One education keyword and one tech keyword each occur once; the tie
	// resolves to the category declared first in the taxonomy.
	category, scores := DetectCategory("curriculum python")
	assert.Equal(t, 1, scores["education"])
	assert.Equal(t, 1, scores["tech"])
	assert.Equal(t, "education", category)
}

func TestDetectCategoryCountsOccurrences(t *testing.T) {
	// Every occurrence counts, not just presence.
	category, scores := DetectCategory("python python python curriculum")
	assert.Equal(t, "tech", category)
	assert.Equal(t, 3, scores["tech"])
	assert.Equal(t, 1, scores["education"])
}

func TestDetectCategoryCaseInsensitive(t *testing.T) {
	upper, _ := DetectCategory("PYTHON SQL JAVASCRIPT")
	lower, _ := DetectCategory("python sql javascript")
	assert.Equal(t, lower, upper)
}

func TestDetectCategoryDeterministic(t *testing.T) {
	text := "design portfolio python marketing patient " + strings.Repeat("sales client ", 3)
	first, _ := DetectCategory(text)
	for i := 0; i < 20; i++ {
		got, _ := DetectCategory(text)
		assert.Equal(t, first, got)
	}
}
