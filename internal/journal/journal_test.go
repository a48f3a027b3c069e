package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"atscreen/internal/config"
	"atscreen/internal/errors"
	"atscreen/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJournal(t *testing.T) *Journal {
	t.Helper()
	tmpDir := t.TempDir()
	cfg := &config.JournalConfig{
		Enabled:         true,
		SubmissionsFile: filepath.Join(tmpDir, "submissions.jsonl"),
		AnalysisCSVFile: filepath.Join(tmpDir, "analysis.csv"),
	}
	logger, err := errors.New("debug")
	require.NoError(t, err)
	return New(cfg, logger)
}

func TestNewDisabledReturnsNil(t *testing.T) {
	logger, _ := errors.New("info")
	j := New(&config.JournalConfig{Enabled: false}, logger)
	assert.Nil(t, j)

	// Nil journals swallow record calls and summarize to zero.
	j.RecordSubmission(SubmissionRecord{SubmissionID: "x"})
	j.RecordAnalysis("x", &types.AnalysisReport{}, false, time.Second)
	summary, err := j.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalSubmissions)
}

func TestRecordSubmissionAndSummarize(t *testing.T) {
	j := newTestJournal(t)

	j.RecordSubmission(SubmissionRecord{
		SubmissionID: "sub-1",
		JobCategory:  "software_engineer",
		ATSScore:     80,
		FinalScore:   70,
		Passed:       true,
		EmailSent:    true,
	})
	j.RecordSubmission(SubmissionRecord{
		SubmissionID: "sub-2",
		JobCategory:  "software_engineer",
		ATSScore:     40,
		FinalScore:   35,
		Passed:       false,
	})
	j.RecordSubmission(SubmissionRecord{
		SubmissionID: "sub-3",
		JobCategory:  "marketing",
		ATSScore:     60,
		FinalScore:   55,
		Passed:       false,
	})

	summary, err := j.Summarize()
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalSubmissions)
	assert.Equal(t, 1, summary.TotalPassed)
	assert.Equal(t, 2, summary.TotalFailed)
	assert.InDelta(t, 33.33, summary.PassRate, 0.1)
	assert.InDelta(t, 60.0, summary.AverageScore, 0.01)
	assert.Equal(t, 1, summary.EmailsSent)
	assert.Equal(t, 2, summary.TopCategories["software_engineer"])
	assert.Equal(t, 1, summary.TopCategories["marketing"])
	// Timestamps default to now, so all records fall in the last day.
	assert.Equal(t, 3, summary.SubmissionsToday)
}

func TestRecordSubmissionDefaults(t *testing.T) {
	j := newTestJournal(t)
	j.RecordSubmission(SubmissionRecord{SubmissionID: "sub-1"})

	data, err := os.ReadFile(j.cfg.SubmissionsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"processed"`)
	assert.NotContains(t, string(data), `"timestamp":"0001-`)
}

func TestSummarizeMissingFile(t *testing.T) {
	j := newTestJournal(t)

	summary, err := j.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalSubmissions)
	assert.Empty(t, summary.TopCategories)
}

func TestSummarizeSkipsMalformedLines(t *testing.T) {
	j := newTestJournal(t)

	j.RecordSubmission(SubmissionRecord{SubmissionID: "good", Passed: true})

	f, err := os.OpenFile(j.cfg.SubmissionsFile, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("{this is not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	j.RecordSubmission(SubmissionRecord{SubmissionID: "also-good"})

	summary, err := j.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalSubmissions)
}

func TestSummarizeOldSubmissionsExcludedFromRecentCount(t *testing.T) {
	j := newTestJournal(t)

	j.RecordSubmission(SubmissionRecord{
		SubmissionID: "old",
		Timestamp:    time.Now().Add(-48 * time.Hour),
	})
	j.RecordSubmission(SubmissionRecord{SubmissionID: "new"})

	summary, err := j.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalSubmissions)
	assert.Equal(t, 1, summary.SubmissionsToday)
}

func TestRecordAnalysisWritesHeaderOnce(t *testing.T) {
	j := newTestJournal(t)

	report := &types.AnalysisReport{
		OverallScore:    72.5,
		JobCategory:     "tech",
		Format:          types.CriterionResult{Score: 80},
		Keywords:        types.KeywordResult{Score: 60},
		Readability:     types.CriterionResult{Score: 75},
		Structure:       types.CriterionResult{Score: 70},
		Contact:         types.CriterionResult{Score: 90},
		Recommendations: []string{"one", "two"},
	}

	j.RecordAnalysis("sub-1", report, true, 1500*time.Millisecond)
	j.RecordAnalysis("sub-2", report, false, 250*time.Millisecond)

	f, err := os.Open(j.cfg.AnalysisCSVFile)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, analysisHeader, rows[0])

	first := rows[1]
	assert.Equal(t, "sub-1", first[1])
	assert.Equal(t, "tech", first[2])
	assert.Equal(t, "72.5", first[3])
	assert.Equal(t, "80", first[4])
	assert.Equal(t, "2", first[9])
	assert.Equal(t, "true", first[10])
	assert.Equal(t, "1.500", first[11])

	assert.Equal(t, "sub-2", rows[2][1])
	assert.Equal(t, "false", rows[2][10])
}

func TestRecordAnalysisNilReport(t *testing.T) {
	j := newTestJournal(t)
	j.RecordAnalysis("sub-1", nil, false, time.Second)

	_, err := os.Stat(j.cfg.AnalysisCSVFile)
	assert.True(t, os.IsNotExist(err))
}

func TestTrimCategories(t *testing.T) {
	counts := map[string]int{"a": 5, "b": 4, "c": 3, "d": 2, "e": 1, "f": 0}
	trimCategories(counts, 5)

	assert.Len(t, counts, 5)
	assert.NotContains(t, counts, "f")

	small := map[string]int{"a": 1}
	trimCategories(small, 5)
	assert.Len(t, small, 1)
}

func TestRecordSubmissionCreatesParentDir(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &config.JournalConfig{
		Enabled:         true,
		SubmissionsFile: filepath.Join(tmpDir, "nested", "logs", "submissions.jsonl"),
		AnalysisCSVFile: filepath.Join(tmpDir, "nested", "logs", "analysis.csv"),
	}
	logger, _ := errors.New("info")
	j := New(cfg, logger)

	j.RecordSubmission(SubmissionRecord{SubmissionID: "sub-1"})

	data, err := os.ReadFile(cfg.SubmissionsFile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "sub-1"))
}
