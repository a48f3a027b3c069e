// Package journal persists screening activity to local log files: a
// JSON-lines submission log and a CSV analysis log. Writes are best effort
// and never block or fail a screening run.
package journal

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"atscreen/internal/config"
	"atscreen/internal/errors"
	"atscreen/internal/types"
)

var analysisHeader = []string{
	"timestamp", "submission_id", "job_category", "overall_score",
	"format_score", "keyword_score", "readability_score",
	"structure_score", "contact_score", "recommendations",
	"email_sent", "processing_seconds",
}

// SubmissionRecord is one line in the JSON-lines submission log.
type SubmissionRecord struct {
	Timestamp      time.Time `json:"timestamp"`
	SubmissionID   string    `json:"submissionId"`
	CandidateName  string    `json:"candidateName,omitempty"`
	CandidateEmail string    `json:"candidateEmail,omitempty"`
	JobCategory    string    `json:"jobCategory"`
	ATSScore       float64   `json:"atsScore"`
	FinalScore     float64   `json:"finalScore"`
	Passed         bool      `json:"passed"`
	EmailSent      bool      `json:"emailSent"`
	Status         string    `json:"status"`
}

// Summary aggregates the submission log for the stats endpoint.
type Summary struct {
	TotalSubmissions int            `json:"totalSubmissions"`
	TotalPassed      int            `json:"totalPassed"`
	TotalFailed      int            `json:"totalFailed"`
	PassRate         float64        `json:"passRate"`
	AverageScore     float64        `json:"averageScore"`
	EmailsSent       int            `json:"emailsSent"`
	TopCategories    map[string]int `json:"topCategories"`
	SubmissionsToday int            `json:"submissionsLast24h"`
}

// Journal writes submission and analysis records to the configured files.
type Journal struct {
	cfg    *config.JournalConfig
	logger *errors.Logger
	mu     sync.Mutex
}

// New creates a Journal. Returns nil when journaling is disabled so callers
// can skip record calls entirely.
func New(cfg *config.JournalConfig, logger *errors.Logger) *Journal {
	if !cfg.Enabled {
		return nil
	}
	return &Journal{cfg: cfg, logger: logger}
}

// RecordSubmission appends one submission record to the JSON-lines log.
func (j *Journal) RecordSubmission(rec SubmissionRecord) {
	if j == nil {
		return
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if rec.Status == "" {
		rec.Status = "processed"
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := j.openAppend(j.cfg.SubmissionsFile)
	if err != nil {
		j.logJournalError("failed to open submissions log", j.cfg.SubmissionsFile, err)
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(rec); err != nil {
		j.logJournalError("failed to write submission record", j.cfg.SubmissionsFile, err)
	}
}

// RecordAnalysis appends one row to the CSV analysis log, writing the header
// first when the file is new.
func (j *Journal) RecordAnalysis(submissionID string, report *types.AnalysisReport, emailSent bool, elapsed time.Duration) {
	if j == nil || report == nil {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := j.openAppend(j.cfg.AnalysisCSVFile)
	if err != nil {
		j.logJournalError("failed to open analysis log", j.cfg.AnalysisCSVFile, err)
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if info, err := f.Stat(); err == nil && info.Size() == 0 {
		if err := w.Write(analysisHeader); err != nil {
			j.logJournalError("failed to write analysis header", j.cfg.AnalysisCSVFile, err)
			return
		}
	}

	row := []string{
		time.Now().Format("2006-01-02 15:04:05"),
		submissionID,
		report.JobCategory,
		strconv.FormatFloat(report.OverallScore, 'f', 1, 64),
		strconv.Itoa(report.Format.Score),
		strconv.Itoa(report.Keywords.Score),
		strconv.Itoa(report.Readability.Score),
		strconv.Itoa(report.Structure.Score),
		strconv.Itoa(report.Contact.Score),
		strconv.Itoa(len(report.Recommendations)),
		strconv.FormatBool(emailSent),
		strconv.FormatFloat(elapsed.Seconds(), 'f', 3, 64),
	}
	if err := w.Write(row); err != nil {
		j.logJournalError("failed to write analysis record", j.cfg.AnalysisCSVFile, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		j.logJournalError("failed to flush analysis record", j.cfg.AnalysisCSVFile, err)
	}
}

// Summarize reads the submission log back and aggregates it. A missing log
// file yields an empty summary rather than an error.
func (j *Journal) Summarize() (*Summary, error) {
	summary := &Summary{TopCategories: map[string]int{}}
	if j == nil {
		return summary, nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(j.cfg.SubmissionsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return summary, nil
		}
		return nil, errors.NewIOError(errors.ErrCodeJournalFailed, "failed to read submissions log", err).
			WithContext("file", j.cfg.SubmissionsFile)
	}
	defer f.Close()

	var totalScore float64
	cutoff := time.Now().Add(-24 * time.Hour)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec SubmissionRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			// Skip malformed lines, partial writes should not poison stats.
			continue
		}
		summary.TotalSubmissions++
		if rec.Passed {
			summary.TotalPassed++
		}
		if rec.EmailSent {
			summary.EmailsSent++
		}
		if rec.JobCategory != "" {
			summary.TopCategories[rec.JobCategory]++
		}
		if rec.Timestamp.After(cutoff) {
			summary.SubmissionsToday++
		}
		totalScore += rec.ATSScore
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewIOError(errors.ErrCodeJournalFailed, "failed to scan submissions log", err).
			WithContext("file", j.cfg.SubmissionsFile)
	}

	summary.TotalFailed = summary.TotalSubmissions - summary.TotalPassed
	if summary.TotalSubmissions > 0 {
		summary.PassRate = float64(summary.TotalPassed) / float64(summary.TotalSubmissions) * 100
		summary.AverageScore = totalScore / float64(summary.TotalSubmissions)
	}
	trimCategories(summary.TopCategories, 5)
	return summary, nil
}

func (j *Journal) openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

func (j *Journal) logJournalError(msg, file string, err error) {
	j.logger.Warn(fmt.Sprintf("%s: %v", msg, err), "file", file, "code", errors.ErrCodeJournalFailed)
}

// trimCategories keeps only the n most frequent categories.
func trimCategories(counts map[string]int, n int) {
	if len(counts) <= n {
		return
	}
	type kv struct {
		k string
		v int
	}
	sorted := make([]kv, 0, len(counts))
	for k, v := range counts {
		sorted = append(sorted, kv{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].v > sorted[j].v })
	for _, e := range sorted[n:] {
		delete(counts, e.k)
	}
}
