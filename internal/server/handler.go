package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"atscreen/internal/extract"
	"atscreen/internal/journal"
	"atscreen/internal/observability"
	"atscreen/internal/scoring"
	"atscreen/internal/types"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// createAnalyzeHandler wraps the detailed analysis handler with observability
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("atscreen.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}
		if len(req.ResumeText) > int(s.MaxRequestSize) {
			err := fmt.Errorf("resume text too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume text too large", fmt.Sprintf("resumeText exceeds size limit of %d characters", s.MaxRequestSize), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("request.category", req.JobCategory),
			attribute.String("operation", "analyze"),
		)

		start := time.Now()
		metrics := om.GetMetrics()
		var report *types.AnalysisReport
		err := metrics.TrackScoringOperation(ctx, "analyze", func(ctx context.Context) error {
			doc := extract.FromText(req.ResumeText)
			report = s.Engine.Analyze(doc, req.JobCategory)
			return nil
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "scoring"))
			metrics.RecordBusinessMetric(ctx, "resume_analyzed", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to analyze resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordScore(ctx, report.JobCategory, report.Rating, report.OverallScore, om)
		metrics.RecordBusinessMetric(ctx, "resume_analyzed", true, om,
			attribute.String("category", report.JobCategory),
			attribute.String("rating", report.Rating))

		s.Journal.RecordAnalysis(uuid.NewString(), report, false, time.Since(start))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("score.overall", report.OverallScore),
			attribute.String("score.rating", report.Rating),
			attribute.String("category", report.JobCategory),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createDetectHandler wraps the category detection handler with observability
func (s *Server) createDetectHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("atscreen.api")
		ctx, span := tracer.Start(ctx, "api.detect")
		defer span.End()

		var req DetectRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Text) == "" {
			err := fmt.Errorf("missing text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing text", "text field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.text_length", len(req.Text)),
			attribute.String("operation", "detect"),
		)

		metrics := om.GetMetrics()
		var result types.CategoryDetection
		_ = metrics.TrackScoringOperation(ctx, "detect", func(ctx context.Context) error {
			category, scores := scoring.DetectCategory(req.Text)
			result = types.CategoryDetection{Category: category, Scores: scores}
			return nil
		}, om)

		metrics.RecordBusinessMetric(ctx, "category_detected", true, om,
			attribute.String("category", result.Category))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("category", result.Category),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createScreenHandler wraps the company screening handler with observability
func (s *Server) createScreenHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("atscreen.api")
		ctx, span := tracer.Start(ctx, "api.screen")
		defer span.End()

		var req ScreenRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}
		if len(req.ResumeText) > int(s.MaxRequestSize) {
			err := fmt.Errorf("resume text too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume text too large", fmt.Sprintf("resumeText exceeds size limit of %d characters", s.MaxRequestSize), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("request.category", req.JobCategory),
			attribute.String("operation", "screen"),
		)

		start := time.Now()
		metrics := om.GetMetrics()
		report := &types.ScreeningReport{SubmissionID: uuid.NewString()}
		_ = metrics.TrackScoringOperation(ctx, "screen", func(ctx context.Context) error {
			doc := extract.FromText(req.ResumeText)
			analysis := s.Engine.Analyze(doc, req.JobCategory)
			evaluation := s.Engine.Screen(analysis.OverallScore, analysis.Keywords.FoundKeywords,
				req.ResumeText, analysis.JobCategory)

			report.Category = analysis.JobCategory
			report.Analysis = analysis
			report.Evaluation = evaluation
			report.CandidateEmail = req.CandidateEmail
			if report.CandidateEmail == "" {
				report.CandidateEmail = doc.Email
			}
			return nil
		}, om)

		// Notification delivery is best effort; the screening result stands
		// regardless of mail outcome.
		if s.Notifier != nil && report.CandidateEmail != "" {
			name := req.CandidateName
			if err := s.Notifier.SendDecision(ctx, name, report.CandidateEmail, report); err == nil {
				report.NotificationSent = true
				metrics.RecordBusinessMetric(ctx, "notification_sent", true, om,
					attribute.Bool("passed", report.Evaluation.PassesCriteria))
			} else {
				metrics.RecordBusinessMetric(ctx, "notification_sent", false, om)
			}
		}

		s.Journal.RecordSubmission(journal.SubmissionRecord{
			SubmissionID:   report.SubmissionID,
			CandidateName:  req.CandidateName,
			CandidateEmail: report.CandidateEmail,
			JobCategory:    report.Category,
			ATSScore:       report.Analysis.OverallScore,
			FinalScore:     report.Evaluation.FinalScore,
			Passed:         report.Evaluation.PassesCriteria,
			EmailSent:      report.NotificationSent,
		})
		s.Journal.RecordAnalysis(report.SubmissionID, report.Analysis, report.NotificationSent, time.Since(start))

		metrics.RecordScore(ctx, report.Category, report.Analysis.Rating, report.Analysis.OverallScore, om)
		metrics.RecordBusinessMetric(ctx, "screening_run", true, om,
			attribute.Bool("passed", report.Evaluation.PassesCriteria),
			attribute.String("category", report.Category))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Bool("screening.passed", report.Evaluation.PassesCriteria),
			attribute.Float64("screening.final_score", report.Evaluation.FinalScore),
			attribute.String("category", report.Category),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
