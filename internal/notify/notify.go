// Package notify sends recruitment decision emails to candidates after a
// screening run. Delivery is best effort: failures are logged and reported
// back to the caller but never abort the screening itself.
package notify

import (
	"context"
	"fmt"
	"strings"

	"atscreen/internal/config"
	"atscreen/internal/errors"
	"atscreen/internal/types"

	"github.com/wneessen/go-mail"
)

// MailClient abstracts the SMTP client so tests can substitute delivery.
type MailClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Sender builds and delivers recruitment decision emails.
type Sender struct {
	cfg     *config.NotifyConfig
	logger  *errors.Logger
	client  MailClient
	breaker *MailCircuitBreaker

	// Minimum final score quoted in rejection feedback.
	minFinalScore float64
}

// NewSender creates a Sender from the notification configuration. Returns nil
// when notifications are disabled so callers can skip delivery entirely.
func NewSender(cfg *config.NotifyConfig, minFinalScore float64, logger *errors.Logger) (*Sender, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, errors.NewNotifyError(errors.ErrCodeNotifyFailed, "failed to create SMTP client", err).
			WithContext("smtp_host", cfg.SMTPHost)
	}

	return &Sender{
		cfg:           cfg,
		logger:        logger,
		client:        client,
		breaker:       NewMailCircuitBreaker(&cfg.CircuitBreaker, logger),
		minFinalScore: minFinalScore,
	}, nil
}

// SendDecision emails the screening outcome to the candidate. candidateName
// may be empty, in which case a generic salutation is used.
func (s *Sender) SendDecision(ctx context.Context, candidateName, candidateEmail string, report *types.ScreeningReport) error {
	if s == nil {
		return nil
	}
	if candidateEmail == "" || !strings.Contains(candidateEmail, "@") {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "invalid candidate email address", nil).
			WithContext("email", candidateEmail)
	}
	if candidateName == "" {
		candidateName = "Candidate"
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.SenderName, s.cfg.SenderEmail); err != nil {
		return errors.NewNotifyError(errors.ErrCodeNotifyFailed, "invalid sender address", err).
			WithContext("sender", s.cfg.SenderEmail)
	}
	if err := msg.To(candidateEmail); err != nil {
		return errors.NewNotifyError(errors.ErrCodeNotifyFailed, "invalid recipient address", err).
			WithContext("recipient", candidateEmail)
	}

	position := strings.ReplaceAll(report.Category, "_", " ")
	if report.Evaluation.PassesCriteria {
		msg.Subject(fmt.Sprintf("Congratulations! Your Application for the %s Position - Next Steps", position))
		msg.SetBodyString(mail.TypeTextPlain, s.acceptanceBody(candidateName, position, report.Evaluation))
	} else {
		msg.Subject(fmt.Sprintf("Application Update for the %s Position at %s", position, s.cfg.CompanyName))
		feedback := feedbackAreas(report)
		msg.SetBodyString(mail.TypeTextPlain, s.rejectionBody(candidateName, position, report.Evaluation, feedback))
	}

	err := s.breaker.Execute(func() error {
		return s.client.DialAndSendWithContext(ctx, msg)
	})
	if err != nil {
		notifyErr := errors.NewNotifyError(errors.ErrCodeNotifyFailed, "failed to send recruitment email", err).
			WithContext("recipient", candidateEmail).
			WithContext("passed", report.Evaluation.PassesCriteria)
		s.logger.LogError(notifyErr, "Failed to send recruitment email")
		return notifyErr
	}

	s.logger.Info("Recruitment email sent",
		"recipient", candidateEmail,
		"category", report.Category,
		"passed", report.Evaluation.PassesCriteria)
	return nil
}

func (s *Sender) acceptanceBody(name, position string, ev types.CompanyEvaluation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s,\n\n", name)
	fmt.Fprintf(&b, "Congratulations! Your application for the %s position at %s has successfully passed our automated CV screening process.\n\n",
		position, s.cfg.CompanyName)
	b.WriteString("Your Screening Results:\n")
	fmt.Fprintf(&b, "- Overall Score: %.1f/100\n", ev.FinalScore)
	fmt.Fprintf(&b, "- ATS Compatibility: %.1f/100\n", ev.ATSCompatibility)
	fmt.Fprintf(&b, "- Keyword Relevance: %.1f/100\n", ev.KeywordRelevance)
	fmt.Fprintf(&b, "- Required Keywords Found: %d/%d\n", ev.RequiredKeywordsFound, ev.RequiredKeywordsTotal)
	b.WriteString("- Status: QUALIFIED\n\n")
	b.WriteString("Next Steps:\n")
	b.WriteString("1. HR Review (1-2 business days)\n")
	b.WriteString("2. Initial Interview Invitation (3-5 business days if selected)\n")
	b.WriteString("3. Technical/Behavioral Assessment\n")
	b.WriteString("4. Final Decision (1-2 weeks)\n\n")
	s.writeContactFooter(&b)
	return b.String()
}

func (s *Sender) rejectionBody(name, position string, ev types.CompanyEvaluation, feedback []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s,\n\n", name)
	fmt.Fprintf(&b, "Thank you for submitting your application for the %s position at %s.\n\n", position, s.cfg.CompanyName)
	b.WriteString("After careful review, we have decided not to move forward with your application at this time. However, we want to provide constructive feedback:\n\n")
	b.WriteString("Your Application Assessment:\n")
	fmt.Fprintf(&b, "- Overall Score: %.1f/100 (Required: %.0f/100)\n", ev.FinalScore, s.minFinalScore)
	fmt.Fprintf(&b, "- ATS Compatibility: %.1f/100\n", ev.ATSCompatibility)
	fmt.Fprintf(&b, "- Keyword Relevance: %.1f/100\n", ev.KeywordRelevance)
	fmt.Fprintf(&b, "- Required Keywords Found: %d/%d\n\n", ev.RequiredKeywordsFound, ev.RequiredKeywordsTotal)
	b.WriteString("Areas for Improvement:\n")
	for _, area := range feedback {
		fmt.Fprintf(&b, "- %s\n", area)
	}
	b.WriteString("\nWe encourage you to apply again once you've addressed these areas.\n\n")
	s.writeContactFooter(&b)
	return b.String()
}

// IsHealthy reports whether the delivery circuit breaker is closed.
func (s *Sender) IsHealthy() bool {
	if s == nil {
		return true
	}
	return s.breaker.IsHealthy()
}

// BreakerStats returns delivery circuit breaker statistics.
func (s *Sender) BreakerStats() map[string]any {
	if s == nil {
		return map[string]any{"enabled": false}
	}
	return s.breaker.GetStats()
}

func (s *Sender) writeContactFooter(b *strings.Builder) {
	b.WriteString("Best regards,\n")
	fmt.Fprintf(b, "%s HR Team\n\n", s.cfg.CompanyName)
	if s.cfg.HREmail != "" {
		fmt.Fprintf(b, "Contact: %s\n", s.cfg.HREmail)
	}
	if s.cfg.CompanyWebsite != "" {
		fmt.Fprintf(b, "Careers: %s\n", s.cfg.CompanyWebsite)
	}
}

// feedbackAreas derives improvement areas from the analysis, falling back to
// generic guidance when the report carries no recommendations.
func feedbackAreas(report *types.ScreeningReport) []string {
	if report.Analysis != nil && len(report.Analysis.Recommendations) > 0 {
		areas := report.Analysis.Recommendations
		if len(areas) > 5 {
			areas = areas[:5]
		}
		return areas
	}
	return []string{
		"CV format needs improvement for ATS compatibility",
		"Missing key skills/keywords for the position",
		"Professional experience could be better highlighted",
	}
}
