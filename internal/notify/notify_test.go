package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"atscreen/internal/config"
	atsErrors "atscreen/internal/errors"
	"atscreen/internal/types"
)

// fakeMailClient records delivered messages instead of dialing SMTP.
type fakeMailClient struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeMailClient) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, messages...)
	return nil
}

func testLogger(t *testing.T) *atsErrors.Logger {
	t.Helper()
	logger, err := atsErrors.New("debug")
	require.NoError(t, err)
	return logger
}

func newTestSender(t *testing.T, client MailClient) *Sender {
	t.Helper()
	return &Sender{
		cfg: &config.NotifyConfig{
			Enabled:        true,
			SenderName:     "HR Team",
			SenderEmail:    "hr@example.com",
			CompanyName:    "Acme Corp",
			CompanyWebsite: "https://example.com/careers",
			HREmail:        "careers@example.com",
		},
		logger:        testLogger(t),
		client:        client,
		minFinalScore: 60,
	}
}

func passingReport() *types.ScreeningReport {
	return &types.ScreeningReport{
		Category: "software_engineer",
		Evaluation: types.CompanyEvaluation{
			FinalScore:            72.4,
			ATSCompatibility:      80,
			KeywordRelevance:      77.5,
			RequiredKeywordsFound: 9,
			RequiredKeywordsTotal: 10,
			PassesCriteria:        true,
		},
	}
}

func failingReport() *types.ScreeningReport {
	return &types.ScreeningReport{
		Category: "data_scientist",
		Evaluation: types.CompanyEvaluation{
			FinalScore:            48.2,
			ATSCompatibility:      55,
			KeywordRelevance:      31,
			RequiredKeywordsFound: 3,
			RequiredKeywordsTotal: 10,
			PassesCriteria:        false,
		},
	}
}

func TestNewSenderDisabled(t *testing.T) {
	sender, err := NewSender(&config.NotifyConfig{Enabled: false}, 60, testLogger(t))
	require.NoError(t, err)
	assert.Nil(t, sender)

	// A nil sender must swallow every call so screening stays best effort.
	assert.NoError(t, sender.SendDecision(context.Background(), "Jane", "jane@example.com", passingReport()))
	assert.True(t, sender.IsHealthy())
	assert.Equal(t, map[string]any{"enabled": false}, sender.BreakerStats())
}

func TestSendDecisionRejectsInvalidEmail(t *testing.T) {
	client := &fakeMailClient{}
	sender := newTestSender(t, client)

	for _, email := range []string{"", "not-an-address"} {
		err := sender.SendDecision(context.Background(), "Jane", email, passingReport())
		require.Error(t, err, "email %q", email)
	}
	assert.Empty(t, client.sent)
}

func TestSendDecisionAcceptanceSubject(t *testing.T) {
	client := &fakeMailClient{}
	sender := newTestSender(t, client)

	err := sender.SendDecision(context.Background(), "Jane Smith", "jane@example.com", passingReport())
	require.NoError(t, err)
	require.Len(t, client.sent, 1)

	subject := client.sent[0].GetGenHeader(mail.HeaderSubject)
	require.Len(t, subject, 1)
	assert.Equal(t, "Congratulations! Your Application for the software engineer Position - Next Steps", subject[0])
}

func TestSendDecisionRejectionSubject(t *testing.T) {
	client := &fakeMailClient{}
	sender := newTestSender(t, client)

	err := sender.SendDecision(context.Background(), "Jane Smith", "jane@example.com", failingReport())
	require.NoError(t, err)
	require.Len(t, client.sent, 1)

	subject := client.sent[0].GetGenHeader(mail.HeaderSubject)
	require.Len(t, subject, 1)
	assert.Equal(t, "Application Update for the data scientist Position at Acme Corp", subject[0])
}

func TestSendDecisionDeliveryFailure(t *testing.T) {
	client := &fakeMailClient{err: errors.New("connection refused")}
	sender := newTestSender(t, client)

	err := sender.SendDecision(context.Background(), "Jane", "jane@example.com", passingReport())
	require.Error(t, err)
}

func TestAcceptanceBody(t *testing.T) {
	sender := newTestSender(t, &fakeMailClient{})
	body := sender.acceptanceBody("Jane Smith", "software engineer", passingReport().Evaluation)

	assert.Contains(t, body, "Dear Jane Smith,")
	assert.Contains(t, body, "software engineer position at Acme Corp")
	assert.Contains(t, body, "Overall Score: 72.4/100")
	assert.Contains(t, body, "Required Keywords Found: 9/10")
	assert.Contains(t, body, "Status: QUALIFIED")
	assert.Contains(t, body, "1. HR Review (1-2 business days)")
	assert.Contains(t, body, "Contact: careers@example.com")
	assert.Contains(t, body, "Careers: https://example.com/careers")
}

func TestRejectionBody(t *testing.T) {
	sender := newTestSender(t, &fakeMailClient{})
	feedback := []string{"Add more keywords", "Clarify work history"}
	body := sender.rejectionBody("Jane Smith", "data scientist", failingReport().Evaluation, feedback)

	assert.Contains(t, body, "Dear Jane Smith,")
	assert.Contains(t, body, "Overall Score: 48.2/100 (Required: 60/100)")
	assert.Contains(t, body, "- Add more keywords")
	assert.Contains(t, body, "- Clarify work history")
	assert.Contains(t, body, "apply again")
	assert.Contains(t, body, "Acme Corp HR Team")
}

func TestSendDecisionDefaultsCandidateName(t *testing.T) {
	client := &fakeMailClient{}
	sender := newTestSender(t, client)

	err := sender.SendDecision(context.Background(), "", "jane@example.com", passingReport())
	require.NoError(t, err)
	require.Len(t, client.sent, 1)
	// The generic salutation is used when no name was supplied.
	assert.Contains(t, sender.acceptanceBody("Candidate", "software engineer", passingReport().Evaluation), "Dear Candidate,")
}

func TestFeedbackAreas(t *testing.T) {
	t.Run("caps recommendations at five", func(t *testing.T) {
		report := failingReport()
		report.Analysis = &types.AnalysisReport{
			Recommendations: []string{"a", "b", "c", "d", "e", "f", "g"},
		}
		areas := feedbackAreas(report)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, areas)
	})

	t.Run("generic guidance without analysis", func(t *testing.T) {
		areas := feedbackAreas(failingReport())
		require.Len(t, areas, 3)
		assert.Contains(t, areas[0], "ATS compatibility")
	})
}
