// Package alert delivers operator alerts by email via Resend.
package alert

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/resend/resend-go/v2"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

// ResendClient implements the adapter.AlertSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// NewResendClientWithBaseURL creates a Resend client pointed at another API
// host, such as a regional endpoint or a local stub.
func NewResendClientWithBaseURL(apiKey, fromName, fromEmail, baseURL string) (*ResendClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid Resend base URL: %w", err)
	}
	c := NewResendClient(apiKey, fromName, fromEmail)
	c.client.BaseURL = u
	return c, nil
}

// Send sends an alert via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendAlertInput) (*adapter.SendAlertResult, error) {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		if isPermanentError(err) {
			return nil, domainerror.NewAlertError(
				domainerror.ErrCodePermanentAlertFailure,
				"permanent alert failure",
				err,
			)
		}
		return nil, domainerror.NewAlertError(
			domainerror.ErrCodeTemporaryAlertFailure,
			"temporary alert failure",
			err,
		)
	}

	return &adapter.SendAlertResult{
		ProviderID: resp.Id,
	}, nil
}

// isPermanentError checks if the error should not be retried.
// Permanent: 401, 403, 422. Temporary: 429 and 5xx.
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	permanentPatterns := []string{
		"401",
		"403",
		"422",
		"unauthorized",
		"forbidden",
		"validation",
		"invalid",
		"bad request",
	}

	for _, pattern := range permanentPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// LogSender writes alerts to the log instead of sending them. It is used when
// no Resend API key is configured.
type LogSender struct{}

// Send logs the alert.
func (LogSender) Send(_ context.Context, input adapter.SendAlertInput) (*adapter.SendAlertResult, error) {
	slog.Warn("Operator alert",
		"to", input.To,
		"subject", input.Subject,
		"body", input.Text,
	)
	return &adapter.SendAlertResult{ProviderID: "log"}, nil
}

// MockAlertSender is a mock implementation for testing.
type MockAlertSender struct {
	mu          sync.Mutex
	SentAlerts  []adapter.SendAlertInput
	ShouldFail  bool
	FailError   error
	IsPermanent bool
}

// NewMockAlertSender creates a new mock alert sender.
func NewMockAlertSender() *MockAlertSender {
	return &MockAlertSender{
		SentAlerts: make([]adapter.SendAlertInput, 0),
	}
}

// Send implements the adapter.AlertSender interface for testing.
func (m *MockAlertSender) Send(_ context.Context, input adapter.SendAlertInput) (*adapter.SendAlertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ShouldFail {
		code := domainerror.ErrCodeTemporaryAlertFailure
		if m.IsPermanent {
			code = domainerror.ErrCodePermanentAlertFailure
		}
		return nil, domainerror.NewAlertError(code, "mock failure", m.FailError)
	}

	m.SentAlerts = append(m.SentAlerts, input)

	return &adapter.SendAlertResult{
		ProviderID: fmt.Sprintf("mock-%d", len(m.SentAlerts)),
	}, nil
}

// SetFailure configures the mock to fail with the given error.
func (m *MockAlertSender) SetFailure(err error, permanent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ShouldFail = true
	m.FailError = err
	m.IsPermanent = permanent
}

// Sent returns a copy of the delivered alerts.
func (m *MockAlertSender) Sent() []adapter.SendAlertInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]adapter.SendAlertInput(nil), m.SentAlerts...)
}

// Reset clears all sent alerts and failure configuration.
func (m *MockAlertSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentAlerts = make([]adapter.SendAlertInput, 0)
	m.ShouldFail = false
	m.FailError = nil
	m.IsPermanent = false
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.AlertSender = (*ResendClient)(nil)
	_ adapter.AlertSender = LogSender{}
	_ adapter.AlertSender = (*MockAlertSender)(nil)
)
