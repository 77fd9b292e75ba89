package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/comfinserv/taxdesk/internal/pkg/config"
	"github.com/comfinserv/taxdesk/internal/pkg/instrument"
	"github.com/comfinserv/taxdesk/internal/pkg/mail"
	"github.com/comfinserv/taxdesk/internal/pkg/validator"
)

const testConfigYAML = `
app:
  name: TaxDesk
modules:
  notification:
    support_email: support@taxdesk.test
`

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type fakeMail struct {
	sent     []mail.Message
	failures int
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.failures > 0 {
		f.failures--
		return context.DeadlineExceeded
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestUsecase(t *testing.T) (*Usecase, *fakeMail) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	m := &fakeMail{}
	uc := NewNotification(Dependency{
		Config:     cfg,
		Clock:      &fixedClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		Validator:  v10,
		RepoMail:   m,
		Instrument: instrument.NewNoop(),
	})

	return uc, m
}

func TestConsumeOTPRequested(t *testing.T) {
	t.Run("MailsTheCode", func(t *testing.T) {
		// Arrange
		uc, m := newTestUsecase(t)

		// Act
		err := uc.ConsumeOTPRequested(context.Background(), ConsumeOTPRequestedInput{
			UserID:    42,
			Email:     "asha@example.com",
			Name:      "Asha Verma",
			Code:      "424242",
			ExpiresIn: 600,
		})

		// Assert
		if err != nil {
			t.Fatalf("expected consume to succeed, got %v", err)
		}
		if len(m.sent) != 1 {
			t.Fatalf("expected one email, got %d", len(m.sent))
		}
		msg := m.sent[0]
		if msg.To[0] != "asha@example.com" {
			t.Fatalf("unexpected recipient %v", msg.To)
		}
		if !strings.Contains(msg.HTMLBody, "424242") {
			t.Fatalf("expected the code in the body")
		}
		if !strings.Contains(msg.HTMLBody, "10") {
			t.Fatalf("expected the expiry in minutes in the body")
		}
		if !strings.Contains(msg.HTMLBody, "support@taxdesk.test") {
			t.Fatalf("expected the support address in the body")
		}
	})

	t.Run("BadPayloadIsDropped", func(t *testing.T) {
		// Arrange
		uc, m := newTestUsecase(t)

		// Act
		err := uc.ConsumeOTPRequested(context.Background(), ConsumeOTPRequestedInput{
			Email: "not-an-email",
		})

		// Assert
		if err != nil {
			t.Fatalf("a bad payload must not be redelivered, got %v", err)
		}
		if len(m.sent) != 0 {
			t.Fatalf("no email may be sent for a bad payload")
		}
	})

	t.Run("RetriesTransientFailures", func(t *testing.T) {
		// Arrange
		uc, m := newTestUsecase(t)
		m.failures = 2

		// Act
		err := uc.ConsumeOTPRequested(context.Background(), ConsumeOTPRequestedInput{
			UserID:    42,
			Email:     "asha@example.com",
			Name:      "Asha Verma",
			Code:      "424242",
			ExpiresIn: 600,
		})

		// Assert
		if err != nil {
			t.Fatalf("expected consume to succeed after retries, got %v", err)
		}
		if len(m.sent) != 1 {
			t.Fatalf("expected the email delivered on retry, got %d", len(m.sent))
		}
	})

	t.Run("DeliveryFailureIsSwallowed", func(t *testing.T) {
		// Arrange
		uc, m := newTestUsecase(t)
		m.failures = 10

		// Act
		err := uc.ConsumeOTPRequested(context.Background(), ConsumeOTPRequestedInput{
			UserID:    42,
			Email:     "asha@example.com",
			Name:      "Asha Verma",
			Code:      "424242",
			ExpiresIn: 600,
		})

		// Assert
		if err != nil {
			t.Fatalf("delivery failure must never propagate, got %v", err)
		}
	})
}

func TestConsumeUserRegistered(t *testing.T) {
	t.Run("MailsTheWelcome", func(t *testing.T) {
		// Arrange
		uc, m := newTestUsecase(t)

		// Act
		err := uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{
			UserID: 42,
			Email:  "asha@example.com",
			Name:   "Asha Verma",
			UseOTP: true,
		})

		// Assert
		if err != nil {
			t.Fatalf("expected consume to succeed, got %v", err)
		}
		if len(m.sent) != 1 {
			t.Fatalf("expected one email, got %d", len(m.sent))
		}
		if !strings.Contains(m.sent[0].HTMLBody, "Asha Verma") {
			t.Fatalf("expected the name in the body")
		}
	})
}

func TestConsumeFormSubmitted(t *testing.T) {
	t.Run("MailsTheReceipt", func(t *testing.T) {
		// Arrange
		uc, m := newTestUsecase(t)

		// Act
		err := uc.ConsumeFormSubmitted(context.Background(), ConsumeFormSubmittedInput{
			FormID:        9001,
			Email:         "asha@example.com",
			FullName:      "Asha Verma",
			PAN:           "ABCDE1234F",
			DocumentCount: 3,
		})

		// Assert
		if err != nil {
			t.Fatalf("expected consume to succeed, got %v", err)
		}
		if len(m.sent) != 1 {
			t.Fatalf("expected one email, got %d", len(m.sent))
		}
		if !strings.Contains(m.sent[0].HTMLBody, "9001") {
			t.Fatalf("expected the form id in the body")
		}
	})
}

func TestConsumeFormStatusChanged(t *testing.T) {
	t.Run("MailsTheNewStatus", func(t *testing.T) {
		// Arrange
		uc, m := newTestUsecase(t)

		// Act
		err := uc.ConsumeFormStatusChanged(context.Background(), ConsumeFormStatusChangedInput{
			FormID:   9001,
			Email:    "asha@example.com",
			FullName: "Asha Verma",
			Status:   "Reviewed",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected consume to succeed, got %v", err)
		}
		if len(m.sent) != 1 {
			t.Fatalf("expected one email, got %d", len(m.sent))
		}
		if !strings.Contains(m.sent[0].HTMLBody, "Reviewed") {
			t.Fatalf("expected the status in the body")
		}
	})

	t.Run("RejectsUnknownStatus", func(t *testing.T) {
		// Arrange
		uc, m := newTestUsecase(t)

		// Act
		err := uc.ConsumeFormStatusChanged(context.Background(), ConsumeFormStatusChangedInput{
			FormID:   9001,
			Email:    "asha@example.com",
			FullName: "Asha Verma",
			Status:   "Archived",
		})

		// Assert
		if err != nil {
			t.Fatalf("a bad payload must not be redelivered, got %v", err)
		}
		if len(m.sent) != 0 {
			t.Fatalf("no email may be sent for a bad payload")
		}
	})
}
