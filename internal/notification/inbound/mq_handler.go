package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/comfinserv/taxdesk/internal/notification/usecase"
	"github.com/comfinserv/taxdesk/internal/pkg/instrument"
	"github.com/comfinserv/taxdesk/internal/pkg/messaging"
	"github.com/comfinserv/taxdesk/internal/pkg/uid"
	"github.com/comfinserv/taxdesk/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// OTPRequestedNotification mails the login code. The body is deliberately not
// logged here since it carries the plaintext code.
func (h *MQHandler) OTPRequestedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "OTPRequestedNotification")
	defer span.End()

	slog.InfoContext(ctx, "consume: otp requested notification")

	var payload event.OTPRequestedMessage
	if err := json.Unmarshal(msg.Body(), &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of otp requested notification", "error", err)
		return nil
	}

	if err := h.uc.ConsumeOTPRequested(ctx, usecase.ConsumeOTPRequestedInput{
		UserID:    payload.UserID,
		Email:     payload.Email,
		Name:      payload.Name,
		Code:      payload.Code,
		ExpiresIn: payload.ExpiresIn,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume otp requested", "user_id", payload.UserID, "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) UserRegisteredNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "UserRegisteredNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: user registered notification", "msg_body", string(body))

	var payload event.UserRegisteredMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of user registered notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeUserRegistered(ctx, usecase.ConsumeUserRegisteredInput{
		UserID: payload.UserID,
		Email:  payload.Email,
		Name:   payload.Name,
		UseOTP: payload.UseOTP,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume user registered", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) FormSubmittedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "FormSubmittedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: form submitted notification", "msg_body", string(body))

	var payload event.FormSubmittedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of form submitted notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeFormSubmitted(ctx, usecase.ConsumeFormSubmittedInput{
		FormID:        payload.FormID,
		Email:         payload.Email,
		FullName:      payload.FullName,
		PAN:           payload.PAN,
		DocumentCount: payload.DocumentCount,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume form submitted", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) FormStatusChangedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "FormStatusChangedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: form status changed notification", "msg_body", string(body))

	var payload event.FormStatusChangedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of form status changed notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeFormStatusChanged(ctx, usecase.ConsumeFormStatusChangedInput{
		FormID:   payload.FormID,
		Email:    payload.Email,
		FullName: payload.FullName,
		Status:   payload.Status,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume form status changed", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
