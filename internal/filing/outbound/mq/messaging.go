package mq

import (
	"context"
	"encoding/json"

	"github.com/comfinserv/taxdesk/internal/filing/usecase"
	"github.com/comfinserv/taxdesk/internal/pkg/instrument"
	"github.com/comfinserv/taxdesk/internal/pkg/messaging"
	"github.com/comfinserv/taxdesk/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishFormSubmitted(ctx context.Context, msg usecase.FormSubmittedEvent) error {
	ctx, span := m.ins.Tracer("filing.outbound.mq").Start(ctx, "PublishFormSubmitted")
	defer span.End()

	body, err := json.Marshal(event.FormSubmittedMessage{
		FormID:        msg.FormID,
		Email:         msg.Email,
		FullName:      msg.FullName,
		PAN:           msg.PAN,
		DocumentCount: msg.DocumentCount,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.FormSubmittedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishFormStatusChanged(ctx context.Context, msg usecase.FormStatusChangedEvent) error {
	ctx, span := m.ins.Tracer("filing.outbound.mq").Start(ctx, "PublishFormStatusChanged")
	defer span.End()

	body, err := json.Marshal(event.FormStatusChangedMessage{
		FormID:   msg.FormID,
		Email:    msg.Email,
		FullName: msg.FullName,
		Status:   msg.Status,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.FormStatusChangedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
