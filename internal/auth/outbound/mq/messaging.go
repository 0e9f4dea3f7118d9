package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/gotp/internal/auth/usecase"
	"github.com/shandysiswandi/gotp/internal/pkg/instrument"
	"github.com/shandysiswandi/gotp/internal/pkg/messaging"
	"github.com/shandysiswandi/gotp/internal/shared/event"
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

func (m *Messaging) publish(ctx context.Context, spanName, destination string, msg any) error {
	ctx, span := m.ins.Tracer("auth.outbound.mq").Start(ctx, spanName)
	defer span.End()

	body, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, destination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishUserRegistered(ctx context.Context, msg usecase.UserRegisteredEvent) error {
	return m.publish(ctx, "PublishUserRegistered", event.UserRegisteredDestination, event.UserRegisteredMessage{
		UserID: msg.UserID,
		Email:  msg.Email,
		Name:   msg.Name,
	})
}

func (m *Messaging) PublishOTPEnabled(ctx context.Context, msg usecase.OTPEnabledEvent) error {
	return m.publish(ctx, "PublishOTPEnabled", event.OTPEnabledDestination, event.OTPEnabledMessage{
		UserID: msg.UserID,
		Email:  msg.Email,
	})
}

func (m *Messaging) PublishOTPDisabled(ctx context.Context, msg usecase.OTPDisabledEvent) error {
	return m.publish(ctx, "PublishOTPDisabled", event.OTPDisabledDestination, event.OTPDisabledMessage{
		UserID: msg.UserID,
		Email:  msg.Email,
	})
}
