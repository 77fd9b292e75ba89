package inbound

import (
	"context"

	"github.com/comfinserv/taxdesk/internal/notification/usecase"
)

type uc interface {
	ConsumeOTPRequested(ctx context.Context, in usecase.ConsumeOTPRequestedInput) error
	ConsumeUserRegistered(ctx context.Context, in usecase.ConsumeUserRegisteredInput) error
	ConsumeFormSubmitted(ctx context.Context, in usecase.ConsumeFormSubmittedInput) error
	ConsumeFormStatusChanged(ctx context.Context, in usecase.ConsumeFormStatusChangedInput) error
}
