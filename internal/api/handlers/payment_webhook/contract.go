package payment_webhook

import (
	"context"

	confirmPayment "github.com/roccadavide/beauty-room-sub000/internal/usecase/confirm_payment"
)

type ConfirmPaymentUseCase interface {
	AttachSession(ctx context.Context, bookingID int64, sessionID string) error
	Execute(ctx context.Context, req *confirmPayment.Request) (*confirmPayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
