package services

import (
	"context"

	"go.uber.org/zap"

	"registration-service/models"
	"registration-service/sender"
)

// Notifier sends the best-effort confirmation message. It never fails
// hard: every internal error is reduced to a false return.
type Notifier interface {
	SendConfirmation(ctx context.Context, rec *models.Registration) bool
}

type EmailNotifier struct {
	sender sender.EmailSender
	logger *zap.Logger
}

// NewEmailNotifier wraps an email transport. A nil transport means mail
// is unconfigured; SendConfirmation then reports false without
// attempting delivery.
func NewEmailNotifier(s sender.EmailSender, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{sender: s, logger: logger}
}

func (n *EmailNotifier) SendConfirmation(ctx context.Context, rec *models.Registration) bool {
	if n.sender == nil {
		n.logger.Info("email not configured, skipping confirmation",
			zap.String("payment_id", rec.PaymentID))
		return false
	}

	msg, err := BuildConfirmation(rec)
	if err != nil {
		n.logger.Error("confirmation render failed",
			zap.String("payment_id", rec.PaymentID), zap.Error(err))
		return false
	}

	res, err := n.sender.SendEmail(ctx, rec.Email, msg.Subject, msg.HTML, msg.Text)
	if err != nil {
		n.logger.Error("confirmation send failed",
			zap.String("payment_id", rec.PaymentID),
			zap.String("to", rec.Email), zap.Error(err))
		return false
	}

	n.logger.Info("confirmation sent",
		zap.String("payment_id", rec.PaymentID),
		zap.String("message_id", res.MessageID))
	return true
}
