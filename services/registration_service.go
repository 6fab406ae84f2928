package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"registration-service/apperrors"
	"registration-service/models"
	"registration-service/repository"
)

// timestampLayout renders the registration date in the configured zone,
// e.g. "28/8/2026, 10:30:45 am".
const timestampLayout = "2/1/2006, 3:04:05 pm"

// RegistrationService turns a completed payment into a persisted,
// notified registration. Ledger append happens-before the notification
// attempt; notifier failure never aborts the submission.
type RegistrationService struct {
	ledger   repository.LedgerRepository
	notifier Notifier
	loc      *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

func NewRegistrationService(ledger repository.LedgerRepository, notifier Notifier, loc *time.Location, logger *zap.Logger) *RegistrationService {
	if loc == nil {
		loc = time.Local
	}
	return &RegistrationService{
		ledger:   ledger,
		notifier: notifier,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit normalizes the payload, appends it to the ledger and dispatches
// the confirmation. No idempotency is enforced: resubmitting the same
// payment id produces a second ledger row.
func (s *RegistrationService) Submit(ctx context.Context, req *models.RegistrationRequest) (*models.RegistrationResult, error) {
	rec := s.normalize(req)

	if err := s.ledger.Append(ctx, rec); err != nil {
		s.logger.Error("ledger append failed",
			zap.String("payment_id", rec.PaymentID), zap.Error(err))
		// The user is already charged at this point. Surface the payment
		// reference id so they can seek manual reconciliation.
		if appErr, ok := err.(*apperrors.Error); ok {
			appErr.Message = fmt.Sprintf("%s. Your payment (id %s) was received; please contact support", appErr.Message, rec.PaymentID)
			return nil, appErr
		}
		return nil, apperrors.Persistence(
			fmt.Sprintf("Failed to save registration. Your payment (id %s) was received; please contact support", rec.PaymentID), err)
	}

	emailSent := s.notifier.SendConfirmation(ctx, rec)

	s.logger.Info("registration saved",
		zap.String("payment_id", rec.PaymentID),
		zap.String("exam_mode", rec.ExamMode),
		zap.Bool("email_sent", emailSent))

	return &models.RegistrationResult{
		RegistrationID: rec.PaymentID,
		EmailSent:      emailSent,
	}, nil
}

// normalize injects the server timestamp and status and applies the
// amount fallback. Client-supplied timestamps are never trusted.
func (s *RegistrationService) normalize(req *models.RegistrationRequest) *models.Registration {
	amount := req.Amount
	if amount == 0 {
		amount = models.DefaultAmount
	}

	return &models.Registration{
		Date:           s.now().In(s.loc).Format(timestampLayout),
		PaymentID:      req.PaymentID,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		ParentPhone:    req.ParentPhone,
		Stream:         req.Stream,
		School:         req.School,
		City:           req.City,
		ExamMode:       req.ExamMode,
		ReferralSource: req.ReferralSource,
		Amount:         amount,
		Status:         models.StatusConfirmed,
	}
}
