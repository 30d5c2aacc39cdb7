package service

import (
	"context"
	"time"

	"preorder-service/internal/model"
	"preorder-service/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VerificationService is the entry point for the external actor (an admin,
// in practice) who checks a submitted transfer proof against the bank
// statement. The core never decides PAID/FAILED on its own.
type VerificationService interface {
	Verify(ctx context.Context, paymentID string, outcome model.PaymentStatus) (*model.Payment, error)
}

type verificationServiceImpl struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	logger      *zap.Logger
}

func NewVerificationService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	logger *zap.Logger,
) VerificationService {
	return &verificationServiceImpl{
		db:          db,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// Verify finalizes a payment. On PAID the order moves PENDING→CONFIRMED in
// the same transaction; a reader can never observe one without the other.
func (s *verificationServiceImpl) Verify(ctx context.Context, paymentID string, outcome model.PaymentStatus) (*model.Payment, error) {
	if outcome != model.PaymentStatusPaid && outcome != model.PaymentStatusFailed {
		return nil, model.ErrInvalidTransition
	}

	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, model.ErrPaymentNotFound
		}
		s.logger.Error("load payment", zap.String("payment_id", paymentID), zap.Error(err))
		return nil, model.ErrTransient
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.LockByID(ctx, tx, payment.OrderID)
		if err != nil {
			return err
		}

		// re-read under the order lock
		payment, err = s.paymentRepo.FindByOrderID(ctx, tx, order.ID)
		if err != nil {
			return err
		}

		if payment.Status.IsFinal() {
			return model.ErrAlreadyFinalized
		}
		if order.Status == model.OrderStatusCancelled {
			return model.ErrOrderClosed
		}

		if err := s.paymentRepo.Finalize(ctx, tx, payment.ID, outcome); err != nil {
			return err
		}

		if outcome == model.PaymentStatusPaid {
			if err := s.orderRepo.UpdateStatus(ctx, tx, order.ID, model.OrderStatusPending, model.OrderStatusConfirmed); err != nil {
				if repository.IsNotFound(err) {
					return model.ErrInvalidTransition
				}
				return err
			}
		}

		return nil
	})
	if err != nil {
		if de := domainErr(err); de != nil {
			return nil, de
		}
		s.logger.Error("verify payment", zap.String("payment_id", paymentID), zap.Error(err))
		return nil, model.ErrTransient
	}

	s.logger.Info("payment verified",
		zap.String("payment_id", paymentID),
		zap.String("outcome", outcome.String()),
	)

	payment, err = s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, model.ErrTransient
	}
	return payment, nil
}

// IsOverdue reports whether a pending payment with no proof has outlived
// the payment window. Advisory only: nothing auto-cancels on expiry.
func IsOverdue(payment *model.Payment, now time.Time, window time.Duration) bool {
	if payment.Status != model.PaymentStatusPending || payment.ProofURL != "" {
		return false
	}
	return now.After(payment.CreatedAt.Add(window))
}

// TimeRemaining returns how long the customer still has to submit proof,
// zero once the window is spent or the countdown no longer applies.
func TimeRemaining(payment *model.Payment, now time.Time, window time.Duration) time.Duration {
	if payment.Status != model.PaymentStatusPending || payment.ProofURL != "" {
		return 0
	}
	left := payment.CreatedAt.Add(window).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// ShouldPoll reports whether the aggregate can still change out-of-band:
// a pending order, or a submitted proof awaiting verification. Terminal
// combinations stop the polling loop.
func ShouldPoll(order *model.Order, payment *model.Payment) bool {
	if order.Status.IsTerminal() {
		return false
	}
	if order.Status == model.OrderStatusPending {
		return true
	}
	return payment.Status == model.PaymentStatusPending && payment.ProofURL != ""
}
