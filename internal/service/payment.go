package service

import (
	"context"
	"strings"

	"preorder-service/internal/dto"
	"preorder-service/internal/model"
	"preorder-service/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProofPolicy bounds the metadata a customer may submit as transfer proof.
// The artifact itself is uploaded and stored elsewhere.
type ProofPolicy struct {
	MaxBytes     int64
	AllowedTypes []string
}

func (p ProofPolicy) allows(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	for _, t := range p.AllowedTypes {
		if contentType == t {
			return true
		}
	}
	return false
}

type PaymentService interface {
	AssignBank(ctx context.Context, orderID, bankID string) (*model.Payment, error)
	SubmitProof(ctx context.Context, paymentID string, req *dto.SubmitProofRequest) (*model.Payment, error)
	Retry(ctx context.Context, paymentID string) (*model.Payment, error)
}

type paymentServiceImpl struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	bankRepo    repository.BankRepository
	proofPolicy ProofPolicy
	logger      *zap.Logger
}

func NewPaymentService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	bankRepo repository.BankRepository,
	proofPolicy ProofPolicy,
	logger *zap.Logger,
) PaymentService {
	return &paymentServiceImpl{
		db:          db,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		bankRepo:    bankRepo,
		proofPolicy: proofPolicy,
		logger:      logger,
	}
}

// AssignBank binds (or rebinds) the settlement account for an order's
// payment. Allowed repeatedly until the payment is verified.
func (s *paymentServiceImpl) AssignBank(ctx context.Context, orderID, bankID string) (*model.Payment, error) {
	bank, err := s.bankRepo.FindByID(ctx, bankID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, model.ErrInvalidBank
		}
		s.logger.Error("load bank", zap.String("bank_id", bankID), zap.Error(err))
		return nil, model.ErrTransient
	}
	if !bank.IsActive {
		return nil, model.ErrInvalidBank
	}

	var payment *model.Payment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.LockByID(ctx, tx, orderID)
		if err != nil {
			if repository.IsNotFound(err) {
				return model.ErrOrderNotFound
			}
			return err
		}

		payment, err = s.paymentRepo.FindByOrderID(ctx, tx, order.ID)
		if err != nil {
			return err
		}

		if order.Status == model.OrderStatusCancelled || payment.Status != model.PaymentStatusPending {
			return model.ErrPaymentClosed
		}

		if err := s.paymentRepo.AssignBank(ctx, tx, payment.ID, bank.ID); err != nil {
			return err
		}
		return s.orderRepo.SetBank(ctx, tx, order.ID, bank.ID)
	})
	if err != nil {
		if de := domainErr(err); de != nil {
			return nil, de
		}
		s.logger.Error("assign bank", zap.String("order_id", orderID), zap.Error(err))
		return nil, model.ErrTransient
	}

	return s.reread(ctx, payment.ID)
}

// SubmitProof records the reference to an uploaded transfer proof. It
// never advances the payment status; verification stays with the admin.
func (s *paymentServiceImpl) SubmitProof(ctx context.Context, paymentID string, req *dto.SubmitProofRequest) (*model.Payment, error) {
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

		payment, err = s.paymentRepo.FindByOrderID(ctx, tx, order.ID)
		if err != nil {
			return err
		}

		if order.Status == model.OrderStatusCancelled || payment.Status != model.PaymentStatusPending {
			return model.ErrPaymentClosed
		}
		if payment.BankID == nil {
			return model.ErrBankNotAssigned
		}

		// metadata checks fail before any write
		if !s.proofPolicy.allows(req.ContentType) {
			return model.ErrInvalidProofType
		}
		if req.SizeBytes <= 0 || req.SizeBytes > s.proofPolicy.MaxBytes {
			return model.ErrProofTooLarge
		}

		return s.paymentRepo.SetProof(ctx, tx, payment.ID, req.FileURL)
	})
	if err != nil {
		if de := domainErr(err); de != nil {
			return nil, de
		}
		s.logger.Error("submit proof", zap.String("payment_id", paymentID), zap.Error(err))
		return nil, model.ErrTransient
	}

	s.logger.Info("payment proof submitted", zap.String("payment_id", paymentID))
	return s.reread(ctx, payment.ID)
}

// Retry resets a FAILED payment to PENDING and clears the rejected proof
// so the customer can transfer and submit again. The bank assignment is
// kept. Only pending orders can retry.
func (s *paymentServiceImpl) Retry(ctx context.Context, paymentID string) (*model.Payment, error) {
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

		payment, err = s.paymentRepo.FindByOrderID(ctx, tx, order.ID)
		if err != nil {
			return err
		}

		if payment.Status.IsFinal() {
			return model.ErrAlreadyFinalized
		}
		if order.Status != model.OrderStatusPending {
			return model.ErrOrderClosed
		}
		if payment.Status != model.PaymentStatusFailed {
			return model.ErrInvalidTransition
		}

		return s.paymentRepo.ResetForRetry(ctx, tx, payment.ID)
	})
	if err != nil {
		if de := domainErr(err); de != nil {
			return nil, de
		}
		s.logger.Error("retry payment", zap.String("payment_id", paymentID), zap.Error(err))
		return nil, model.ErrTransient
	}

	s.logger.Info("payment reset for retry", zap.String("payment_id", paymentID))
	return s.reread(ctx, payment.ID)
}

// reread loads the payment after the mutating transaction committed so
// callers see the persisted row, including its refreshed updated_at.
func (s *paymentServiceImpl) reread(ctx context.Context, paymentID string) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		s.logger.Error("reload payment", zap.String("payment_id", paymentID), zap.Error(err))
		return nil, model.ErrTransient
	}
	return payment, nil
}
