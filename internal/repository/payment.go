package repository

import (
	"context"
	"time"

	"preorder-service/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error
	FindByID(ctx context.Context, paymentID string) (*model.Payment, error)
	FindByOrderID(ctx context.Context, tx *gorm.DB, orderID string) (*model.Payment, error)
	AssignBank(ctx context.Context, tx *gorm.DB, paymentID, bankID string) error
	SetProof(ctx context.Context, tx *gorm.DB, paymentID, proofURL string) error
	Finalize(ctx context.Context, tx *gorm.DB, paymentID string, outcome model.PaymentStatus) error
	ResetForRetry(ctx context.Context, tx *gorm.DB, paymentID string) error
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

func (r *paymentRepoImpl) Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepoImpl) FindByID(ctx context.Context, paymentID string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where("id = ?", paymentID).
		First(&payment).Error

	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepoImpl) FindByOrderID(ctx context.Context, tx *gorm.DB, orderID string) (*model.Payment, error) {
	var payment model.Payment
	err := tx.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&payment).Error

	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// AssignBank rebinds the settlement bank; allowed repeatedly while the
// payment is still PENDING.
func (r *paymentRepoImpl) AssignBank(ctx context.Context, tx *gorm.DB, paymentID, bankID string) error {
	result := tx.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ? AND status = ?", paymentID, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"bank_id":    bankID,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *paymentRepoImpl) SetProof(ctx context.Context, tx *gorm.DB, paymentID, proofURL string) error {
	result := tx.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ? AND status = ?", paymentID, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"proof_url":  proofURL,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Finalize records the verification outcome. The guard refuses payments
// already PAID or REFUNDED.
func (r *paymentRepoImpl) Finalize(ctx context.Context, tx *gorm.DB, paymentID string, outcome model.PaymentStatus) error {
	result := tx.WithContext(ctx).Model(&model.Payment{}).
		Where(`
			id = ?
			AND status IN ?
		`,
			paymentID,
			[]string{string(model.PaymentStatusPending), string(model.PaymentStatusFailed)},
		).
		Updates(map[string]interface{}{
			"status":     outcome,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// ResetForRetry moves FAILED back to PENDING and clears the rejected
// proof. The bank assignment is left alone.
func (r *paymentRepoImpl) ResetForRetry(ctx context.Context, tx *gorm.DB, paymentID string) error {
	result := tx.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ? AND status = ?", paymentID, model.PaymentStatusFailed).
		Updates(map[string]interface{}{
			"status":     model.PaymentStatusPending,
			"proof_url":  "",
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
