package repository

import (
	"context"

	"preorder-service/internal/model"

	"gorm.io/gorm"
)

// BankRepository is the read-only bank registry. Bank records are managed
// elsewhere; the lifecycle core only looks them up.
type BankRepository interface {
	ListActive(ctx context.Context) ([]*model.Bank, error)
	FindByID(ctx context.Context, bankID string) (*model.Bank, error)
}

type bankRepoImpl struct {
	db *gorm.DB
}

func NewBankRepository(db *gorm.DB) BankRepository {
	return &bankRepoImpl{
		db: db,
	}
}

func (r *bankRepoImpl) ListActive(ctx context.Context) ([]*model.Bank, error) {
	var banks []*model.Bank
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("code").
		Find(&banks).Error

	if err != nil {
		return nil, err
	}

	return banks, nil
}

func (r *bankRepoImpl) FindByID(ctx context.Context, bankID string) (*model.Bank, error) {
	var bank model.Bank
	err := r.db.WithContext(ctx).
		Where("id = ?", bankID).
		First(&bank).Error

	if err != nil {
		return nil, err
	}

	return &bank, nil
}
