package repository

import (
	"context"

	"preorder-service/internal/model"

	"gorm.io/gorm"
)

// BundleRepository gives order placement read access to the catalog.
type BundleRepository interface {
	FindByIDs(ctx context.Context, bundleIDs []string) ([]*model.Bundle, error)
}

type bundleRepoImpl struct {
	db *gorm.DB
}

func NewBundleRepository(db *gorm.DB) BundleRepository {
	return &bundleRepoImpl{
		db: db,
	}
}

func (r *bundleRepoImpl) FindByIDs(ctx context.Context, bundleIDs []string) ([]*model.Bundle, error) {
	var bundles []*model.Bundle
	err := r.db.WithContext(ctx).
		Where("id IN ?", bundleIDs).
		Find(&bundles).Error

	if err != nil {
		return nil, err
	}

	return bundles, nil
}
