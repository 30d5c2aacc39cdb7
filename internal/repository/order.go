package repository

import (
	"context"
	"errors"
	"time"

	"preorder-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	FindAggregate(ctx context.Context, orderID string) (*model.Order, error)
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	LockByID(ctx context.Context, tx *gorm.DB, orderID string) (*model.Order, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, orderID string, from, to model.OrderStatus) error
	SetBank(ctx context.Context, tx *gorm.DB, orderID, bankID string) error
	GetOrderItems(ctx context.Context, orderID string) ([]*model.OrderItem, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

// FindAggregate reads an order with its items, payment and assigned bank
// as one consistent snapshot. The row read and the preloads share a
// single transaction; a verify committing in between cannot tear them.
func (r *orderRepoImpl) FindAggregate(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Preload("Items").
			Preload("Payment").
			Preload("Bank").
			Where("id = ?", orderID).
			First(&order).Error
	})

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

// LockByID reads the order row for update. The order row is the unit of
// mutual exclusion: every mutation locks it before touching the payment.
func (r *orderRepoImpl) LockByID(ctx context.Context, tx *gorm.DB, orderID string) (*model.Order, error) {
	q := tx.WithContext(ctx)
	// sqlite has no FOR UPDATE; its single-writer model covers the tests
	if tx.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var order model.Order
	err := q.Where("id = ?", orderID).First(&order).Error
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// UpdateStatus applies from→to conditionally; the guard re-checks the
// precondition inside the transaction.
func (r *orderRepoImpl) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID string, from, to model.OrderStatus) error {
	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(map[string]interface{}{
			"status":     to,
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

func (r *orderRepoImpl) SetBank(ctx context.Context, tx *gorm.DB, orderID, bankID string) error {
	return tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"bank_id":    bankID,
			"updated_at": time.Now(),
		}).Error
}

func (r *orderRepoImpl) GetOrderItems(ctx context.Context, orderID string) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

// IsNotFound reports whether err is the storage-level missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
