package service

import (
	"context"
	"testing"
	"time"

	"preorder-service/internal/dto"
	"preorder-service/internal/model"
	"preorder-service/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// one connection, or each pooled conn gets its own :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Store{},
		&model.Bundle{},
		&model.Bank{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
	))

	return db
}

type testEnv struct {
	db           *gorm.DB
	orders       OrderService
	payments     PaymentService
	verification VerificationService
	banks        BankService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := zap.NewNop()

	require.NoError(t, db.Create([]*model.Store{
		{ID: "store-alpha", Name: "Alpha Kitchen", IsActive: true},
		{ID: "store-beta", Name: "Beta Bakery", IsActive: true},
	}).Error)
	require.NoError(t, db.Create([]*model.Bundle{
		{ID: "bundle-alpha", StoreID: "store-alpha", Name: "Alpha Box", Price: 50000},
		{ID: "bundle-beta", StoreID: "store-beta", Name: "Beta Box", Price: 75000},
	}).Error)
	require.NoError(t, db.Create([]*model.Bank{
		{ID: "bank-bca", Name: "BCA", Code: "014", AccountNumber: "1234567890", AccountName: "Event Committee", IsActive: true},
		{ID: "bank-mandiri", Name: "Mandiri", Code: "008", AccountNumber: "9876543210", AccountName: "Event Committee", IsActive: true},
		{ID: "bank-retired", Name: "Retired Bank", Code: "999", AccountNumber: "0000000000", AccountName: "Event Committee", IsActive: false},
	}).Error)

	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	bankRepo := repository.NewBankRepository(db)
	bundleRepo := repository.NewBundleRepository(db)

	timing := Timing{PaymentWindow: 24 * time.Hour, PollInterval: 30 * time.Second}
	proofPolicy := ProofPolicy{
		MaxBytes:     5 << 20,
		AllowedTypes: []string{"image/jpeg", "image/png", "image/webp", "application/pdf"},
	}

	return &testEnv{
		db:           db,
		orders:       NewOrderService(db, orderRepo, paymentRepo, bundleRepo, timing, log),
		payments:     NewPaymentService(db, orderRepo, paymentRepo, bankRepo, proofPolicy, log),
		verification: NewVerificationService(db, orderRepo, paymentRepo, log),
		banks:        NewBankService(bankRepo, log),
	}
}

// placeOrder creates a one-store order with the given shipping fee and
// returns the aggregate.
func (e *testEnv) placeOrder(t *testing.T, serviceFee int64) *dto.OrderAggregate {
	t.Helper()

	agg, err := e.orders.CreateOrder(context.Background(), &dto.CreateOrderRequest{
		CustomerName: "Dina",
		ServiceFee:   serviceFee,
		Items: []*dto.CreateOrderItem{
			{BundleID: "bundle-alpha", Quantity: 2},
		},
	})
	require.NoError(t, err)
	return agg
}

func (e *testEnv) placeTwoStoreOrder(t *testing.T, serviceFee int64) *dto.OrderAggregate {
	t.Helper()

	agg, err := e.orders.CreateOrder(context.Background(), &dto.CreateOrderRequest{
		CustomerName: "Dina",
		ServiceFee:   serviceFee,
		Items: []*dto.CreateOrderItem{
			{BundleID: "bundle-alpha", Quantity: 1},
			{BundleID: "bundle-beta", Quantity: 1},
		},
	})
	require.NoError(t, err)
	return agg
}

func (e *testEnv) setOrderStatus(t *testing.T, orderID string, status model.OrderStatus) {
	t.Helper()
	require.NoError(t, e.db.Model(&model.Order{}).Where("id = ?", orderID).Update("status", status).Error)
}

func (e *testEnv) setPaymentStatus(t *testing.T, paymentID string, status model.PaymentStatus) {
	t.Helper()
	require.NoError(t, e.db.Model(&model.Payment{}).Where("id = ?", paymentID).Update("status", status).Error)
}

func (e *testEnv) loadOrder(t *testing.T, orderID string) *model.Order {
	t.Helper()
	var order model.Order
	require.NoError(t, e.db.Where("id = ?", orderID).First(&order).Error)
	return &order
}

func (e *testEnv) loadPayment(t *testing.T, paymentID string) *model.Payment {
	t.Helper()
	var payment model.Payment
	require.NoError(t, e.db.Where("id = ?", paymentID).First(&payment).Error)
	return &payment
}

func proofReq() *dto.SubmitProofRequest {
	return &dto.SubmitProofRequest{
		FileURL:     "https://cdn.example.com/proofs/tx-001.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   120 << 10,
	}
}
