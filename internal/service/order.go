package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"preorder-service/internal/dto"
	"preorder-service/internal/model"
	"preorder-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Timing groups the configured durations the read model derives from.
type Timing struct {
	PaymentWindow time.Duration
	PollInterval  time.Duration
}

type OrderService interface {
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.OrderAggregate, error)
	GetOrder(ctx context.Context, orderID string) (*dto.OrderAggregate, error)
	Cancel(ctx context.Context, orderID string) (*dto.OrderAggregate, error)
	AdvanceStatus(ctx context.Context, orderID string, target model.OrderStatus) (*dto.OrderAggregate, error)
	ShippingSplit(ctx context.Context, orderID string) (*dto.ShippingSplitResponse, error)
}

type orderServiceImpl struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	bundleRepo  repository.BundleRepository
	timing      Timing
	logger      *zap.Logger
	now         func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	bundleRepo repository.BundleRepository,
	timing Timing,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		db:          db,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		bundleRepo:  bundleRepo,
		timing:      timing,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateOrder builds the whole aggregate in one transaction: order, items
// priced from the catalog, and a PENDING payment.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.OrderAggregate, error) {
	if len(req.Items) == 0 {
		return nil, model.ErrInvalidItems
	}
	if req.ServiceFee < 0 {
		return nil, model.ErrInvalidFee
	}

	bundleIDs := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, model.ErrInvalidItems
		}
		bundleIDs = append(bundleIDs, item.BundleID)
	}

	bundles, err := s.bundleRepo.FindByIDs(ctx, bundleIDs)
	if err != nil {
		s.logger.Error("load bundles", zap.Error(err))
		return nil, model.ErrTransient
	}
	bundleByID := make(map[string]*model.Bundle, len(bundles))
	for _, b := range bundles {
		bundleByID[b.ID] = b
	}

	now := s.now()
	order := &model.Order{
		ID:           uuid.NewString(),
		OrderNumber:  newOrderNumber(now),
		CustomerName: req.CustomerName,
		Status:       model.OrderStatusPending,
		ServiceFee:   req.ServiceFee,
		PickupDate:   req.PickupDate,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	items := make([]*model.OrderItem, 0, len(req.Items))
	var subtotal int64
	for _, reqItem := range req.Items {
		bundle, ok := bundleByID[reqItem.BundleID]
		if !ok {
			return nil, model.ErrBundleNotFound
		}
		total := reqItem.Quantity * bundle.Price
		subtotal += total
		items = append(items, &model.OrderItem{
			OrderID:    order.ID,
			BundleID:   bundle.ID,
			StoreID:    bundle.StoreID,
			Quantity:   reqItem.Quantity,
			UnitPrice:  bundle.Price,
			TotalPrice: total,
			CreatedAt:  now,
		})
	}
	order.SubtotalAmount = subtotal
	order.TotalAmount = subtotal + order.ServiceFee

	payment := &model.Payment{
		ID:        uuid.NewString(),
		OrderID:   order.ID,
		Status:    model.PaymentStatusPending,
		Method:    model.PaymentMethodBankTransfer,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return err
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
			return err
		}
		return s.paymentRepo.Create(ctx, tx, payment)
	})
	if err != nil {
		s.logger.Error("create order", zap.Error(err))
		return nil, model.ErrTransient
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Int64("total_amount", order.TotalAmount),
	)

	return s.GetOrder(ctx, order.ID)
}

// GetOrder returns the consistent aggregate snapshot polling clients
// re-fetch, with the derived eligibility flags of the moment.
func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID string) (*dto.OrderAggregate, error) {
	order, err := s.orderRepo.FindAggregate(ctx, orderID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, model.ErrOrderNotFound
		}
		s.logger.Error("load order", zap.String("order_id", orderID), zap.Error(err))
		return nil, model.ErrTransient
	}

	return s.toAggregate(order), nil
}

// Cancel closes a pending order. Permitted only while both the order and
// its payment are still PENDING; a submitted-but-unverified proof does not
// block it, a PAID payment does.
func (s *orderServiceImpl) Cancel(ctx context.Context, orderID string) (*dto.OrderAggregate, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.LockByID(ctx, tx, orderID)
		if err != nil {
			if repository.IsNotFound(err) {
				return model.ErrOrderNotFound
			}
			return err
		}

		if order.Status.IsTerminal() {
			return model.ErrOrderClosed
		}
		if order.Status != model.OrderStatusPending {
			return model.ErrCancellationNotAllowed
		}

		payment, err := s.paymentRepo.FindByOrderID(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		if payment.Status != model.PaymentStatusPending {
			return model.ErrCancellationNotAllowed
		}

		// cancellation leaves the payment record untouched
		return s.orderRepo.UpdateStatus(ctx, tx, order.ID, model.OrderStatusPending, model.OrderStatusCancelled)
	})
	if err != nil {
		if de := domainErr(err); de != nil {
			return nil, de
		}
		s.logger.Error("cancel order", zap.String("order_id", orderID), zap.Error(err))
		return nil, model.ErrTransient
	}

	s.logger.Info("order cancelled", zap.String("order_id", orderID))
	return s.GetOrder(ctx, orderID)
}

// AdvanceStatus applies one explicit fulfillment step. CONFIRMED and
// CANCELLED are never reachable through here; they belong to verification
// and cancellation.
func (s *orderServiceImpl) AdvanceStatus(ctx context.Context, orderID string, target model.OrderStatus) (*dto.OrderAggregate, error) {
	if !target.IsValid() || target == model.OrderStatusConfirmed || target == model.OrderStatusCancelled || target == model.OrderStatusPending {
		return nil, model.ErrInvalidTransition
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.LockByID(ctx, tx, orderID)
		if err != nil {
			if repository.IsNotFound(err) {
				return model.ErrOrderNotFound
			}
			return err
		}

		if order.Status.IsTerminal() {
			return model.ErrOrderClosed
		}
		if !order.Status.CanTransitionTo(target) {
			return model.ErrInvalidTransition
		}

		return s.orderRepo.UpdateStatus(ctx, tx, order.ID, order.Status, target)
	})
	if err != nil {
		if de := domainErr(err); de != nil {
			return nil, de
		}
		s.logger.Error("advance order status",
			zap.String("order_id", orderID),
			zap.String("target", target.String()),
			zap.Error(err),
		)
		return nil, model.ErrTransient
	}

	s.logger.Info("order status advanced",
		zap.String("order_id", orderID),
		zap.String("status", target.String()),
	)
	return s.GetOrder(ctx, orderID)
}

// ShippingSplit reports the per-store shares of the order's shipping fee.
func (s *orderServiceImpl) ShippingSplit(ctx context.Context, orderID string) (*dto.ShippingSplitResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, model.ErrOrderNotFound
		}
		s.logger.Error("load order", zap.String("order_id", orderID), zap.Error(err))
		return nil, model.ErrTransient
	}

	items, err := s.orderRepo.GetOrderItems(ctx, orderID)
	if err != nil {
		s.logger.Error("load order items", zap.String("order_id", orderID), zap.Error(err))
		return nil, model.ErrTransient
	}

	shares := ApportionServiceFee(items, order.ServiceFee)
	resp := &dto.ShippingSplitResponse{
		OrderID:    order.ID,
		ServiceFee: order.ServiceFee,
		StoreCount: len(shares),
		Shares:     make([]dto.StoreFeeShare, 0, len(shares)),
	}
	for _, share := range shares {
		resp.Shares = append(resp.Shares, dto.StoreFeeShare{StoreID: share.StoreID, Amount: share.Amount})
	}

	return resp, nil
}

func (s *orderServiceImpl) toAggregate(order *model.Order) *dto.OrderAggregate {
	agg := &dto.OrderAggregate{
		ID:                  order.ID,
		OrderNumber:         order.OrderNumber,
		CustomerName:        order.CustomerName,
		Status:              order.Status.String(),
		SubtotalAmount:      order.SubtotalAmount,
		ServiceFee:          order.ServiceFee,
		TotalAmount:         order.TotalAmount,
		PickupDate:          order.PickupDate,
		PickupStatus:        order.PickupStatus,
		Notes:               order.Notes,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
		Items:               make([]*dto.OrderItemResponse, 0, len(order.Items)),
		PollIntervalSeconds: int(s.timing.PollInterval / time.Second),
	}

	for _, item := range order.Items {
		agg.Items = append(agg.Items, &dto.OrderItemResponse{
			BundleID:   item.BundleID,
			StoreID:    item.StoreID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}

	if order.Bank != nil {
		agg.Bank = &dto.BankResponse{
			ID:            order.Bank.ID,
			Name:          order.Bank.Name,
			Code:          order.Bank.Code,
			AccountNumber: order.Bank.AccountNumber,
			AccountName:   order.Bank.AccountName,
		}
	}

	if order.Payment != nil {
		payment := order.Payment
		agg.Payment = &dto.PaymentResponse{
			ID:        payment.ID,
			Status:    payment.Status.String(),
			Method:    payment.Method,
			ProofURL:  payment.ProofURL,
			BankID:    payment.BankID,
			CreatedAt: payment.CreatedAt,
			UpdatedAt: payment.UpdatedAt,
		}

		now := s.now()
		agg.IsOverdue = IsOverdue(payment, now, s.timing.PaymentWindow)
		agg.TimeRemainingSeconds = int64(TimeRemaining(payment, now, s.timing.PaymentWindow) / time.Second)
		agg.CanCancel = order.Status == model.OrderStatusPending && payment.Status == model.PaymentStatusPending
		agg.CanUploadProof = order.Status != model.OrderStatusCancelled &&
			payment.Status == model.PaymentStatusPending &&
			payment.BankID != nil
		agg.ShouldPoll = ShouldPoll(order, payment)
	}

	return agg
}

func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("PO-%s-%s", now.Format("20060102"), suffix)
}
