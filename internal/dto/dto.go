package dto

import "time"

type CreateOrderItem struct {
	BundleID string `json:"bundle_id"`
	Quantity int64  `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name"`
	Notes        string             `json:"notes"`
	PickupDate   *time.Time         `json:"pickup_date"`
	ServiceFee   int64              `json:"service_fee"`
	Items        []*CreateOrderItem `json:"items"`
}

type AssignBankRequest struct {
	BankID string `json:"bank_id"`
}

// SubmitProofRequest carries metadata about an already-uploaded transfer
// proof; the upload itself happens elsewhere.
type SubmitProofRequest struct {
	FileURL     string `json:"file_url"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

type VerifyRequest struct {
	Outcome string `json:"outcome"` // PAID | FAILED
}

type AdvanceStatusRequest struct {
	Status string `json:"status"` // PROCESSING | READY | COMPLETED
}

type BankResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

type OrderItemResponse struct {
	BundleID   string `json:"bundle_id"`
	StoreID    string `json:"store_id"`
	Quantity   int64  `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	TotalPrice int64  `json:"total_price"`
}

type PaymentResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Method    string    `json:"method"`
	ProofURL  string    `json:"proof_url,omitempty"`
	BankID    *string   `json:"bank_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderAggregate is the snapshot polling clients re-fetch. The derived
// flags tell them what they may still do and whether to keep polling.
type OrderAggregate struct {
	ID             string               `json:"id"`
	OrderNumber    string               `json:"order_number"`
	CustomerName   string               `json:"customer_name"`
	Status         string               `json:"status"`
	SubtotalAmount int64                `json:"subtotal_amount"`
	ServiceFee     int64                `json:"service_fee"`
	TotalAmount    int64                `json:"total_amount"`
	PickupDate     *time.Time           `json:"pickup_date,omitempty"`
	PickupStatus   string               `json:"pickup_status,omitempty"`
	Notes          string               `json:"notes,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	Items          []*OrderItemResponse `json:"items"`
	Payment        *PaymentResponse     `json:"payment"`
	Bank           *BankResponse        `json:"bank,omitempty"`

	IsOverdue            bool  `json:"is_overdue"`
	TimeRemainingSeconds int64 `json:"time_remaining_seconds"`
	CanCancel            bool  `json:"can_cancel"`
	CanUploadProof       bool  `json:"can_upload_proof"`
	ShouldPoll           bool  `json:"should_poll"`
	PollIntervalSeconds  int   `json:"poll_interval_seconds"`
}

type StoreFeeShare struct {
	StoreID string `json:"store_id"`
	Amount  int64  `json:"amount"`
}

type ShippingSplitResponse struct {
	OrderID    string          `json:"order_id"`
	ServiceFee int64           `json:"service_fee"`
	StoreCount int             `json:"store_count"`
	Shares     []StoreFeeShare `json:"shares"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
