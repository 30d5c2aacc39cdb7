package model

import "time"

// PaymentMethodBankTransfer is the only method this event supports.
const PaymentMethodBankTransfer = "BANK_TRANSFER"

type Store struct {
	ID       string `gorm:"primaryKey;size:64;not null"`
	Name     string `gorm:"size:128;not null"`
	IsActive bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Bundle struct {
	ID string `gorm:"primaryKey;size:64;not null"`
	// FK → store.id
	StoreID string `gorm:"size:64;index;not null"`
	Name    string `gorm:"size:128;not null"`
	Price   int64  `gorm:"not null"` // minor units (rupiah)

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Bank struct {
	ID            string `gorm:"primaryKey;size:64;not null"`
	Name          string `gorm:"size:64;not null"`
	Code          string `gorm:"size:16;uniqueIndex;not null"`
	AccountNumber string `gorm:"size:32;not null"`
	AccountName   string `gorm:"size:128;not null"`
	IsActive      bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Order struct {
	ID             string      `gorm:"primaryKey;size:64;not null"`
	OrderNumber    string      `gorm:"size:32;uniqueIndex;not null"`
	CustomerName   string      `gorm:"size:128"`
	Status         OrderStatus `gorm:"size:32;index;not null"` // PENDING, CONFIRMED, PROCESSING, READY, COMPLETED, CANCELLED
	SubtotalAmount int64       `gorm:"not null"`               // sum of item totals
	ServiceFee     int64       `gorm:"not null"`               // order-level shipping fee
	TotalAmount    int64       `gorm:"not null"`               // subtotal + service fee
	PickupDate     *time.Time
	PickupStatus   string `gorm:"size:32"`
	Notes          string `gorm:"size:512"`
	// FK → bank.id, mirrors payment.bank_id until verification
	BankID *string `gorm:"size:64;index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Items   []OrderItem `gorm:"foreignKey:OrderID"`
	Payment *Payment    `gorm:"foreignKey:OrderID"`
	Bank    *Bank       `gorm:"foreignKey:BankID"`
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → order.id
	OrderID string `gorm:"size:64;index;not null"`
	// FK → bundle.id
	BundleID string `gorm:"size:64;index;not null"`
	// denormalized from the bundle so fee apportionment needs no join
	StoreID    string `gorm:"size:64;index;not null"`
	Quantity   int64  `gorm:"not null"`
	UnitPrice  int64  `gorm:"not null"`
	TotalPrice int64  `gorm:"not null"` // quantity * unit price

	CreatedAt time.Time
}

type Payment struct {
	ID string `gorm:"primaryKey;size:64;not null"`
	// FK → order.id, exactly one payment per order
	OrderID  string        `gorm:"size:64;uniqueIndex;not null"`
	Status   PaymentStatus `gorm:"size:32;index;not null"` // PENDING, PAID, FAILED, REFUNDED
	Method   string        `gorm:"size:32;not null"`
	ProofURL string        `gorm:"size:512"`
	// FK → bank.id
	BankID *string `gorm:"size:64;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
