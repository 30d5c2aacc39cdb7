package model

// DomainError is a business-rule violation with a stable code and a
// message specific enough to show to the caller as-is.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

var (
	ErrOrderNotFound   = NewDomainError("NOT_FOUND", "order not found")
	ErrPaymentNotFound = NewDomainError("NOT_FOUND", "payment not found")
	ErrBundleNotFound  = NewDomainError("INVALID_INPUT", "one or more bundles do not exist")
	ErrInvalidItems    = NewDomainError("INVALID_INPUT", "order needs at least one item with a positive quantity")
	ErrInvalidFee      = NewDomainError("INVALID_INPUT", "service fee cannot be negative")

	ErrInvalidTransition      = NewDomainError("INVALID_TRANSITION", "order status cannot change this way from its current status")
	ErrCancellationNotAllowed = NewDomainError("CANCELLATION_NOT_ALLOWED", "this order can no longer be cancelled")
	ErrOrderClosed            = NewDomainError("ORDER_CLOSED", "this order is closed and accepts no further changes")
	ErrPaymentClosed          = NewDomainError("PAYMENT_CLOSED", "this payment accepts no further changes")
	ErrInvalidBank            = NewDomainError("INVALID_BANK", "this bank is not available")
	ErrBankNotAssigned        = NewDomainError("INVALID_BANK", "assign a bank account before submitting payment proof")
	ErrInvalidProofType       = NewDomainError("INVALID_PROOF", "payment proof must be an image or a PDF")
	ErrProofTooLarge          = NewDomainError("INVALID_PROOF", "payment proof exceeds the maximum allowed size")
	ErrAlreadyFinalized       = NewDomainError("ALREADY_FINALIZED", "this payment has already been verified")

	// ErrTransient covers storage-level failures the caller should retry.
	ErrTransient = NewDomainError("TRANSIENT", "a temporary storage error occurred, please retry")
)
