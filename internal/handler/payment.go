package handler

import (
	"net/http"

	"preorder-service/internal/dto"
	"preorder-service/internal/model"
	"preorder-service/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService      service.PaymentService
	verificationService service.VerificationService
}

func NewPaymentHandler(paymentService service.PaymentService, verificationService service.VerificationService) *PaymentHandler {
	return &PaymentHandler{
		paymentService:      paymentService,
		verificationService: verificationService,
	}
}

func toPaymentResponse(payment *model.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:        payment.ID,
		Status:    payment.Status.String(),
		Method:    payment.Method,
		ProofURL:  payment.ProofURL,
		BankID:    payment.BankID,
		CreatedAt: payment.CreatedAt,
		UpdatedAt: payment.UpdatedAt,
	}
}

func (h *PaymentHandler) AssignBank(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AssignBankRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.BankID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing bank_id")
	}

	result, err := h.paymentService.AssignBank(ctx, c.Param("orderID"), req.BankID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toPaymentResponse(result))
}

func (h *PaymentHandler) SubmitProof(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SubmitProofRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.FileURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file_url")
	}

	result, err := h.paymentService.SubmitProof(ctx, c.Param("paymentID"), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toPaymentResponse(result))
}

func (h *PaymentHandler) RetryPayment(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.paymentService.Retry(ctx, c.Param("paymentID"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toPaymentResponse(result))
}

// VerifyPayment is called by the admin after checking the transfer proof
// against the bank statement.
func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	outcome := model.PaymentStatus(req.Outcome)
	if outcome != model.PaymentStatusPaid && outcome != model.PaymentStatusFailed {
		return echo.NewHTTPError(http.StatusBadRequest, "outcome must be PAID or FAILED")
	}

	result, err := h.verificationService.Verify(ctx, c.Param("paymentID"), outcome)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toPaymentResponse(result))
}
