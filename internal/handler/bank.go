package handler

import (
	"net/http"

	"preorder-service/internal/service"

	"github.com/labstack/echo/v4"
)

type BankHandler struct {
	bankService service.BankService
}

func NewBankHandler(bankService service.BankService) *BankHandler {
	return &BankHandler{
		bankService: bankService,
	}
}

func (h *BankHandler) ListBanks(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.bankService.ListActiveBanks(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
