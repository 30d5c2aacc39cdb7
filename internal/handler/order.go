package handler

import (
	"net/http"

	"preorder-service/internal/dto"
	"preorder-service/internal/model"
	"preorder-service/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.orderService.CreateOrder(ctx, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, result)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.orderService.GetOrder(ctx, c.Param("orderID"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *OrderHandler) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.orderService.Cancel(ctx, c.Param("orderID"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *OrderHandler) ShippingSplit(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.orderService.ShippingSplit(ctx, c.Param("orderID"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// AdvanceStatus is the admin fulfillment step: PROCESSING, READY or
// COMPLETED, each validated against the current status.
func (h *OrderHandler) AdvanceStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AdvanceStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	target := model.OrderStatus(req.Status)
	if !target.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown order status")
	}

	result, err := h.orderService.AdvanceStatus(ctx, c.Param("orderID"), target)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
