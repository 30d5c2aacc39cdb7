package handler

import (
	"errors"
	"net/http"

	"preorder-service/internal/dto"
	"preorder-service/internal/model"

	"github.com/labstack/echo/v4"
)

// respondError maps domain error codes onto HTTP statuses with the stable
// message each kind carries. Anything else bubbles to Echo's handler.
func respondError(c echo.Context, err error) error {
	var de *model.DomainError
	if !errors.As(err, &de) {
		return err
	}

	return c.JSON(statusFor(de.Code), dto.ErrorResponse{Code: de.Code, Message: de.Message})
}

func statusFor(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "INVALID_INPUT", "INVALID_BANK", "INVALID_PROOF":
		return http.StatusUnprocessableEntity
	case "INVALID_TRANSITION", "CANCELLATION_NOT_ALLOWED", "ORDER_CLOSED", "PAYMENT_CLOSED", "ALREADY_FINALIZED":
		return http.StatusConflict
	case "TRANSIENT":
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
