package handler

import (
	"net/http"

	"growthmarket/internal/config"
	"growthmarket/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// クライアントからの入金証跡の受付（ログイン不要）
type PaymentHandler struct {
	uc *usecase.PaymentUsecase
}

func NewPaymentHandler(uc *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

type PaymentSubmitRequest struct {
	OrderID       string           `json:"orderId" validate:"required"`
	ClientName    string           `json:"clientName" validate:"required"`
	ClientEmail   string           `json:"clientEmail" validate:"required,email"`
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod string           `json:"paymentMethod" validate:"required,oneof=easypaisa jazzcash bankTransfer paypal googlePay"`
	TransactionID string           `json:"transactionId" validate:"required"`
	ScreenshotURL *string          `json:"screenshotUrl" validate:"omitempty,url"`
	Remarks       *string          `json:"remarks"`
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/payments", h.submit)
}

func (h *PaymentHandler) submit(c echo.Context) error {
	var req PaymentSubmitRequest
	if e := bindRequest(c, &req); e != nil {
		return c.JSON(http.StatusBadRequest, e)
	}

	out, err := h.uc.Submit(c.Request().Context(), usecase.PaymentSubmitInput{
		OrderID:       req.OrderID,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		ScreenshotURL: req.ScreenshotURL,
		Remarks:       req.Remarks,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
