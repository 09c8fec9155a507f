package handler

import (
	"net/http"

	"growthmarket/internal/config"
	"growthmarket/internal/middleware"
	"growthmarket/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type RefundHandler struct {
	uc *usecase.RefundUsecase
}

func NewRefundHandler(uc *usecase.RefundUsecase) *RefundHandler {
	return &RefundHandler{uc: uc}
}

type RefundSubmitRequest struct {
	OrderID     string           `json:"orderId" validate:"required"`
	ClientEmail string           `json:"clientEmail" validate:"required,email"`
	ClientName  string           `json:"clientName" validate:"required"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Reason      string           `json:"reason" validate:"required"`
}

func (h *RefundHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/refunds", middleware.AuthJWT(cfg.JWT))
	g.POST("", h.submit)
	g.GET("", h.listMine)
}

func (h *RefundHandler) submit(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req RefundSubmitRequest
	if e := bindRequest(c, &req); e != nil {
		return c.JSON(http.StatusBadRequest, e)
	}

	out, err := h.uc.Submit(c.Request().Context(), userID, usecase.RefundSubmitInput{
		OrderID:     req.OrderID,
		ClientEmail: req.ClientEmail,
		ClientName:  req.ClientName,
		Amount:      req.Amount,
		Reason:      req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *RefundHandler) listMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	page, limit, e := parsePaging(c)
	if e != nil {
		return c.JSON(http.StatusBadRequest, e)
	}

	out, err := h.uc.ListMine(c.Request().Context(), userID, page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
