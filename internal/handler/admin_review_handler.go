package handler

import (
	"net/http"

	"growthmarket/internal/config"
	"growthmarket/internal/middleware"
	"growthmarket/internal/repository"
	"growthmarket/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理者による入金・返金の審査
type AdminReviewHandler struct {
	payments *usecase.PaymentUsecase
	refunds  *usecase.RefundUsecase
}

func NewAdminReviewHandler(payments *usecase.PaymentUsecase, refunds *usecase.RefundUsecase) *AdminReviewHandler {
	return &AdminReviewHandler{payments: payments, refunds: refunds}
}

type PaymentReviewRequest struct {
	Status  string  `json:"status" validate:"required"`
	Remarks *string `json:"remarks"`
}

type RefundReviewRequest struct {
	Status       string  `json:"status" validate:"required"`
	AdminRemarks *string `json:"adminRemarks"`
}

func (h *AdminReviewHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg.JWT))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/payments", h.listPayments)
	admin.GET("/payments/:id", h.getPayment)
	admin.PUT("/payments/:id/review", h.reviewPayment)
	admin.GET("/orders/:id/payments", h.paymentsByOrder)
	admin.GET("/refunds", h.listRefunds)
	admin.PUT("/refunds/:id/review", h.reviewRefund)
}

func (h *AdminReviewHandler) listPayments(c echo.Context) error {
	page, limit, e := parsePaging(c)
	if e != nil {
		return c.JSON(http.StatusBadRequest, e)
	}

	out, err := h.payments.List(c.Request().Context(), repository.PaymentListFilter{
		Page:    page,
		Limit:   limit,
		Status:  c.QueryParam("status"),
		OrderID: c.QueryParam("orderId"),
		Method:  c.QueryParam("paymentMethod"),
		Sort:    repository.SortOrder(c.QueryParam("sort")),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminReviewHandler) getPayment(c echo.Context) error {
	out, err := h.payments.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminReviewHandler) paymentsByOrder(c echo.Context) error {
	out, err := h.payments.ListByOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminReviewHandler) reviewPayment(c echo.Context) error {
	var req PaymentReviewRequest
	if e := bindRequest(c, &req); e != nil {
		return c.JSON(http.StatusBadRequest, e)
	}

	out, err := h.payments.Review(c.Request().Context(), c.Param("id"), usecase.PaymentReviewInput{
		Status:  req.Status,
		Remarks: req.Remarks,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminReviewHandler) listRefunds(c echo.Context) error {
	page, limit, e := parsePaging(c)
	if e != nil {
		return c.JSON(http.StatusBadRequest, e)
	}

	out, err := h.refunds.List(c.Request().Context(), repository.RefundListFilter{
		Page:    page,
		Limit:   limit,
		Status:  c.QueryParam("status"),
		UserID:  c.QueryParam("userId"),
		OrderID: c.QueryParam("orderId"),
		Sort:    repository.SortOrder(c.QueryParam("sort")),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminReviewHandler) reviewRefund(c echo.Context) error {
	var req RefundReviewRequest
	if e := bindRequest(c, &req); e != nil {
		return c.JSON(http.StatusBadRequest, e)
	}

	out, err := h.refunds.Review(c.Request().Context(), c.Param("id"), usecase.RefundReviewInput{
		Status:       req.Status,
		AdminRemarks: req.AdminRemarks,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
