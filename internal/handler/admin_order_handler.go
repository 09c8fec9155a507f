package handler

import (
	"net/http"
	"strconv"
	"strings"

	"growthmarket/internal/config"
	"growthmarket/internal/domain/model"
	"growthmarket/internal/middleware"
	"growthmarket/internal/repository"
	"growthmarket/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type OrderStatusOverrideRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

// 個別項目の更新。status はここでは受け付けない。
type OrderDetailsPatchRequest struct {
	ClientName        *string          `json:"clientName"`
	ClientEmail       *string          `json:"clientEmail" validate:"omitempty,email"`
	ClientPhone       *string          `json:"clientPhone"`
	ProfileLink       *string          `json:"profileLink"`
	PostLink          *string          `json:"postLink"`
	SocialID          *string          `json:"socialId"`
	RequiredFollowers *int64           `json:"requiredFollowers"`
	Price             *decimal.Decimal `json:"price"`

	Status *string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg.JWT))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/orders", h.list)
	admin.PUT("/orders/:id/status", h.overrideStatus)
	admin.PATCH("/orders/:id", h.updateDetails)
	admin.DELETE("/orders/:id", h.delete)
	admin.GET("/audit-logs", h.auditLogs)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	page, limit, e := parsePaging(c)
	if e != nil {
		return c.JSON(http.StatusBadRequest, e)
	}

	f := repository.OrderListFilter{
		Page:        page,
		Limit:       limit,
		Status:      c.QueryParam("status"),
		UserID:      c.QueryParam("userId"),
		ClientEmail: c.QueryParam("clientEmail"),
		Sort:        repository.SortOrder(c.QueryParam("sort")),
	}

	if v := c.QueryParam("from"); v != "" {
		tm, ok := usecase.ParseDateTimeRFC3339(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		f.From = tm
	}
	if v := c.QueryParam("to"); v != "" {
		tm, ok := usecase.ParseDateTimeRFC3339(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		f.To = tm
	}

	out, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) overrideStatus(c echo.Context) error {
	var req OrderStatusOverrideRequest
	if e := bindRequest(c, &req); e != nil {
		return c.JSON(http.StatusBadRequest, e)
	}

	// 操作した管理者IDを取得（監査ログ用）
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.OverrideStatus(c.Request().Context(), adminID, c.Param("id"), usecase.AdminOverrideStatusInput{
		Status: req.Status,
		Reason: req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updateDetails(c echo.Context) error {
	var req OrderDetailsPatchRequest
	if e := bindRequest(c, &req); e != nil {
		return c.JSON(http.StatusBadRequest, e)
	}
	if req.Status != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status cannot be patched; use PUT /admin/orders/:id/status"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.UpdateDetails(c.Request().Context(), adminID, c.Param("id"), repository.OrderDetailsUpdate{
		ClientName:        req.ClientName,
		ClientEmail:       req.ClientEmail,
		ClientPhone:       req.ClientPhone,
		ProfileLink:       req.ProfileLink,
		PostLink:          req.PostLink,
		SocialID:          req.SocialID,
		RequiredFollowers: req.RequiredFollowers,
		Price:             req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) delete(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Delete(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *AdminOrderHandler) auditLogs(c echo.Context) error {
	var f repository.AuditLogFilter

	if v := strings.TrimSpace(c.QueryParam("actorUserId")); v != "" {
		f.ActorUserID = &v
	}
	if v := strings.TrimSpace(c.QueryParam("action")); v != "" {
		a := model.AuditAction(v)
		f.Action = &a
	}
	if v := strings.TrimSpace(c.QueryParam("resourceId")); v != "" {
		f.ResourceID = &v
	}
	if v := c.QueryParam("from"); v != "" {
		tm, ok := usecase.ParseDateTimeRFC3339(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		f.CreatedFrom = tm
	}
	if v := c.QueryParam("to"); v != "" {
		tm, ok := usecase.ParseDateTimeRFC3339(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		f.CreatedTo = tm
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		f.Limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		}
		f.Offset = n
	}

	out, err := h.uc.AuditLogs(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
