package handler

import (
	"net/http"

	"growthmarket/internal/config"
	"growthmarket/internal/middleware"
	"growthmarket/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCreateRequest struct {
	ClientName        string           `json:"clientName" validate:"required"`
	ClientEmail       string           `json:"clientEmail" validate:"required,email"`
	ClientPhone       string           `json:"clientPhone" validate:"required"`
	Platform          string           `json:"platform" validate:"required,oneof=Instagram TikTok YouTube Facebook Twitter"`
	ProfileLink       string           `json:"profileLink" validate:"required,url"`
	PostLink          *string          `json:"postLink" validate:"omitempty,url"`
	SocialID          *string          `json:"socialId"`
	Service           string           `json:"service" validate:"required,oneof=Followers Likes Views Comments Subscribers"`
	RequiredFollowers int64            `json:"requiredFollowers" validate:"min=1"`
	Price             *decimal.Decimal `json:"price" validate:"required"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	auth := middleware.AuthJWT(cfg.JWT)

	e.POST("/orders", h.create, auth)
	e.GET("/orders", h.list, auth)
	//ID を知っていればステータスを参照できる
	e.GET("/orders/:id", h.detail)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req OrderCreateRequest
	if e := bindRequest(c, &req); e != nil {
		return c.JSON(http.StatusBadRequest, e)
	}

	out, err := h.uc.Create(c.Request().Context(), userID, usecase.OrderCreateInput{
		ClientName:        req.ClientName,
		ClientEmail:       req.ClientEmail,
		ClientPhone:       req.ClientPhone,
		Platform:          req.Platform,
		ProfileLink:       req.ProfileLink,
		PostLink:          req.PostLink,
		SocialID:          req.SocialID,
		Service:           req.Service,
		RequiredFollowers: req.RequiredFollowers,
		Price:             req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
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

func (h *OrderHandler) detail(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
