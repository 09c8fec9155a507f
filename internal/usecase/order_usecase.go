package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"growthmarket/internal/domain/model"
	"growthmarket/internal/notification"
	repo "growthmarket/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	orders       repo.OrderRepository
	notifier     Notifier
	idGen        IDGenerator
	clock        Clock
	adminAddress string
	logger       *slog.Logger
}

func NewOrderUsecase(
	orders repo.OrderRepository,
	notifier Notifier,
	idGen IDGenerator,
	clock Clock,
	adminAddress string,
	logger *slog.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		orders:       orders,
		notifier:     notifier,
		idGen:        idGen,
		clock:        clock,
		adminAddress: strings.TrimSpace(adminAddress),
		logger:       logger,
	}
}

type OrderCreateInput struct {
	ClientName        string
	ClientEmail       string
	ClientPhone       string
	Platform          string
	ProfileLink       string
	PostLink          *string
	SocialID          *string
	Service           string
	RequiredFollowers int64
	Price             *decimal.Decimal
}

// 注文を受け付ける（Pending）
func (u *OrderUsecase) Create(ctx context.Context, userID string, in OrderCreateInput) (model.Order, error) {
	name := strings.TrimSpace(in.ClientName)
	email := strings.TrimSpace(in.ClientEmail)
	phone := strings.TrimSpace(in.ClientPhone)
	platform := model.Platform(strings.TrimSpace(in.Platform))
	service := model.Service(strings.TrimSpace(in.Service))
	profile := strings.TrimSpace(in.ProfileLink)

	switch {
	case name == "":
		return model.Order{}, missingField("clientName")
	case email == "":
		return model.Order{}, missingField("clientEmail")
	case phone == "":
		return model.Order{}, missingField("clientPhone")
	case platform == "":
		return model.Order{}, missingField("platform")
	case profile == "":
		return model.Order{}, missingField("profileLink")
	case service == "":
		return model.Order{}, missingField("service")
	case in.Price == nil:
		return model.Order{}, missingField("price")
	}
	if !validEmail(email) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid clientEmail")
	}
	if !platform.Valid() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid platform")
	}
	if !service.Valid() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid service")
	}
	if !validLink(profile) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid profileLink")
	}
	postLink := trimmedOrNil(in.PostLink)
	if postLink != nil && !validLink(*postLink) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid postLink")
	}
	if in.RequiredFollowers < 1 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "requiredFollowers must be at least 1")
	}
	if in.Price.IsNegative() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}

	now := u.clock.Now()
	o := model.Order{
		ID:                u.idGen.NewID(),
		UserID:            strings.TrimSpace(userID),
		ClientName:        name,
		ClientEmail:       email,
		ClientPhone:       phone,
		Platform:          platform,
		ProfileLink:       profile,
		PostLink:          postLink,
		SocialID:          trimmedOrNil(in.SocialID),
		Service:           service,
		RequiredFollowers: in.RequiredFollowers,
		Price:             *in.Price,
		Status:            model.OrderStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := u.orders.Create(ctx, o)
	if err != nil {
		u.logger.ErrorContext(ctx, "create order failed", slog.Any("error", err))
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.notifier.Dispatch(ctx, notification.OrderPlacedClient(created))
	if u.adminAddress != "" {
		u.notifier.Dispatch(ctx, notification.OrderPlacedAdmin(u.adminAddress, created))
	}
	return created, nil
}

// 注文ステータスの参照（ID を知っていれば誰でも）
func (u *OrderUsecase) Get(ctx context.Context, orderID string) (model.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
		}
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return o, nil
}

// 自分の注文一覧
func (u *OrderUsecase) ListMine(ctx context.Context, userID string, page int, limit int) (ListOutput[model.Order], error) {
	if strings.TrimSpace(userID) == "" {
		return ListOutput[model.Order]{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	page, limit = repo.NormalizePage(page, limit)

	items, total, err := u.orders.List(ctx, repo.OrderListFilter{UserID: userID, Page: page, Limit: limit, Sort: repo.SortNewest})
	if err != nil {
		return ListOutput[model.Order]{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ListOutput[model.Order]{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// http / https の絶対URLだけ受け付ける
func validLink(s string) bool {
	parsed, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
