package handler

import (
	"errors"
	"net/http"
	"strconv"

	"growthmarket/internal/middleware"
	"growthmarket/internal/usecase"
	"growthmarket/internal/validator"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// usecase のエラーをステータスコードに変換して返す
func writeError(c echo.Context, err error) error {
	var he *usecase.HTTPError
	if errors.As(err, &he) {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// bind + validate。失敗時は 400 の本文を返す。
func bindRequest(c echo.Context, req any) *ErrorResponse {
	if err := c.Bind(req); err != nil {
		return &ErrorResponse{Error: "invalid body"}
	}
	if err := c.Validate(req); err != nil {
		return &ErrorResponse{Error: validator.Message(err)}
	}
	return nil
}

// AuthJWT が入れた user_id
func getUserIDFromContext(c echo.Context) (string, bool) {
	id, ok := c.Get(middleware.CtxUserIDKey).(string)
	return id, ok && id != ""
}

// page / limit クエリ（未指定は 1 / 50）
func parsePaging(c echo.Context) (int, int, *ErrorResponse) {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, &ErrorResponse{Error: "invalid page"}
		}
		page = p
	}

	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, &ErrorResponse{Error: "invalid limit"}
		}
		limit = l
	}
	return page, limit, nil
}
