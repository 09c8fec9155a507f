package server

import (
	"net/http"

	"growthmarket/internal/config"

	"github.com/labstack/echo/v4"
)

// handler ごとに自分のルートを登録する
type RouteRegistrar interface {
	RegisterRoutes(e *echo.Echo, cfg config.Config)
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, registrars ...RouteRegistrar) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	for _, r := range registrars {
		r.RegisterRoutes(e, cfg)
	}
}
