package server

import (
	"app/internal/handler"
	appmw "app/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// New builds the Echo instance with middleware and all routes registered.
// The caller owns the lifecycle (Start / Shutdown).
func New(logger *zap.Logger, productH *handler.ProductHandler, orderH *handler.OrderHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	// The browser front end is served from a different origin.
	e.Use(middleware.CORS())
	e.Use(appmw.RequestLogger(logger))

	productH.RegisterRoutes(e)
	orderH.RegisterRoutes(e)

	return e
}
