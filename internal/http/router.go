package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "articleprompts/docs"
	"articleprompts/internal/handler"
)

func NewRouter(
	promptHandler *handler.PromptHandler,
	articleHandler *handler.ArticleHandler,
	settingsHandler *handler.SettingsHandler,
	staticDir string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLoggerMiddleware())
	// Articles are pasted whole; keep a ceiling well above any real page.
	e.Use(middleware.BodyLimit("8M"))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	promptHandler.RegisterRoutes(api)
	articleHandler.RegisterRoutes(api)
	settingsHandler.RegisterRoutes(api)

	registerStatic(e, staticDir)

	return e
}
