package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"issues-dashboard/internal/apiclient"
	"issues-dashboard/internal/routes"
	"issues-dashboard/pkg/config"
	apperrors "issues-dashboard/pkg/errors"
	applogger "issues-dashboard/pkg/logger"
	appmiddleware "issues-dashboard/pkg/middleware"
	"issues-dashboard/pkg/renderer"
	"issues-dashboard/pkg/utils"
)

func main() {
	e := echo.New()
	e.HideBanner = true

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Logging.Path)

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Internal server error", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(appmiddleware.RequestLogger(logger))

	v := validator.New()
	e.Validator = utils.NewValidator(v)

	r, err := renderer.New("./web/templates/*.html")
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}
	e.Renderer = r
	e.Static("/static", "web/static")

	api := apiclient.New(cfg.Upstream, logger)

	loggers := &routes.Loggers{
		Main:      logger,
		Auth:      logger.Named("auth"),
		Dashboard: logger.Named("dashboard"),
		Users:     logger.Named("users"),
	}
	refresh := routes.InitRouter(e, api, cfg, loggers)

	go func() {
		logger.Info("dashboard listening", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server start failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	refresh.StopAll()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
}
