package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/raihanakbr/rofind-fe/pkg/aggregations"
	"github.com/raihanakbr/rofind-fe/pkg/binder"
	"github.com/raihanakbr/rofind-fe/pkg/config"
	"github.com/raihanakbr/rofind-fe/pkg/enhance"
	"github.com/raihanakbr/rofind-fe/pkg/errcodes"
	"github.com/raihanakbr/rofind-fe/pkg/games"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
)

func New(cfg *config.Config) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
	}))

	health.RegisterRoutes(e)

	games.RegisterRoutes(e, cfg)
	aggregations.RegisterRoutes(e, cfg)
	enhance.RegisterRoutes(e, cfg)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
