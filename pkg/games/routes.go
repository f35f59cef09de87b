package games

import (
	"github.com/labstack/echo/v4"
	"github.com/raihanakbr/rofind-fe/pkg/config"
)

// RegisterRoutes registers all game search routes.
func RegisterRoutes(e *echo.Echo, cfg *config.Config) *Service {
	searchService := NewService(cfg)

	h := &handler{
		searchService: searchService,
	}

	api := e.Group("/api")
	api.GET("/search", h.search)

	return searchService
}
