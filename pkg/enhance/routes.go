package enhance

import (
	"github.com/labstack/echo/v4"
	"github.com/raihanakbr/rofind-fe/pkg/config"
)

// RegisterRoutes registers all description-enhancement routes.
func RegisterRoutes(e *echo.Echo, cfg *config.Config) *Service {
	enhanceService := NewService(cfg)

	h := &handler{
		enhanceService: enhanceService,
	}

	api := e.Group("/api")
	api.POST("/enhance-description", h.enhanceDescription)

	return enhanceService
}
