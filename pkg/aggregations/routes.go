package aggregations

import (
	"github.com/labstack/echo/v4"
	"github.com/raihanakbr/rofind-fe/pkg/config"
)

// RegisterRoutes registers all aggregation routes.
func RegisterRoutes(e *echo.Echo, cfg *config.Config) *Service {
	aggregationService := NewService(cfg)

	h := &handler{
		aggregationService: aggregationService,
	}

	api := e.Group("/api")
	api.GET("/aggregations", h.retrieve)

	return aggregationService
}
