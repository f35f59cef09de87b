package aggregations

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/raihanakbr/rofind-fe/pkg/errcodes"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
)

type handler struct {
	aggregationService *Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromEchoContext(c)

	set, err := h.aggregationService.Fetch(ctx)
	if err != nil {
		log.Err(err).Error("fetch aggregations error")
		return errcodes.BadGateway("Search backend")
	}

	return c.JSON(http.StatusOK, set)
}
