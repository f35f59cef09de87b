package enhance

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/raihanakbr/rofind-fe/pkg/errcodes"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
)

type handler struct {
	enhanceService *Service
}

func (h *handler) enhanceDescription(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromEchoContext(c)

	params := DescriptionPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.enhanceService.EnhanceDescription(ctx, params)
	if err != nil {
		log.Err(err).Error("enhance description error")
		return errcodes.BadGateway("Search backend")
	}

	return c.JSON(http.StatusOK, result)
}
