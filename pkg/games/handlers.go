package games

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	searchService *Service
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Request().Context()

	params := SearchParams{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	outcome := h.searchService.Search(ctx, SearchOptions{
		Query:    params.Query,
		PageSize: DefaultPageSize,
		Page:     params.Page,
		MaxPages: DefaultMaxPages,
		UseLLM:   params.Enhance,
		Filters: &FilterSet{
			Creators:   splitList(params.Creators),
			GenreL1:    splitList(params.GenreL1),
			GenreL2:    splitList(params.GenreL2),
			MaxPlayers: params.Players,
		},
	})

	return c.JSON(http.StatusOK, outcome)
}

// splitList splits a comma-joined URL param, dropping blank entries so
// trailing commas and double commas don't turn into phantom filter values.
func splitList(param string) []string {
	if param == "" {
		return nil
	}

	parts := strings.Split(param, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			values = append(values, part)
		}
	}
	return values
}
