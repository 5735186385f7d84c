package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/loczu/storefront/internal/catalog"
	"github.com/loczu/storefront/internal/logging"
)

type CatalogHTTP struct {
	Catalog  *catalog.Catalog
	Searcher *catalog.Searcher
}

func (h *CatalogHTTP) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.Categories())
}

// Businesses lists the directory, optionally narrowed by ?category= and ?q=.
func (h *CatalogHTTP) Businesses(c echo.Context) error {
	category := c.QueryParam("category")
	query := c.QueryParam("q")
	return c.JSON(http.StatusOK, h.Catalog.Filter(category, query))
}

func (h *CatalogHTTP) Business(c echo.Context) error {
	business, ok := h.Catalog.ByID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "business not found"})
	}
	return c.JSON(http.StatusOK, business)
}

// Search uses Elasticsearch when configured and falls back to the in-memory
// filter otherwise.
func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q required"})
	}

	from, _ := strconv.Atoi(c.QueryParam("from"))
	size, err := strconv.Atoi(c.QueryParam("size"))
	if err != nil || size <= 0 || size > 100 {
		size = 20
	}

	if h.Searcher != nil {
		total, hits, err := h.Searcher.Search(ctx, query, from, size)
		if err == nil {
			return c.JSON(http.StatusOK, echo.Map{"total": total, "businesses": hits})
		}
		l.Warn("search fallback to in-memory filter", "error", err)
	}

	results := h.Catalog.Filter("", query)
	return c.JSON(http.StatusOK, echo.Map{"total": len(results), "businesses": results})
}
