package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/loczu/storefront/internal/catalog"
	"github.com/loczu/storefront/internal/logging"
	"github.com/loczu/storefront/internal/wishlist"
)

type WishlistHTTP struct {
	Wishlist *wishlist.Manager
	Catalog  *catalog.Catalog
}

func (h *WishlistHTTP) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Wishlist.Entries())
}

func (h *WishlistHTTP) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.toggle")

	var req struct {
		BusinessID string `json:"businessId"`
	}
	if err := c.Bind(&req); err != nil || req.BusinessID == "" {
		l.Warn("toggle_wishlist_error", "status", 400)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "businessId required"})
	}

	business, ok := h.Catalog.ByID(req.BusinessID)
	if !ok {
		l.Warn("toggle_wishlist_error", "status", 404, "business_id", req.BusinessID)
		return c.JSON(http.StatusNotFound, echo.Map{"error": "business not found"})
	}

	added, err := h.Wishlist.Toggle(ctx, business)
	if err != nil {
		if errors.Is(err, wishlist.ErrNotAuthenticated) {
			l.Warn("toggle_wishlist_error", "status", 401, "error", err)
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
		}
		l.Error("toggle_wishlist_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	l.Info("wishlist toggled", "business_id", req.BusinessID, "added", added)
	return c.JSON(http.StatusOK, echo.Map{
		"businessId": req.BusinessID,
		"added":      added,
		"entries":    h.Wishlist.Entries(),
	})
}
