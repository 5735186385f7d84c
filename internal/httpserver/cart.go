package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/loczu/storefront/internal/cart"
	"github.com/loczu/storefront/internal/catalog"
	"github.com/loczu/storefront/internal/logging"
	"github.com/loczu/storefront/internal/models"
	"github.com/loczu/storefront/internal/pricing"
)

type CartHTTP struct {
	Cart    *cart.Manager
	Catalog *catalog.Catalog
	Pricing pricing.Config
}

type cartResponse struct {
	Lines   []models.CartLine      `json:"lines"`
	Pricing models.PricingSnapshot `json:"pricing"`
}

func (h *CartHTTP) respond(c echo.Context, status int) error {
	lines := h.Cart.Lines()
	return c.JSON(status, cartResponse{
		Lines:   lines,
		Pricing: h.Pricing.Quote(lines, 0),
	})
}

func (h *CartHTTP) Get(c echo.Context) error {
	return h.respond(c, http.StatusOK)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req struct {
		ItemID string `json:"itemId"`
	}
	if err := c.Bind(&req); err != nil || req.ItemID == "" {
		l.Warn("add_to_cart_error", "status", 400)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "itemId required"})
	}

	item, _, ok := h.Catalog.FindItem(req.ItemID)
	if !ok {
		l.Warn("add_to_cart_error", "status", 404, "item_id", req.ItemID)
		return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
	}

	if _, err := h.Cart.AddItem(ctx, item); err != nil {
		return h.cartError(c, l, "add_to_cart_error", err)
	}

	l.Info("item added to cart", "item_id", req.ItemID)
	return h.respond(c, http.StatusCreated)
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	if err := h.Cart.UpdateQuantity(ctx, c.Param("id"), req.Quantity); err != nil {
		return h.cartError(c, l, "update_cart_error", err)
	}
	return h.respond(c, http.StatusOK)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	if err := h.Cart.RemoveItem(ctx, c.Param("id")); err != nil {
		return h.cartError(c, l, "remove_from_cart_error", err)
	}
	return h.respond(c, http.StatusOK)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	if err := h.Cart.Clear(ctx); err != nil {
		return h.cartError(c, l, "clear_cart_error", err)
	}
	l.Info("cart cleared")
	return h.respond(c, http.StatusOK)
}

func (h *CartHTTP) cartError(c echo.Context, l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, cart.ErrNotAuthenticated):
		l.Warn(event, "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	case errors.Is(err, cart.ErrValidation):
		l.Warn(event, "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		l.Error(event, "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
