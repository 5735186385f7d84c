package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/loczu/storefront/internal/cart"
	"github.com/loczu/storefront/internal/catalog"
	"github.com/loczu/storefront/internal/pricing"
	"github.com/loczu/storefront/internal/session"
	"github.com/loczu/storefront/internal/wishlist"
)

type Deps struct {
	Session  *session.Manager
	Cart     *cart.Manager
	Wishlist *wishlist.Manager
	Catalog  *catalog.Catalog
	Pricing  pricing.Config
	Searcher *catalog.Searcher
}

func NewServer(base *slog.Logger, d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), RequestLogger(base))

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	auth := &AuthHTTP{Session: d.Session}
	v1.POST("/auth/login", auth.Login)
	v1.POST("/auth/register", auth.Register)
	v1.POST("/auth/logout", auth.Logout)
	v1.GET("/me", auth.Me)

	catalogH := &CatalogHTTP{Catalog: d.Catalog, Searcher: d.Searcher}
	v1.GET("/categories", catalogH.Categories)
	v1.GET("/businesses", catalogH.Businesses)
	v1.GET("/businesses/:id", catalogH.Business)
	v1.GET("/search", catalogH.Search)

	cartH := &CartHTTP{Cart: d.Cart, Catalog: d.Catalog, Pricing: d.Pricing}
	cartGroup := v1.Group("/cart")
	cartGroup.GET("", cartH.Get)
	cartGroup.POST("/items", cartH.AddItem)
	cartGroup.PATCH("/items/:id", cartH.UpdateQuantity)
	cartGroup.DELETE("/items/:id", cartH.RemoveItem)
	cartGroup.DELETE("", cartH.Clear)

	wishlistH := &WishlistHTTP{Wishlist: d.Wishlist, Catalog: d.Catalog}
	v1.GET("/wishlist", wishlistH.Get)
	v1.POST("/wishlist/toggle", wishlistH.Toggle)
}
