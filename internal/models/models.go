package models

// User is the account record returned by the remote account API. It lives only
// for the duration of a session and is cleared on logout.
type User struct {
	ID                  string `json:"id"`
	Email               string `json:"email"`
	FullName            string `json:"fullName"`
	Phone               string `json:"phone"`
	UserType            string `json:"userType"`
	CustomerCategory    string `json:"customerCategory"`
	AdminRole           string `json:"adminRole"`
	SellerType          string `json:"sellerType"`
	IsActive            bool   `json:"isActive"`
	BusinessName        string `json:"businessName"`
	BusinessAddress     string `json:"businessAddress"`
	BusinessDescription string `json:"businessDescription"`
	CreatedAt           string `json:"createdAt"`
}

// Item is a single purchasable entry on a business menu.
type Item struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Price        float64 `json:"price" yaml:"price"`
	Image        string  `json:"image,omitempty" yaml:"image,omitempty"`
	BusinessID   string  `json:"businessId,omitempty" yaml:"businessId,omitempty"`
	BusinessName string  `json:"businessName,omitempty" yaml:"businessName,omitempty"`
}

// Business is read-only catalog data. The storefront never mutates it.
type Business struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Category     string   `json:"category" yaml:"category"`
	Description  string   `json:"description" yaml:"description"`
	Rating       float64  `json:"rating" yaml:"rating"`
	ReviewCount  int      `json:"reviewCount" yaml:"reviewCount"`
	PriceRange   string   `json:"priceRange" yaml:"priceRange"`
	DeliveryTime string   `json:"deliveryTime" yaml:"deliveryTime"`
	Address      string   `json:"address" yaml:"address"`
	Image        string   `json:"image,omitempty" yaml:"image,omitempty"`
	IsOpen       bool     `json:"isOpen" yaml:"isOpen"`
	Services     []string `json:"services" yaml:"services"`
	Featured     bool     `json:"featured" yaml:"featured"`
	Items        []Item   `json:"items" yaml:"items"`
}

// CartLine is one aggregated cart entry, keyed by item ID. At most one line
// exists per item ID and Quantity is always >= 1.
type CartLine struct {
	ItemID       string  `json:"itemId"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Quantity     uint    `json:"quantity"`
	Image        string  `json:"image,omitempty"`
	BusinessID   string  `json:"businessId"`
	BusinessName string  `json:"businessName"`
}

// WishlistEntry is a denormalized business snapshot, keyed by business ID.
type WishlistEntry struct {
	BusinessID string   `json:"businessId"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Rating     float64  `json:"rating"`
	PriceRange string   `json:"priceRange"`
	Image      string   `json:"image,omitempty"`
	IsOpen     bool     `json:"isOpen"`
	Services   []string `json:"services,omitempty"`
}

// SnapshotOf builds a wishlist entry from a catalog business.
func SnapshotOf(b Business) WishlistEntry {
	return WishlistEntry{
		BusinessID: b.ID,
		Name:       b.Name,
		Category:   b.Category,
		Rating:     b.Rating,
		PriceRange: b.PriceRange,
		Image:      b.Image,
		IsOpen:     b.IsOpen,
		Services:   b.Services,
	}
}

// PricingSnapshot is derived from the cart on demand and never persisted.
type PricingSnapshot struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Tax         float64 `json:"tax"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}
