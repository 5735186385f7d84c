// Package pricing computes order totals from a cart snapshot. Quotes are pure
// and recomputed on every change, never cached.
package pricing

import (
	"math"

	"github.com/loczu/storefront/internal/models"
)

type Config struct {
	// Delivery is free when the subtotal is strictly above the threshold.
	FreeDeliveryThreshold float64
	DeliveryFee           float64
	TaxRate               float64
}

func DefaultConfig() Config {
	return Config{
		FreeDeliveryThreshold: 30.00,
		DeliveryFee:           5.99,
		TaxRate:               0.08,
	}
}

// Quote derives a pricing snapshot from the given lines. Tax applies to the
// subtotal only, regardless of fee or discount.
func (c Config) Quote(lines []models.CartLine, discount float64) models.PricingSnapshot {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.Price * float64(line.Quantity)
	}

	fee := c.DeliveryFee
	if subtotal > c.FreeDeliveryThreshold {
		fee = 0
	}

	tax := subtotal * c.TaxRate

	return models.PricingSnapshot{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Discount:    discount,
		Total:       subtotal + fee + tax - discount,
	}
}

// RoundDisplay rounds a monetary amount to two decimals for presentation.
func RoundDisplay(v float64) float64 {
	return math.Round(v*100) / 100
}
