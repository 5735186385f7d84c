// Package catalog serves the read-only business directory and its filters.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/loczu/storefront/internal/models"
)

//go:embed businesses.yaml
var seedYAML []byte

type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type seed struct {
	Categories []Category        `yaml:"categories"`
	Businesses []models.Business `yaml:"businesses"`
}

type Catalog struct {
	categories []Category
	businesses []models.Business
}

// New loads the embedded seed directory.
func New() (*Catalog, error) {
	var s seed
	if err := yaml.Unmarshal(seedYAML, &s); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}
	return &Catalog{categories: s.Categories, businesses: s.Businesses}, nil
}

func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

func (c *Catalog) Businesses() []models.Business {
	out := make([]models.Business, len(c.businesses))
	copy(out, c.businesses)
	return out
}

func (c *Catalog) ByID(id string) (models.Business, bool) {
	for _, b := range c.businesses {
		if b.ID == id {
			return b, true
		}
	}
	return models.Business{}, false
}

// FindItem resolves an item ID to the item and its owning business.
func (c *Catalog) FindItem(itemID string) (models.Item, models.Business, bool) {
	for _, b := range c.businesses {
		for _, it := range b.Items {
			if it.ID == itemID {
				it.BusinessID = b.ID
				it.BusinessName = b.Name
				return it, b, true
			}
		}
	}
	return models.Item{}, models.Business{}, false
}

// Filter narrows the directory by category and free-text query. An empty
// category or query leaves that axis unfiltered; both compose with AND. The
// query matches case-insensitively against name, description and every
// service tag.
func Filter(businesses []models.Business, category, query string) []models.Business {
	out := make([]models.Business, 0, len(businesses))
	q := strings.ToLower(strings.TrimSpace(query))

	for _, b := range businesses {
		if category != "" && b.Category != category {
			continue
		}
		if q != "" && !matchesQuery(b, q) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesQuery(b models.Business, q string) bool {
	if strings.Contains(strings.ToLower(b.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(b.Description), q) {
		return true
	}
	for _, s := range b.Services {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// Filter on the catalog applies the package-level filter to the seed list.
func (c *Catalog) Filter(category, query string) []models.Business {
	return Filter(c.businesses, category, query)
}
