package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loczu/storefront/internal/models"
)

func testDirectory() []models.Business {
	return []models.Business{
		{
			ID:          "1",
			Name:        "Mario's Italian Kitchen",
			Category:    "restaurants",
			Description: "Wood-fired pizza and fresh pasta",
			Services:    []string{"Dine-in", "Takeout", "Delivery"},
		},
		{
			ID:          "2",
			Name:        "Spice Garden Indian",
			Category:    "restaurants",
			Description: "Traditional Indian spices and flavors",
			Services:    []string{"Dine-in", "Delivery"},
		},
		{
			ID:          "3",
			Name:        "Elite Hair Studio",
			Category:    "beauty",
			Description: "Professional hair styling",
			Services:    []string{"Hair Cut", "Coloring"},
		},
		{
			ID:          "4",
			Name:        "Corner Deli",
			Category:    "grocery",
			Description: "Sandwiches and snacks",
			Services:    []string{"Pizza Slices", "Fresh Produce"},
		},
	}
}

func TestFilterByCategory(t *testing.T) {
	got := Filter(testDirectory(), "restaurants", "")
	require.Len(t, got, 2)
	for _, b := range got {
		assert.Equal(t, "restaurants", b.Category)
	}
}

func TestFilterByQueryIsCaseInsensitiveAcrossFields(t *testing.T) {
	dir := testDirectory()

	// matches description of business 1 and a service tag of business 4
	got := Filter(dir, "", "PIZZA")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "4", got[1].ID)

	// name match
	got = Filter(dir, "", "elite")
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

func TestFiltersComposeWithAND(t *testing.T) {
	// "pizza" appears in a restaurant and a grocery; category narrows it
	got := Filter(testDirectory(), "restaurants", "pizza")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got = Filter(testDirectory(), "grocery", "pizza")
	require.Len(t, got, 1)
	assert.Equal(t, "4", got[0].ID)
}

func TestEmptyFiltersReturnEverything(t *testing.T) {
	dir := testDirectory()
	got := Filter(dir, "", "")
	assert.Len(t, got, len(dir))

	got = Filter(dir, "", "   ")
	assert.Len(t, got, len(dir))
}

func TestSeedCatalogLoads(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	require.NotEmpty(t, c.Categories())
	require.NotEmpty(t, c.Businesses())

	mario, ok := c.ByID("1")
	require.True(t, ok)
	assert.Equal(t, "restaurants", mario.Category)
	require.NotEmpty(t, mario.Items)

	_, ok = c.ByID("does-not-exist")
	assert.False(t, ok)
}

func TestFindItemResolvesOwningBusiness(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	item, business, ok := c.FindItem("101")
	require.True(t, ok)
	assert.Equal(t, "Margherita Pizza", item.Name)
	assert.InDelta(t, 18.99, item.Price, 1e-9)
	assert.Equal(t, business.ID, item.BusinessID)
	assert.Equal(t, business.Name, item.BusinessName)

	_, _, ok = c.FindItem("999999")
	assert.False(t, ok)
}
