package services_test

import (
	"sort"
	"testing"

	"github.com/souqdz/souq/app/models"
	"github.com/souqdz/souq/app/repositories"
	"github.com/souqdz/souq/app/services"
	"github.com/souqdz/souq/pkg/database"
	"github.com/stretchr/testify/require"
)

func newCatalogService() *services.CatalogService {
	return services.NewCatalogService(
		repositories.NewProductRepository(),
		repositories.NewCategoryRepository(),
	)
}

func seedCatalog(t *testing.T) {
	t.Helper()
	svc := newProductService()

	for _, p := range []struct {
		name  string
		price float64
		stock int
	}{
		{"Cheap Thing", 100, 5},
		{"Mid Thing", 500, 5},
		{"Pricey Thing", 900, 5},
		{"Sold Out Thing", 50, 0},
	} {
		_, err := svc.Create(services.ProductInput{
			Name:    p.name,
			Price:   p.price,
			Stock:   p.stock,
			Gallery: []string{"a.jpg"},
		})
		require.NoError(t, err)
	}
}

func TestProductsSorting(t *testing.T) {
	setupDB(t)
	seedCatalog(t)
	svc := newCatalogService()

	lowHigh, _, err := svc.Products(0, "low-high", 1, 50)
	require.NoError(t, err)
	require.True(t, sort.SliceIsSorted(lowHigh, func(i, j int) bool {
		return lowHigh[i].Price < lowHigh[j].Price
	}))

	highLow, _, err := svc.Products(0, "high-low", 1, 50)
	require.NoError(t, err)
	require.True(t, sort.SliceIsSorted(highLow, func(i, j int) bool {
		return highLow[i].Price > highLow[j].Price
	}))

	// Inactive products never show in the storefront listing.
	for _, p := range lowHigh {
		require.True(t, p.Active)
	}
	require.Len(t, lowHigh, 3)
}

func TestSearch(t *testing.T) {
	setupDB(t)
	seedCatalog(t)
	svc := newCatalogService()

	hit, err := svc.Search("pricey")
	require.NoError(t, err)
	require.Equal(t, "Pricey Thing", hit.Name)

	_, err = svc.Search("nonexistent")
	require.ErrorIs(t, err, services.ErrNoMatch)

	// Sold-out products are not searchable.
	_, err = svc.Search("sold out")
	require.ErrorIs(t, err, services.ErrNoMatch)
}

func TestRelated(t *testing.T) {
	setupDB(t)

	category := models.Category{Name: "Shoes"}
	require.NoError(t, database.DB.Create(&category).Error)

	svc := newProductService()
	var slugs []string
	for _, name := range []string{"Runner A", "Runner B", "Runner C"} {
		p, err := svc.Create(services.ProductInput{
			Name:       name,
			Price:      100,
			Stock:      1,
			CategoryID: category.ID,
			Gallery:    []string{"a.jpg"},
		})
		require.NoError(t, err)
		slugs = append(slugs, p.Slug)
	}

	related, err := newCatalogService().Related(slugs[0])
	require.NoError(t, err)
	require.Len(t, related, 2)
	for _, r := range related {
		require.NotEqual(t, slugs[0], r.Slug)
	}
}

func TestHomeCategories(t *testing.T) {
	setupDB(t)
	for _, name := range []string{"A", "B", "C", "D", "E", "F"} {
		require.NoError(t, database.DB.Create(&models.Category{Name: name}).Error)
	}

	categories, err := newCatalogService().HomeCategories()
	require.NoError(t, err)
	require.Len(t, categories, 4)
}

func TestNewArrivalsCapAndOrder(t *testing.T) {
	setupDB(t)
	seedCatalog(t)

	arrivals, err := newCatalogService().NewArrivals()
	require.NoError(t, err)
	require.LessOrEqual(t, len(arrivals), 4)
	for _, p := range arrivals {
		require.True(t, p.Active)
	}
}
