package services_test

import (
	"strings"
	"testing"

	"github.com/souqdz/souq/app/models"
	"github.com/souqdz/souq/app/repositories"
	"github.com/souqdz/souq/app/services"
	"github.com/souqdz/souq/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{}, &models.Product{}, &models.Order{}, &models.User{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
}

func newProductService() *services.ProductService {
	return services.NewProductService(
		repositories.NewProductRepository(),
		repositories.NewCategoryRepository(),
	)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Red Shoes":        "red-shoes",
		"  Red   Shoes  ":  "red-shoes",
		"Café & Croissant": "caf-croissant",
		"UPPER_case":       "uppercase",
		"123 go!":          "123-go",
	}
	for in, want := range cases {
		if got := services.Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseList(t *testing.T) {
	require.Equal(t, models.StringList{"S", "M"}, services.ParseList("S, M ,"))
	require.Nil(t, services.ParseList(""))
	require.Nil(t, services.ParseList(" , , "))
	require.Equal(t, models.StringList{"Red"}, services.ParseList("Red"))
}

func TestCreateMintsSlugAndDerivesActive(t *testing.T) {
	setupDB(t)
	svc := newProductService()

	product, err := svc.Create(services.ProductInput{
		Name:    "Red Shoes",
		Price:   4500,
		Stock:   3,
		Gallery: []string{"a.jpg", "b.jpg"},
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(product.Slug, "red-shoes-"))
	require.True(t, product.Active)
	require.Equal(t, "a.jpg", product.ImageURL)

	// Zero stock means inactive, regardless of what was stored before.
	updated, err := svc.Update(product.ID, services.ProductInput{
		Name:    "Red Shoes",
		Price:   4500,
		Stock:   0,
		Gallery: []string{"a.jpg"},
	})
	require.NoError(t, err)
	require.False(t, updated.Active)
	require.Equal(t, product.Slug, updated.Slug, "slug must not change on update")
}

func TestGalleryCap(t *testing.T) {
	setupDB(t)
	svc := newProductService()

	gallery := make([]string, models.MaxGalleryImages+1)
	for i := range gallery {
		gallery[i] = "img.jpg"
	}

	_, err := svc.Create(services.ProductInput{
		Name:    "Overfull",
		Price:   100,
		Gallery: gallery,
	})
	require.ErrorIs(t, err, services.ErrGalleryFull)

	_, err = svc.Create(services.ProductInput{Name: "Bare", Price: 100})
	require.ErrorIs(t, err, services.ErrGalleryEmpty)
}

func TestPrimaryIndexClamp(t *testing.T) {
	setupDB(t)
	svc := newProductService()

	product, err := svc.Create(services.ProductInput{
		Name:         "Clamped",
		Price:        100,
		Stock:        1,
		Gallery:      []string{"a.jpg", "b.jpg"},
		PrimaryIndex: 9,
	})
	require.NoError(t, err)
	require.Equal(t, "a.jpg", product.ImageURL, "out-of-range primary falls back to first image")
}

func TestRemoveGalleryImage(t *testing.T) {
	setupDB(t)
	svc := newProductService()

	product, err := svc.Create(services.ProductInput{
		Name:         "Gallery",
		Price:        100,
		Stock:        1,
		Gallery:      []string{"a.jpg", "b.jpg", "c.jpg"},
		PrimaryIndex: 1,
	})
	require.NoError(t, err)
	require.Equal(t, "b.jpg", product.ImageURL)

	// Removing the primary entry clamps to a surviving one.
	updated, err := svc.RemoveGalleryImage(product.ID, 1)
	require.NoError(t, err)
	require.Len(t, updated.Gallery, 2)
	require.Equal(t, "a.jpg", updated.ImageURL)

	// The last image cannot be removed.
	updated, err = svc.RemoveGalleryImage(product.ID, 0)
	require.NoError(t, err)
	_, err = svc.RemoveGalleryImage(updated.ID, 0)
	require.ErrorIs(t, err, services.ErrGalleryEmpty)
}

func TestSizesAndColorsParsing(t *testing.T) {
	setupDB(t)
	svc := newProductService()

	product, err := svc.Create(services.ProductInput{
		Name:    "Parsed",
		Price:   100,
		Stock:   1,
		Gallery: []string{"a.jpg"},
		Sizes:   "S, M ,",
		Colors:  "",
	})
	require.NoError(t, err)
	require.Equal(t, models.StringList{"S", "M"}, product.Sizes)
	require.Nil(t, product.Colors)
}
