package services

import (
	"errors"
	"time"

	"github.com/souqdz/souq/app/models"
	"github.com/souqdz/souq/app/repositories"
	"github.com/souqdz/souq/pkg/orm"
	"gorm.io/gorm"
)

// ErrNoMatch is returned when a storefront search finds nothing.
var ErrNoMatch = errors.New("no product matches the search")

const (
	homeCategoryCount = 4
	newArrivalCount   = 4
	relatedCount      = 4
	categoriesCacheKey = "souq:catalog:categories"
	categoriesCacheTTL = 5 * time.Minute
)

// CatalogService serves the public storefront reads.
type CatalogService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

func NewCatalogService(products *repositories.ProductRepository, categories *repositories.CategoryRepository) *CatalogService {
	return &CatalogService{products: products, categories: categories}
}

// HomeCategories returns up to four random categories for the home page.
func (s *CatalogService) HomeCategories() ([]models.Category, error) {
	return s.categories.Random(homeCategoryCount)
}

// NewArrivals returns the newest active products for the home page.
func (s *CatalogService) NewArrivals() ([]models.Product, error) {
	return s.products.NewArrivals(newArrivalCount)
}

// Categories returns the full category list, served through the redis
// read-through cache.
func (s *CatalogService) Categories() ([]models.Category, error) {
	var categories []models.Category
	err := orm.DB().Model(&models.Category{}).Order("name ASC").
		Cache(categoriesCacheKey, categoriesCacheTTL, &categories)
	return categories, err
}

// Products lists active products, optionally narrowed to a category and
// ordered by the public sort key.
func (s *CatalogService) Products(categoryID uint, sort string, page, limit int) ([]models.Product, orm.Pagination, error) {
	return s.products.List(repositories.ListOptions{
		CategoryID: categoryID,
		ActiveOnly: true,
		Sort:       sort,
		Page:       page,
		Limit:      limit,
	})
}

// ProductBySlug returns one product for the detail page.
func (s *CatalogService) ProductBySlug(slug string) (models.Product, error) {
	return s.products.FindBySlug(slug)
}

// Related returns other active products from the same category.
func (s *CatalogService) Related(slug string) ([]models.Product, error) {
	product, err := s.products.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	return s.products.Related(product, relatedCount)
}

// Search resolves a search term to the best-matching product's slug.
// The storefront redirects straight to that product page.
func (s *CatalogService) Search(term string) (models.Product, error) {
	matches, err := s.products.Search(term, 1)
	if err != nil {
		return models.Product{}, err
	}
	if len(matches) == 0 {
		return models.Product{}, ErrNoMatch
	}
	return matches[0], nil
}

// ReconcileActiveFlags re-derives the active flag for every product whose
// stored flag disagrees with its stock. Run hourly by the scheduler to heal
// any drift from out-of-band writes.
func ReconcileActiveFlags(db *gorm.DB) (int64, error) {
	res := db.Model(&models.Product{}).
		Where("active <> (stock > 0)").
		Update("active", gorm.Expr("stock > 0"))
	return res.RowsAffected, res.Error
}
