package repositories

import (
	"strings"

	"github.com/souqdz/souq/app/models"
	"github.com/souqdz/souq/pkg/orm"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Preload("Category").Where("id = ?", id).First(&product)
	return product, err
}

// FindBySlug looks up a product by its URL slug.
func (r *ProductRepository) FindBySlug(slug string) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Preload("Category").Where("slug = ?", slug).First(&product)
	return product, err
}

// ListOptions narrows and orders a product listing.
type ListOptions struct {
	CategoryID uint
	ActiveOnly bool
	Sort       string // "low-high" | "high-low" | "newest"
	Page       int
	Limit      int
}

// orderClause maps a public sort key onto SQL. Unknown keys fall back to
// newest-first.
func orderClause(sort string) string {
	switch sort {
	case "low-high":
		return "price ASC"
	case "high-low":
		return "price DESC"
	default:
		return "created_at DESC"
	}
}

// List returns products matching the options, paginated.
func (r *ProductRepository) List(opts ListOptions) ([]models.Product, orm.Pagination, error) {
	q := orm.DB().Model(&models.Product{}).Preload("Category")

	if opts.CategoryID != 0 {
		q = q.Where("category_id = ?", opts.CategoryID)
	}
	if opts.ActiveOnly {
		q = q.Where("active = ?", true)
	}
	q = q.Order(orderClause(opts.Sort))

	var products []models.Product
	pagination, err := q.GetWithPagination(&products, opts.Page, opts.Limit)
	return products, pagination, err
}

// Search finds active products whose name contains the term,
// case-insensitively, capped at limit.
func (r *ProductRepository) Search(term string, limit int) ([]models.Product, error) {
	var products []models.Product
	pattern := "%" + strings.ToLower(term) + "%"
	err := orm.DB().Model(&models.Product{}).
		Where("active = ? AND LOWER(name) LIKE ?", true, pattern).
		Order("created_at DESC").
		Limit(limit).
		Get(&products)
	return products, err
}

// NewArrivals returns the most recently created active products.
func (r *ProductRepository) NewArrivals(limit int) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Get(&products)
	return products, err
}

// Related returns other active products from the same category.
func (r *ProductRepository) Related(product models.Product, limit int) ([]models.Product, error) {
	if product.CategoryID == nil {
		return nil, nil
	}

	var products []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("category_id = ? AND id <> ? AND active = ?", *product.CategoryID, product.ID, true).
		Order("created_at DESC").
		Limit(limit).
		Get(&products)
	return products, err
}

// Create persists a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	return orm.DB().Create(product)
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	return orm.DB().Save(product)
}

// Delete removes a product.
func (r *ProductRepository) Delete(id uint) error {
	return orm.DB().Where("id = ?", id).Delete(&models.Product{})
}
