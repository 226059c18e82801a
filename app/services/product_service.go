package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/souqdz/souq/app/models"
	"github.com/souqdz/souq/app/repositories"
	"github.com/souqdz/souq/pkg/collection"
)

var (
	// ErrGalleryEmpty is returned when a product is saved without images.
	ErrGalleryEmpty = errors.New("product needs at least one gallery image")
	// ErrGalleryFull is returned when the gallery would exceed the cap.
	ErrGalleryFull = fmt.Errorf("gallery holds at most %d images", models.MaxGalleryImages)
)

// ProductInput is the admin-facing payload for creating or updating a product.
type ProductInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"required"`
	Stock       int      `json:"stock"`
	CategoryID  uint     `json:"category_id"`
	Gallery     []string `json:"gallery"`
	// PrimaryIndex selects which gallery entry becomes the main image.
	PrimaryIndex int    `json:"primary_index"`
	Sizes        string `json:"sizes"`
	Colors       string `json:"colors"`
}

type ProductService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

func NewProductService(products *repositories.ProductRepository, categories *repositories.CategoryRepository) *ProductService {
	return &ProductService{products: products, categories: categories}
}

// Slugify lowercases, turns whitespace runs into single dashes and strips
// everything outside [a-z0-9-].
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true // suppress leading dash

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '\t' || r == '-':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// ParseList splits comma-separated input into trimmed non-empty entries.
// Empty input yields nil.
func ParseList(input string) models.StringList {
	parts := collection.Filter(
		collection.Map(strings.Split(input, ","), strings.TrimSpace),
		func(s string) bool { return s != "" },
	)
	if len(parts) == 0 {
		return nil
	}
	return models.StringList(parts)
}

// apply copies the input onto the product, enforcing the gallery cap, the
// primary-index clamp and the stock-derived active flag.
func (s *ProductService) apply(product *models.Product, in ProductInput) error {
	if len(in.Gallery) == 0 {
		return ErrGalleryEmpty
	}
	if len(in.Gallery) > models.MaxGalleryImages {
		return ErrGalleryFull
	}

	primary := in.PrimaryIndex
	if primary < 0 || primary >= len(in.Gallery) {
		primary = 0
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Description = in.Description
	product.Price = in.Price
	if in.Stock < 0 {
		in.Stock = 0
	}
	product.Stock = in.Stock
	product.Gallery = models.StringList(in.Gallery)
	product.ImageURL = in.Gallery[primary]
	product.Sizes = ParseList(in.Sizes)
	product.Colors = ParseList(in.Colors)
	product.DeriveActive()

	if in.CategoryID != 0 {
		category, err := s.categories.FindByID(in.CategoryID)
		if err != nil {
			return fmt.Errorf("category %d: %w", in.CategoryID, err)
		}
		product.CategoryID = &category.ID
	} else {
		product.CategoryID = nil
	}

	return nil
}

// Create builds a product from the input, mints its slug and persists it.
func (s *ProductService) Create(in ProductInput) (models.Product, error) {
	var product models.Product
	if err := s.apply(&product, in); err != nil {
		return models.Product{}, err
	}

	product.Slug = fmt.Sprintf("%s-%d", Slugify(in.Name), time.Now().UnixMilli())

	if err := s.products.Create(&product); err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// Update applies the input to an existing product. The slug never changes
// after creation, so stored links stay valid.
func (s *ProductService) Update(id uint, in ProductInput) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return models.Product{}, err
	}

	if err := s.apply(&product, in); err != nil {
		return models.Product{}, err
	}

	if err := s.products.Update(&product); err != nil {
		return models.Product{}, fmt.Errorf("update product %d: %w", id, err)
	}
	return product, nil
}

// RemoveGalleryImage drops one image and clamps the primary image back onto
// a surviving entry.
func (s *ProductService) RemoveGalleryImage(id uint, index int) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return models.Product{}, err
	}

	if index < 0 || index >= len(product.Gallery) {
		return models.Product{}, fmt.Errorf("gallery index %d out of range", index)
	}
	if len(product.Gallery) == 1 {
		return models.Product{}, ErrGalleryEmpty
	}

	gallery := append(models.StringList{}, product.Gallery[:index]...)
	gallery = append(gallery, product.Gallery[index+1:]...)
	product.Gallery = gallery

	if !gallery.Contains(product.ImageURL) {
		product.ImageURL = gallery[0]
	}

	if err := s.products.Update(&product); err != nil {
		return models.Product{}, fmt.Errorf("update product %d: %w", id, err)
	}
	return product, nil
}

// Delete removes a product.
func (s *ProductService) Delete(id uint) error {
	return s.products.Delete(id)
}
