package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/souqdz/souq/app/repositories"
	"github.com/souqdz/souq/app/resources"
	"github.com/souqdz/souq/app/services"
	"github.com/souqdz/souq/config"
	"github.com/souqdz/souq/pkg/ctx"
	"github.com/souqdz/souq/pkg/resource"
	"github.com/souqdz/souq/pkg/storage"
	"gorm.io/gorm"
)

// AdminProductController is the product management surface of the admin
// panel.
type AdminProductController struct {
	products *repositories.ProductRepository
	service  *services.ProductService
}

func NewAdminProductController(products *repositories.ProductRepository, service *services.ProductService) *AdminProductController {
	return &AdminProductController{products: products, service: service}
}

// Index lists every product, including inactive ones.
func (a *AdminProductController) Index(c *ctx.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	products, pagination, err := a.products.List(repositories.ListOptions{
		Sort:  c.Query("sort"),
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		c.Error(http.StatusInternalServerError, "could not load products")
		return
	}

	resource.CollectionOf(resources.ProductResource{}, products).
		WithPagination(pagination).
		Respond(c.W)
}

// Store creates a product from the admin form payload.
func (a *AdminProductController) Store(c *ctx.Context) {
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}

	product, err := a.service.Create(in)
	if err != nil {
		a.saveError(c, err)
		return
	}
	c.Created(resources.ProductResource{}.ToArray(product))
}

// Update edits an existing product. The slug never changes.
func (a *AdminProductController) Update(c *ctx.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Error(http.StatusBadRequest, "invalid product id")
		return
	}

	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}

	product, err := a.service.Update(uint(id), in)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.NotFound("product not found")
		return
	}
	if err != nil {
		a.saveError(c, err)
		return
	}
	c.Success(resources.ProductResource{}.ToArray(product))
}

// RemoveImage drops one gallery entry; the primary image is clamped back
// onto a surviving one.
func (a *AdminProductController) RemoveImage(c *ctx.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Error(http.StatusBadRequest, "invalid product id")
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Error(http.StatusBadRequest, "invalid gallery index")
		return
	}

	product, err := a.service.RemoveGalleryImage(uint(id), index)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.NotFound("product not found")
		return
	}
	if err != nil {
		a.saveError(c, err)
		return
	}
	c.Success(resources.ProductResource{}.ToArray(product))
}

// Destroy deletes a product.
func (a *AdminProductController) Destroy(c *ctx.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Error(http.StatusBadRequest, "invalid product id")
		return
	}
	if err := a.service.Delete(uint(id)); err != nil {
		c.Error(http.StatusInternalServerError, "could not delete product")
		return
	}
	c.Success(map[string]string{"message": "deleted"})
}

// Upload receives one gallery image over multipart form data and stores
// it on the configured disk. Returns the public URL for the gallery form.
func (a *AdminProductController) Upload(c *ctx.Context) {
	maxBytes := config.UploadMaxBytes()
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, maxBytes)

	file, header, err := c.R.FormFile("image")
	if err != nil {
		c.Error(http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		c.Error(http.StatusUnsupportedMediaType, "unsupported image type")
		return
	}

	path := fmt.Sprintf("products/%d%s", time.Now().UnixNano(), ext)
	if err := storage.PutStream(path, file); err != nil {
		c.Error(http.StatusInternalServerError, "could not store image")
		return
	}

	c.Created(map[string]string{"url": storage.URL(path), "path": path})
}

func (a *AdminProductController) saveError(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGalleryEmpty), errors.Is(err, services.ErrGalleryFull):
		c.Error(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.Error(http.StatusUnprocessableEntity, "category does not exist")
	default:
		c.Error(http.StatusInternalServerError, "could not save product")
	}
}
