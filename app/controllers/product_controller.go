package controllers

import (
	"errors"
	"net/http"

	"github.com/souqdz/souq/app/models"
	"github.com/souqdz/souq/app/resources"
	"github.com/souqdz/souq/app/services"
	"github.com/souqdz/souq/pkg/ctx"
	"github.com/souqdz/souq/pkg/resource"
	"gorm.io/gorm"
)

// ProductController serves the product detail page and its related rail.
type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// Show returns one product by slug.
func (p *ProductController) Show(c *ctx.Context) {
	product, err := p.catalog.ProductBySlug(c.Param("slug"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.NotFound("product not found")
		return
	}
	if err != nil {
		c.Error(http.StatusInternalServerError, "could not load product")
		return
	}
	resource.New(resources.ProductResource{}, product).Respond(c.W)
}

// Related returns other active products in the same category.
func (p *ProductController) Related(c *ctx.Context) {
	products, err := p.catalog.Related(c.Param("slug"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.NotFound("product not found")
		return
	}
	if err != nil {
		c.Error(http.StatusInternalServerError, "could not load related products")
		return
	}
	resource.CollectionOf(resources.ProductResource{}, products).Respond(c.W)
}

// ShippingQuote prices delivery for ?wilaya= and ?type= (home | desk).
func (p *ProductController) ShippingQuote(c *ctx.Context) {
	wilaya := c.Query("wilaya")
	if wilaya == "" {
		c.Error(http.StatusBadRequest, "missing wilaya")
		return
	}

	deliveryType := c.DefaultQuery("type", models.DeliveryHome)
	c.Success(map[string]interface{}{
		"wilaya":         wilaya,
		"delivery_type":  deliveryType,
		"delivery_price": services.DeliveryFee(wilaya, deliveryType),
	})
}
