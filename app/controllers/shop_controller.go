package controllers

import (
	"net/http"
	"strconv"

	"github.com/souqdz/souq/app/resources"
	"github.com/souqdz/souq/app/services"
	"github.com/souqdz/souq/pkg/ctx"
	"github.com/souqdz/souq/pkg/resource"
)

// ShopController serves the catalog listing pages.
type ShopController struct {
	catalog *services.CatalogService
}

func NewShopController(catalog *services.CatalogService) *ShopController {
	return &ShopController{catalog: catalog}
}

// Categories returns every category for the shop filter bar.
func (s *ShopController) Categories(c *ctx.Context) {
	categories, err := s.catalog.Categories()
	if err != nil {
		c.Error(http.StatusInternalServerError, "could not load categories")
		return
	}
	resource.CollectionOf(resources.CategoryResource{}, categories).Respond(c.W)
}

// Products lists active products. Supports ?category=, ?sort=
// (low-high | high-low | newest), ?page= and ?limit=.
func (s *ShopController) Products(c *ctx.Context) {
	categoryID, _ := strconv.Atoi(c.Query("category"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "24"))

	products, pagination, err := s.catalog.Products(uint(categoryID), c.Query("sort"), page, limit)
	if err != nil {
		c.Error(http.StatusInternalServerError, "could not load products")
		return
	}

	resource.CollectionOf(resources.ProductResource{}, products).
		WithPagination(pagination).
		Respond(c.W)
}
