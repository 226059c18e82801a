package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/souqdz/souq/app/resources"
	"github.com/souqdz/souq/app/services"
	"github.com/souqdz/souq/pkg/ctx"
	"github.com/souqdz/souq/pkg/resource"
)

// HomeController serves the landing page data and the search box.
type HomeController struct {
	catalog *services.CatalogService
}

func NewHomeController(catalog *services.CatalogService) *HomeController {
	return &HomeController{catalog: catalog}
}

// Categories returns four random categories for the home page tiles.
func (h *HomeController) Categories(c *ctx.Context) {
	categories, err := h.catalog.HomeCategories()
	if err != nil {
		c.Error(http.StatusInternalServerError, "could not load categories")
		return
	}
	resource.CollectionOf(resources.CategoryResource{}, categories).Respond(c.W)
}

// NewArrivals returns the newest in-stock products.
func (h *HomeController) NewArrivals(c *ctx.Context) {
	products, err := h.catalog.NewArrivals()
	if err != nil {
		c.Error(http.StatusInternalServerError, "could not load new arrivals")
		return
	}
	resource.CollectionOf(resources.ProductResource{}, products).Respond(c.W)
}

// Search resolves ?q= to the best-matching product. A hit returns the
// product slug for a direct redirect; a miss returns 404 with a hint to
// fall back to the shop listing.
func (h *HomeController) Search(c *ctx.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.Error(http.StatusBadRequest, "missing search term")
		return
	}

	product, err := h.catalog.Search(term)
	if errors.Is(err, services.ErrNoMatch) {
		c.JSON(http.StatusNotFound, map[string]string{
			"message":  "no product found",
			"redirect": "/shop",
		})
		return
	}
	if err != nil {
		c.Error(http.StatusInternalServerError, "search failed")
		return
	}

	c.Success(map[string]string{"slug": product.Slug})
}
