package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/souqdz/souq/app/models"
	"github.com/souqdz/souq/app/repositories"
	"github.com/souqdz/souq/app/resources"
	"github.com/souqdz/souq/pkg/ctx"
	"github.com/souqdz/souq/pkg/resource"
	"gorm.io/gorm"
)

// AdminCategoryController manages the category list.
type AdminCategoryController struct {
	categories *repositories.CategoryRepository
}

func NewAdminCategoryController(categories *repositories.CategoryRepository) *AdminCategoryController {
	return &AdminCategoryController{categories: categories}
}

// Index lists every category.
func (a *AdminCategoryController) Index(c *ctx.Context) {
	categories, err := a.categories.All()
	if err != nil {
		c.Error(http.StatusInternalServerError, "could not load categories")
		return
	}
	resource.CollectionOf(resources.CategoryResource{}, categories).Respond(c.W)
}

// Store creates a category. Names are unique.
func (a *AdminCategoryController) Store(c *ctx.Context) {
	var in struct {
		Name string `json:"name" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}

	name := strings.TrimSpace(in.Name)
	if _, err := a.categories.FindByName(name); err == nil {
		c.Error(http.StatusConflict, "category already exists")
		return
	}

	category := models.Category{Name: name}
	if err := a.categories.Create(&category); err != nil {
		c.Error(http.StatusInternalServerError, "could not create category")
		return
	}
	c.Created(resources.CategoryResource{}.ToArray(category))
}

// Update renames a category.
func (a *AdminCategoryController) Update(c *ctx.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Error(http.StatusBadRequest, "invalid category id")
		return
	}

	var in struct {
		Name string `json:"name" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}

	category, err := a.categories.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.NotFound("category not found")
		return
	}
	if err != nil {
		c.Error(http.StatusInternalServerError, "could not load category")
		return
	}

	category.Name = strings.TrimSpace(in.Name)
	if err := a.categories.Update(&category); err != nil {
		c.Error(http.StatusInternalServerError, "could not update category")
		return
	}
	c.Success(resources.CategoryResource{}.ToArray(category))
}

// Destroy removes a category; its products become uncategorized.
func (a *AdminCategoryController) Destroy(c *ctx.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Error(http.StatusBadRequest, "invalid category id")
		return
	}
	if err := a.categories.Delete(uint(id)); err != nil {
		c.Error(http.StatusInternalServerError, "could not delete category")
		return
	}
	c.Success(map[string]string{"message": "deleted"})
}
