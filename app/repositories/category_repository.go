package repositories

import (
	"github.com/souqdz/souq/app/models"
	"github.com/souqdz/souq/pkg/orm"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// All returns every category, name-ordered.
func (r *CategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	err := orm.DB().Model(&models.Category{}).Order("name ASC").Get(&categories)
	return categories, err
}

// Random returns up to n categories in random order.
func (r *CategoryRepository) Random(n int) ([]models.Category, error) {
	var categories []models.Category
	err := orm.DB().Model(&models.Category{}).Order("RANDOM()").Limit(n).Get(&categories)
	return categories, err
}

// FindByID looks up a category by primary key.
func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var category models.Category
	err := orm.DB().Model(&models.Category{}).Where("id = ?", id).First(&category)
	return category, err
}

// FindByName looks up a category by its unique name.
func (r *CategoryRepository) FindByName(name string) (models.Category, error) {
	var category models.Category
	err := orm.DB().Model(&models.Category{}).Where("name = ?", name).First(&category)
	return category, err
}

// Create persists a new category.
func (r *CategoryRepository) Create(category *models.Category) error {
	return orm.DB().Create(category)
}

// Update persists changes to an existing category.
func (r *CategoryRepository) Update(category *models.Category) error {
	return orm.DB().Save(category)
}

// Delete removes a category. Products keep their rows; their category
// reference is cleared first so listings do not dangle.
func (r *CategoryRepository) Delete(id uint) error {
	if err := orm.DB().Model(&models.Product{}).Where("category_id = ?", id).
		Updates(map[string]interface{}{"category_id": nil}); err != nil {
		return err
	}
	return orm.DB().Where("id = ?", id).Delete(&models.Category{})
}
