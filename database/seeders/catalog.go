package seeders

import (
	"fmt"
	"time"

	"github.com/souqdz/souq/app/models"
	"github.com/souqdz/souq/app/services"
	"github.com/souqdz/souq/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("admin", SeedAdmin)
	Register("catalog", SeedCatalog)
}

// SeedAdmin creates the default admin account if none exists.
// Change the password immediately in any real deployment.
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("admin")
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Name:     "Admin",
		Email:    "admin@souq.local",
		Password: hash,
		Role:     "admin",
	}).Error
}

// SeedCatalog inserts a small demo catalog.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Shoes"}, {Name: "Bags"}, {Name: "Watches"}, {Name: "Accessories"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	products := []models.Product{
		{
			Name:     "Classic Running Shoes",
			Price:    4500,
			Stock:    10,
			ImageURL: "/storage/products/demo-shoes.jpg",
			Gallery:  models.StringList{"/storage/products/demo-shoes.jpg"},
			Sizes:    models.StringList{"40", "41", "42", "43"},
			Colors:   models.StringList{"Black", "White"},
		},
		{
			Name:     "Leather Tote Bag",
			Price:    6200,
			Stock:    5,
			ImageURL: "/storage/products/demo-bag.jpg",
			Gallery:  models.StringList{"/storage/products/demo-bag.jpg"},
			Colors:   models.StringList{"Brown"},
		},
		{
			Name:     "Minimalist Watch",
			Price:    8900,
			Stock:    0,
			ImageURL: "/storage/products/demo-watch.jpg",
			Gallery:  models.StringList{"/storage/products/demo-watch.jpg"},
		},
	}
	for i := range products {
		products[i].Slug = fmt.Sprintf("%s-%d", services.Slugify(products[i].Name), now+int64(i))
		products[i].CategoryID = &categories[i%len(categories)].ID
		products[i].DeriveActive()
	}
	return db.Create(&products).Error
}
