package models

import "gorm.io/gorm"

// Category groups products for the shop filter list.
type Category struct {
	gorm.Model
	Name string `gorm:"size:255;not null;uniqueIndex" json:"name"`
}
