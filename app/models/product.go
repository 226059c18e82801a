package models

import "gorm.io/gorm"

// MaxGalleryImages caps how many images a product gallery may hold.
const MaxGalleryImages = 6

// Product represents a product in the catalogue.
//
// Active is never set directly: it is re-derived from Stock on every save
// (see services.ProductService). Slug is generated once at creation and is
// immutable afterwards.
type Product struct {
	gorm.Model
	Name        string     `gorm:"size:255;not null;index"   json:"name"`
	Slug        string     `gorm:"size:255;uniqueIndex"      json:"slug"`
	Description string     `gorm:"type:text"                 json:"description"`
	Price       float64    `gorm:"not null;default:0"        json:"price"`
	Stock       int        `gorm:"not null;default:0"        json:"stock"`
	Active      bool       `gorm:"not null;default:false;index" json:"active"`
	CategoryID  *uint      `gorm:"index"                     json:"category_id"`
	Category    *Category  `gorm:"foreignKey:CategoryID"     json:"category,omitempty"`
	ImageURL    string     `gorm:"size:1024"                 json:"image_url"`
	Gallery     StringList `gorm:"type:json"                 json:"gallery"`
	Sizes       StringList `gorm:"type:json"                 json:"sizes"`
	Colors      StringList `gorm:"type:json"                 json:"colors"`
}

// DeriveActive recomputes the active flag from the current stock.
func (p *Product) DeriveActive() {
	p.Active = p.Stock > 0
}
