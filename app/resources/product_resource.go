// Package resources holds the API transformers that shape models into
// storefront JSON.
package resources

import (
	"github.com/souqdz/souq/app/models"
	"github.com/souqdz/souq/pkg/resource"
)

// ProductResource shapes a product for the public catalog.
type ProductResource struct {
	resource.Base
}

func (ProductResource) ToArray(v interface{}) resource.Map {
	p, ok := v.(models.Product)
	if !ok {
		if ptr, ok := v.(*models.Product); ok {
			p = *ptr
		} else {
			return resource.Map{}
		}
	}

	out := resource.Map{
		"id":          p.ID,
		"name":        p.Name,
		"slug":        p.Slug,
		"description": p.Description,
		"price":       p.Price,
		"stock":       p.Stock,
		"active":      p.Active,
		"image_url":   p.ImageURL,
		"gallery":     p.Gallery,
		"sizes":       p.Sizes,
		"colors":      p.Colors,
		"created_at":  p.CreatedAt,
	}
	if p.Category != nil {
		out["category"] = resource.Map{"id": p.Category.ID, "name": p.Category.Name}
	}
	return out
}

// CategoryResource shapes a category for the public catalog.
type CategoryResource struct {
	resource.Base
}

func (CategoryResource) ToArray(v interface{}) resource.Map {
	c, ok := v.(models.Category)
	if !ok {
		if ptr, ok := v.(*models.Category); ok {
			c = *ptr
		} else {
			return resource.Map{}
		}
	}
	return resource.Map{"id": c.ID, "name": c.Name}
}

// OrderResource shapes an order for the admin panel and tracking endpoint.
type OrderResource struct {
	resource.Base
}

func (OrderResource) ToArray(v interface{}) resource.Map {
	o, ok := v.(models.Order)
	if !ok {
		if ptr, ok := v.(*models.Order); ok {
			o = *ptr
		} else {
			return resource.Map{}
		}
	}

	out := resource.Map{
		"id":             o.ID,
		"customer_name":  o.CustomerName,
		"phone":          o.Phone,
		"wilaya":         o.Wilaya,
		"baladia":        o.Baladia,
		"address":        o.Address,
		"delivery_type":  o.DeliveryType,
		"quantity":       o.Quantity,
		"delivery_price": o.DeliveryPrice,
		"total_price":    o.TotalPrice,
		"status":         o.Status,
		"created_at":     o.CreatedAt,
	}
	if o.Product != nil {
		out["product"] = resource.Map{
			"id":        o.Product.ID,
			"name":      o.Product.Name,
			"slug":      o.Product.Slug,
			"price":     o.Product.Price,
			"image_url": o.Product.ImageURL,
		}
	}
	return out
}
