package controllers

import (
	"errors"
	"net/http"

	"github.com/souqdz/souq/app/resources"
	"github.com/souqdz/souq/app/services"
	"github.com/souqdz/souq/pkg/ctx"
	"github.com/souqdz/souq/pkg/resource"
	"gorm.io/gorm"
)

// OrderController handles storefront checkout and order tracking.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Place accepts a cash-on-delivery order and returns the WhatsApp deep
// link plus a tracking token.
func (o *OrderController) Place(c *ctx.Context) {
	var in services.OrderInput
	if !c.BindJSON(&in) {
		return
	}

	placed, err := o.orders.Place(in)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.NotFound("product not found")
	case errors.Is(err, services.ErrOutOfStock):
		c.Error(http.StatusConflict, "product is out of stock")
	case err != nil:
		c.Error(http.StatusInternalServerError, "could not place order")
	default:
		c.Created(map[string]interface{}{
			"order":          resources.OrderResource{}.ToArray(placed.Order),
			"whatsapp_link":  placed.WhatsAppLink,
			"tracking_token": placed.TrackingToken,
		})
	}
}

// Track resolves ?token= back to the order status.
func (o *OrderController) Track(c *ctx.Context) {
	token := c.Query("token")
	if token == "" {
		c.Error(http.StatusBadRequest, "missing tracking token")
		return
	}

	order, err := o.orders.Track(token)
	switch {
	case errors.Is(err, services.ErrBadToken):
		c.Error(http.StatusBadRequest, "invalid tracking token")
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.NotFound("order not found")
	case err != nil:
		c.Error(http.StatusInternalServerError, "could not load order")
	default:
		resource.New(resources.OrderResource{}, order).Respond(c.W)
	}
}
