package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/souqdz/souq/app/jobs"
	"github.com/souqdz/souq/app/models"
	"github.com/souqdz/souq/app/repositories"
	"github.com/souqdz/souq/config"
	"github.com/souqdz/souq/pkg/crypt"
	"github.com/souqdz/souq/pkg/event"
	"github.com/souqdz/souq/pkg/logger"
	"github.com/souqdz/souq/pkg/metrics"
	"github.com/souqdz/souq/pkg/orm"
	"github.com/souqdz/souq/pkg/queue"
	"gorm.io/gorm"
)

var (
	// ErrOutOfStock is returned when ordering a product with no stock left.
	ErrOutOfStock = errors.New("product is out of stock")
	// ErrBadTransition is returned for status changes the machine forbids.
	ErrBadTransition = errors.New("order status cannot move backwards")
	// ErrBadToken is returned when a tracking token fails to decrypt.
	ErrBadToken = errors.New("invalid tracking token")
)

// deliveryFee is the cash-on-delivery price for one wilaya.
type deliveryFee struct {
	Home float64
	Desk float64
}

// feeTable holds per-wilaya overrides; anything absent pays the default.
var (
	defaultFee = deliveryFee{Home: 800, Desk: 500}
	feeTable   = map[string]deliveryFee{
		"alger":       {Home: 500, Desk: 300},
		"blida":       {Home: 500, Desk: 350},
		"boumerdes":   {Home: 550, Desk: 350},
		"tipaza":      {Home: 550, Desk: 350},
		"oran":        {Home: 600, Desk: 400},
		"constantine": {Home: 600, Desk: 400},
		"setif":       {Home: 650, Desk: 400},
		"annaba":      {Home: 650, Desk: 450},
		"bejaia":      {Home: 650, Desk: 450},
		"tizi ouzou":  {Home: 650, Desk: 450},
		"adrar":       {Home: 1200, Desk: 800},
		"tamanrasset": {Home: 1400, Desk: 1000},
		"illizi":      {Home: 1400, Desk: 1000},
		"tindouf":     {Home: 1400, Desk: 1000},
	}
)

// DeliveryFee returns the shipping price for a wilaya and delivery type.
func DeliveryFee(wilaya, deliveryType string) float64 {
	fee, ok := feeTable[strings.ToLower(strings.TrimSpace(wilaya))]
	if !ok {
		fee = defaultFee
	}
	if deliveryType == models.DeliveryDesk {
		return fee.Desk
	}
	return fee.Home
}

var (
	ordersPlaced = metrics.NewCounter("souq", "orders_placed_total",
		"Orders placed through the storefront.", nil)
	ordersDelivered = metrics.NewCounter("souq", "orders_delivered_total",
		"Orders marked delivered.", nil)
	stockDecrements = metrics.NewCounter("souq", "stock_decrements_total",
		"Stock units decremented by deliveries.", nil)
)

// OrderInput is the storefront checkout payload.
type OrderInput struct {
	ProductSlug  string `json:"product_slug" validate:"required"`
	CustomerName string `json:"customer_name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Wilaya       string `json:"wilaya" validate:"required"`
	Baladia      string `json:"baladia"`
	Address      string `json:"address"`
	DeliveryType string `json:"delivery_type"`
	Quantity     int    `json:"quantity"`
}

// PlacedOrder is what checkout hands back to the storefront.
type PlacedOrder struct {
	Order        models.Order `json:"order"`
	WhatsAppLink string       `json:"whatsapp_link"`
	TrackingToken string      `json:"tracking_token"`
}

// trackingClaims is the encrypted payload inside a tracking token.
type trackingClaims struct {
	OrderID uint `json:"order_id"`
}

type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
}

func NewOrderService(orders *repositories.OrderRepository, products *repositories.ProductRepository) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// Place runs the checkout: price the order, persist it as new, notify the
// shop owner in the background and hand the buyer their WhatsApp link and
// tracking token.
func (s *OrderService) Place(in OrderInput) (PlacedOrder, error) {
	product, err := s.products.FindBySlug(in.ProductSlug)
	if err != nil {
		return PlacedOrder{}, fmt.Errorf("product %q: %w", in.ProductSlug, err)
	}
	if !product.Active || product.Stock <= 0 {
		return PlacedOrder{}, ErrOutOfStock
	}

	if in.Quantity < 1 {
		in.Quantity = 1
	}
	deliveryType := in.DeliveryType
	if deliveryType != models.DeliveryDesk {
		deliveryType = models.DeliveryHome
	}

	deliveryPrice := DeliveryFee(in.Wilaya, deliveryType)
	order := models.Order{
		CustomerName:  strings.TrimSpace(in.CustomerName),
		Phone:         strings.TrimSpace(in.Phone),
		Wilaya:        strings.TrimSpace(in.Wilaya),
		Baladia:       strings.TrimSpace(in.Baladia),
		Address:       strings.TrimSpace(in.Address),
		DeliveryType:  deliveryType,
		Quantity:      in.Quantity,
		DeliveryPrice: deliveryPrice,
		TotalPrice:    product.Price*float64(in.Quantity) + deliveryPrice,
		Status:        models.OrderStatusNew,
		ProductID:     product.ID,
	}

	if err := s.orders.Create(&order); err != nil {
		return PlacedOrder{}, fmt.Errorf("create order: %w", err)
	}
	order.Product = &product

	ordersPlaced.WithLabelValues().Inc()
	event.FireAsync("order.created", order)

	if err := queue.Dispatch(&jobs.OrderPlaced{
		OrderID:      order.ID,
		ProductName:  product.Name,
		CustomerName: order.CustomerName,
		Phone:        order.Phone,
		Wilaya:       order.Wilaya,
		Quantity:     order.Quantity,
		TotalPrice:   order.TotalPrice,
	}); err != nil {
		logger.Error("order notification dispatch failed", "order_id", order.ID, "error", err)
	}

	token, err := crypt.EncryptJSON(trackingClaims{OrderID: order.ID})
	if err != nil {
		return PlacedOrder{}, fmt.Errorf("tracking token: %w", err)
	}

	return PlacedOrder{
		Order:         order,
		WhatsAppLink:  whatsAppLink(product, order),
		TrackingToken: token,
	}, nil
}

// whatsAppLink builds the wa.me deep link the buyer is redirected to after
// checkout.
func whatsAppLink(product models.Product, order models.Order) string {
	msg := fmt.Sprintf("New Order: %s (x%d). Name: %s, Wilaya: %s",
		product.Name, order.Quantity, order.CustomerName, order.Wilaya)
	return fmt.Sprintf("https://wa.me/%s?text=%s",
		config.WhatsAppNumber(), url.QueryEscape(msg))
}

// MarkContacted moves a new order to contacted. Delivered orders stay put.
func (s *OrderService) MarkContacted(id uint) (models.Order, error) {
	order, err := s.orders.FindByID(id)
	if err != nil {
		return models.Order{}, err
	}
	if order.Status == models.OrderStatusDelivered {
		return models.Order{}, ErrBadTransition
	}
	if order.Status == models.OrderStatusContacted {
		return order, nil
	}

	order.Status = models.OrderStatusContacted
	if err := s.orders.Update(&order); err != nil {
		return models.Order{}, fmt.Errorf("update order %d: %w", id, err)
	}
	return order, nil
}

// MarkDelivered finalizes an order inside a single guarded transaction:
// the status flips to delivered only where it is not already, and exactly
// that guard decides whether stock is decremented. Calling it twice is a
// no-op, so a double-click in the admin UI cannot eat two units of stock.
func (s *OrderService) MarkDelivered(id uint) (models.Order, error) {
	var order models.Order

	err := orm.DB().Gorm().Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Product").First(&order, id).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status <> ?", id, models.OrderStatusDelivered).
			Update("status", models.OrderStatusDelivered)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already delivered; leave stock alone.
			return nil
		}
		order.Status = models.OrderStatusDelivered

		res = tx.Model(&models.Product{}).
			Where("id = ? AND stock > 0", order.ProductID).
			Update("stock", gorm.Expr("stock - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			var stock int
			if err := tx.Model(&models.Product{}).
				Where("id = ?", order.ProductID).
				Select("stock").Scan(&stock).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Product{}).
				Where("id = ?", order.ProductID).
				Update("active", stock > 0).Error; err != nil {
				return err
			}
			stockDecrements.WithLabelValues().Inc()
		}

		ordersDelivered.WithLabelValues().Inc()
		return nil
	})
	if err != nil {
		return models.Order{}, fmt.Errorf("deliver order %d: %w", id, err)
	}

	event.FireAsync("order.delivered", order)
	return order, nil
}

// Track resolves a tracking token back to the order it was minted for.
func (s *OrderService) Track(token string) (models.Order, error) {
	var claims trackingClaims
	if err := crypt.DecryptJSON(token, &claims); err != nil {
		return models.Order{}, ErrBadToken
	}
	return s.orders.FindByID(claims.OrderID)
}

// List exposes the admin order listing.
func (s *OrderService) List(status string, page, limit int) ([]models.Order, orm.Pagination, error) {
	return s.orders.List(status, page, limit)
}

// StatusCounts summarizes the order pipeline for the admin dashboard.
func (s *OrderService) StatusCounts() (map[string]int64, error) {
	return s.orders.CountByStatus()
}
