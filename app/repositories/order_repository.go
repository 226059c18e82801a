package repositories

import (
	"github.com/souqdz/souq/app/models"
	"github.com/souqdz/souq/pkg/orm"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// FindByID looks up an order with its product preloaded.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).Preload("Product").Where("id = ?", id).First(&order)
	return order, err
}

// List returns orders newest-first, optionally filtered by status.
func (r *OrderRepository) List(status string, page, limit int) ([]models.Order, orm.Pagination, error) {
	q := orm.DB().Model(&models.Order{}).Preload("Product").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	pagination, err := q.GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// Create persists a new order.
func (r *OrderRepository) Create(order *models.Order) error {
	return orm.DB().Create(order)
}

// Update persists changes to an existing order.
func (r *OrderRepository) Update(order *models.Order) error {
	return orm.DB().Save(order)
}

// CountByStatus returns how many orders currently sit in each status.
func (r *OrderRepository) CountByStatus() (map[string]int64, error) {
	counts := make(map[string]int64, 3)
	for _, status := range []string{
		models.OrderStatusNew, models.OrderStatusContacted, models.OrderStatusDelivered,
	} {
		var n int64
		if err := orm.DB().Model(&models.Order{}).Where("status = ?", status).Count(&n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, nil
}
