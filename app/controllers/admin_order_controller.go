package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/souqdz/souq/app/models"
	"github.com/souqdz/souq/app/resources"
	"github.com/souqdz/souq/app/services"
	"github.com/souqdz/souq/pkg/ctx"
	"github.com/souqdz/souq/pkg/event"
	"github.com/souqdz/souq/pkg/logger"
	"github.com/souqdz/souq/pkg/resource"
	"github.com/souqdz/souq/pkg/sse"
	"github.com/souqdz/souq/pkg/ws"
	"gorm.io/gorm"
)

// AdminOrderController drives the order pipeline in the admin panel.
type AdminOrderController struct {
	orders *services.OrderService
	hub    *ws.Hub

	mu          sync.Mutex
	subscribers map[chan models.Order]struct{}
}

func NewAdminOrderController(orders *services.OrderService, hub *ws.Hub) *AdminOrderController {
	c := &AdminOrderController{
		orders:      orders,
		hub:         hub,
		subscribers: make(map[chan models.Order]struct{}),
	}

	// One listener fans new orders out to the WebSocket hub and every
	// open SSE stream.
	event.Listen("order.created", func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}

		raw, err := json.Marshal(resources.OrderResource{}.ToArray(order))
		if err != nil {
			logger.Error("order feed marshal failed", "order_id", order.ID, "error", err)
			return
		}
		hub.Broadcast <- raw

		c.mu.Lock()
		for ch := range c.subscribers {
			select {
			case ch <- order:
			default:
			}
		}
		c.mu.Unlock()
	})

	return c
}

func (a *AdminOrderController) subscribe() chan models.Order {
	ch := make(chan models.Order, 16)
	a.mu.Lock()
	a.subscribers[ch] = struct{}{}
	a.mu.Unlock()
	return ch
}

func (a *AdminOrderController) unsubscribe(ch chan models.Order) {
	a.mu.Lock()
	delete(a.subscribers, ch)
	a.mu.Unlock()
}

// Index lists orders newest-first, optionally filtered by ?status=.
func (a *AdminOrderController) Index(c *ctx.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	orders, pagination, err := a.orders.List(c.Query("status"), page, limit)
	if err != nil {
		c.Error(http.StatusInternalServerError, "could not load orders")
		return
	}

	resource.CollectionOf(resources.OrderResource{}, orders).
		WithPagination(pagination).
		Respond(c.W)
}

// Counts summarizes the pipeline for the dashboard header.
func (a *AdminOrderController) Counts(c *ctx.Context) {
	counts, err := a.orders.StatusCounts()
	if err != nil {
		c.Error(http.StatusInternalServerError, "could not count orders")
		return
	}
	c.Success(counts)
}

// UpdateStatus moves an order forward: new → contacted | delivered.
// Delivering is idempotent; everything else backwards is rejected.
func (a *AdminOrderController) UpdateStatus(c *ctx.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Error(http.StatusBadRequest, "invalid order id")
		return
	}

	var in struct {
		Status string `json:"status" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}

	var order models.Order
	switch in.Status {
	case models.OrderStatusContacted:
		order, err = a.orders.MarkContacted(uint(id))
	case models.OrderStatusDelivered:
		order, err = a.orders.MarkDelivered(uint(id))
	default:
		c.Error(http.StatusUnprocessableEntity, "unknown status")
		return
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.NotFound("order not found")
	case errors.Is(err, services.ErrBadTransition):
		c.Error(http.StatusConflict, "order already delivered")
	case err != nil:
		c.Error(http.StatusInternalServerError, "could not update order")
	default:
		c.Success(resources.OrderResource{}.ToArray(order))
	}
}

// Stream is the SSE feed of incoming orders. Each new order is pushed as
// an "order" event; a comment ping keeps proxies from closing the pipe.
func (a *AdminOrderController) Stream(c *ctx.Context) {
	stream := sse.New(c.W, c.R)
	if stream == nil {
		return
	}

	orders := a.subscribe()
	defer a.unsubscribe(orders)

	ping := time.NewTicker(25 * time.Second)
	defer ping.Stop()

	stream.Comment("connected")
	for {
		select {
		case <-c.R.Context().Done():
			return
		case <-ping.C:
			stream.Comment("ping")
		case order := <-orders:
			if err := stream.Send("order", resources.OrderResource{}.ToArray(order)); err != nil {
				return
			}
			if stream.IsClosed() {
				return
			}
		}
	}
}

// Socket upgrades to the WebSocket order feed.
func (a *AdminOrderController) Socket(c *ctx.Context) {
	ws.Upgrade(c.W, c.R, a.hub)
}
