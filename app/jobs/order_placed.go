// Package jobs holds the queued background jobs. Each job registers itself
// with the queue in init() so the workers can rehydrate it by type name.
package jobs

import (
	"fmt"

	"github.com/souqdz/souq/config"
	"github.com/souqdz/souq/pkg/notification"
	"github.com/souqdz/souq/pkg/queue"
)

func init() {
	queue.Register("*jobs.OrderPlaced", func() queue.Job { return &OrderPlaced{} })
}

// OrderPlaced notifies the shop owner about a fresh storefront order.
type OrderPlaced struct {
	OrderID      uint    `json:"order_id"`
	ProductName  string  `json:"product_name"`
	CustomerName string  `json:"customer_name"`
	Phone        string  `json:"phone"`
	Wilaya       string  `json:"wilaya"`
	Quantity     int     `json:"quantity"`
	TotalPrice   float64 `json:"total_price"`
}

// Handle sends the new-order alert over mail and Slack.
func (j *OrderPlaced) Handle() error {
	errs := notification.Send(config.ShopOwnerEmail(), &newOrderAlert{job: j})
	if len(errs) > 0 {
		return fmt.Errorf("order %d alert: %w", j.OrderID, errs[0])
	}
	return nil
}

// newOrderAlert adapts an OrderPlaced job to the notification channels.
type newOrderAlert struct {
	job *OrderPlaced
}

func (a *newOrderAlert) Via() []string {
	channels := []string{"mail"}
	if config.SlackWebhook() != "" {
		channels = append(channels, "slack")
	}
	return channels
}

func (a *newOrderAlert) summary() string {
	return fmt.Sprintf("%s x%d for %s (%s, %s) — %.0f DZD total",
		a.job.ProductName, a.job.Quantity, a.job.CustomerName,
		a.job.Phone, a.job.Wilaya, a.job.TotalPrice)
}

func (a *newOrderAlert) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("New order #%d", a.job.OrderID),
		Body:    fmt.Sprintf("<p>%s</p>", a.summary()),
		Text:    a.summary(),
	}
}

func (a *newOrderAlert) ToSlack() notification.SlackData {
	return notification.SlackData{
		WebhookURL: config.SlackWebhook(),
		Text:       fmt.Sprintf("New order #%d", a.job.OrderID),
		Attachments: []notification.SlackAttachment{
			{Color: "good", Title: a.job.ProductName, Text: a.summary()},
		},
	}
}
