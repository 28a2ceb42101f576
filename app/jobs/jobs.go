// Package jobs holds the background jobs and wires domain events to
// them. Boot calls Register once so the queue can deserialize jobs by
// type name and the event bus knows who listens to what.
package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/washly/app/models"
	"github.com/shashiranjanraj/washly/app/services"
	"github.com/shashiranjanraj/washly/pkg/event"
	"github.com/shashiranjanraj/washly/pkg/logger"
	"github.com/shashiranjanraj/washly/pkg/notification"
	"github.com/shashiranjanraj/washly/pkg/queue"
)

// Register hooks up queue job types and event listeners. Call once at
// boot, after the queue driver is configured.
func Register() {
	queue.Register("*jobs.OrderStatusMailJob", func() queue.Job { return &OrderStatusMailJob{} })
	queue.Register("*jobs.WelcomeMailJob", func() queue.Job { return &WelcomeMailJob{} })

	event.Listen(services.EventOrderStatusChanged, onStatusChanged)
	event.Listen(services.EventUserRegistered, onUserRegistered)
}

func onStatusChanged(payload any) {
	change, ok := payload.(*services.StatusChange)
	if !ok {
		return
	}

	job := &OrderStatusMailJob{
		To:       change.Order.Customer.Email,
		Name:     change.Order.Customer.Name,
		Number:   change.Order.Number,
		Status:   string(change.To),
		Previous: string(change.From),
	}
	if job.To != "" {
		if err := queue.Dispatch(job); err != nil {
			logger.Error("jobs: dispatch status mail", "error", err)
		}
	}

	notification.SendAsync(change.Order.Customer.Email, &statusChangedNotification{change: change})
}

func onUserRegistered(payload any) {
	user, ok := payload.(*models.User)
	if !ok {
		return
	}
	if err := queue.Dispatch(&WelcomeMailJob{To: user.Email, Name: user.Name}); err != nil {
		logger.Error("jobs: dispatch welcome mail", "error", err)
	}
}

// statusChangedNotification feeds the in-app feed and, when the laundry
// has a webhook configured, its integration endpoint.
type statusChangedNotification struct {
	change *services.StatusChange
}

func (n *statusChangedNotification) Via() []string {
	if n.change.Order.Laundry.WebhookURL != "" {
		return []string{"database", "webhook"}
	}
	return []string{"database"}
}

func (n *statusChangedNotification) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		UserID:  n.change.Order.CustomerID,
		Type:    "order.status_changed",
		Message: fmt.Sprintf("Order %s is now %s", n.change.Order.Number, n.change.To),
		Data:    n.change,
	}
}

func (n *statusChangedNotification) ToWebhook() notification.WebhookData {
	return notification.WebhookData{
		URL:     n.change.Order.Laundry.WebhookURL,
		Payload: n.change,
		Headers: map[string]string{"X-Washly-Event": "order.status_changed"},
	}
}
