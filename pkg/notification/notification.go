// Package notification delivers user-facing notifications over multiple
// channels. Order status changes are the main producer: the mail channel
// emails the customer, the webhook channel pings a laundry's integration
// URL, and the database channel keeps an in-app notification feed.
//
//	type StatusChanged struct { Order models.Order }
//	func (n *StatusChanged) Via() []string { return []string{"mail", "database"} }
//	func (n *StatusChanged) ToMail() notification.MailData { ... }
//
//	notification.Send(order.Customer.Email, &StatusChanged{Order: order})
package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/washly/pkg/logger"
	"github.com/shashiranjanraj/washly/pkg/mail"
)

// MailData carries the data needed to send an email notification.
type MailData struct {
	To      string // overrides the notifiable address if set
	Subject string
	Body    string // HTML
	Text    string // plain-text fallback
}

// WebhookData carries an arbitrary JSON payload to POST to a URL.
type WebhookData struct {
	URL     string
	Payload interface{}
	Headers map[string]string
}

// DatabaseData is stored in the washly_notifications table for the
// in-app feed.
type DatabaseData struct {
	UserID  uint
	Type    string
	Message string
	Data    interface{}
}

// Record is the GORM model backing the database channel.
type Record struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Type      string     `gorm:"size:100;not null" json:"type"`
	Message   string     `gorm:"type:text" json:"message"`
	Data      string     `gorm:"type:text" json:"data"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Record) TableName() string { return "washly_notifications" }

// Notification is implemented by every notification type.
type Notification interface {
	// Via returns the channel names to deliver on: "mail", "webhook", "database".
	Via() []string
}

// Mailable supports the mail channel.
type Mailable interface {
	ToMail() MailData
}

// Webhookable supports the webhook channel.
type Webhookable interface {
	ToWebhook() WebhookData
}

// Databaseable supports the database channel.
type Databaseable interface {
	ToDatabase() DatabaseData
}

var db *gorm.DB

// UseDB enables the database channel. Call once at boot.
func UseDB(conn *gorm.DB) {
	db = conn
	db.AutoMigrate(&Record{}) //nolint:errcheck
}

// Send dispatches the notification through every channel returned by
// Via(). address is the email used by the mail channel.
func Send(address string, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := deliver(address, channel, n); err != nil {
			logger.Error("notification: channel failed",
				"channel", channel, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

// SendAsync dispatches in a background goroutine. Delivery errors are
// logged, not returned.
func SendAsync(address string, n Notification) {
	go Send(address, n) //nolint:errcheck
}

func deliver(address, channel string, n Notification) error {
	switch channel {
	case "mail":
		m, ok := n.(Mailable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Mailable", n)
		}
		return deliverMail(address, m.ToMail())

	case "webhook":
		wh, ok := n.(Webhookable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Webhookable", n)
		}
		return deliverWebhook(wh.ToWebhook())

	case "database":
		d, ok := n.(Databaseable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Databaseable", n)
		}
		return deliverDatabase(d.ToDatabase())

	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

func deliverMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}
	body := d.Body
	if body == "" {
		body = d.Text
	}
	return mail.To(to).Subject(d.Subject).Body(body).Send()
}

func deliverWebhook(d WebhookData) error {
	if d.URL == "" {
		return fmt.Errorf("notification: webhook URL is empty")
	}

	raw, err := json.Marshal(d.Payload)
	if err != nil {
		return fmt.Errorf("notification: webhook marshal: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, d.URL, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("notification: webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range d.Headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("notification: webhook send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification: webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}

func deliverDatabase(d DatabaseData) error {
	if db == nil {
		return fmt.Errorf("notification: database channel not configured, call UseDB at boot")
	}

	raw, err := json.Marshal(d.Data)
	if err != nil {
		raw = []byte("{}")
	}

	return db.Create(&Record{
		UserID:  d.UserID,
		Type:    d.Type,
		Message: d.Message,
		Data:    string(raw),
	}).Error
}

// MarkRead marks a stored notification as read.
func MarkRead(id, userID uint) error {
	if db == nil {
		return fmt.Errorf("notification: database channel not configured")
	}
	now := time.Now()
	return db.Model(&Record{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read_at", &now).Error
}

// ForUser returns the most recent stored notifications for a user.
func ForUser(userID uint, limit int) ([]Record, error) {
	if db == nil {
		return nil, fmt.Errorf("notification: database channel not configured")
	}
	var out []Record
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
