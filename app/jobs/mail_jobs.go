package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/washly/pkg/mail"
)

// OrderStatusMailJob emails a customer when their order moves to a new
// status. Dispatched from the status-changed listener so the HTTP
// request never waits on SMTP.
type OrderStatusMailJob struct {
	To       string `json:"to"`
	Name     string `json:"name"`
	Number   string `json:"number"`
	Status   string `json:"status"`
	Previous string `json:"previous"`
}

func (j *OrderStatusMailJob) Handle() error {
	subject := fmt.Sprintf("Order %s update", j.Number)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your order <strong>%s</strong> moved from %s to <strong>%s</strong>.</p>",
		j.Name, j.Number, j.Previous, j.Status)
	return mail.To(j.To).Subject(subject).Body(body).Send()
}

// WelcomeMailJob greets a new customer after signup.
type WelcomeMailJob struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

func (j *WelcomeMailJob) Handle() error {
	body := fmt.Sprintf("<p>Hi %s,</p><p>Welcome to Washly. Your nearest laundries are one tap away.</p>", j.Name)
	return mail.To(j.To).Subject("Welcome to Washly").Body(body).Send()
}
