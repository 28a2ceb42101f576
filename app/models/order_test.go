package models_test

import (
	"testing"

	"github.com/shashiranjanraj/washly/app/models"
)

var allStatuses = []models.OrderStatus{
	models.StatusPending, models.StatusConfirmed, models.StatusInProgress,
	models.StatusReadyForPickup, models.StatusOutForDelivery, models.StatusDelivered,
	models.StatusCompleted, models.StatusCanceled, models.StatusRefunded,
}

func TestHappyPath(t *testing.T) {
	path := []models.OrderStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusInProgress,
		models.StatusReadyForPickup, models.StatusOutForDelivery,
		models.StatusDelivered, models.StatusCompleted,
	}
	for i := 0; i < len(path)-1; i++ {
		if !path[i].CanTransitionTo(path[i+1]) {
			t.Errorf("%s should allow %s", path[i], path[i+1])
		}
	}
}

func TestCancelableUntilDelivered(t *testing.T) {
	cancelable := []models.OrderStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusInProgress,
		models.StatusReadyForPickup, models.StatusOutForDelivery,
	}
	for _, s := range cancelable {
		if !s.CanTransitionTo(models.StatusCanceled) {
			t.Errorf("%s should allow CANCELED", s)
		}
	}
	if models.StatusDelivered.CanTransitionTo(models.StatusCanceled) {
		t.Error("DELIVERED must not allow CANCELED")
	}
}

func TestDeliveredOnlyCompletes(t *testing.T) {
	for _, next := range allStatuses {
		got := models.StatusDelivered.CanTransitionTo(next)
		want := next == models.StatusCompleted
		if got != want {
			t.Errorf("DELIVERED -> %s: got %v, want %v", next, got, want)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	terminal := map[models.OrderStatus]bool{
		models.StatusCompleted: true,
		models.StatusCanceled:  true,
		models.StatusRefunded:  true,
	}
	for _, s := range allStatuses {
		if s.Terminal() != terminal[s] {
			t.Errorf("%s: Terminal() = %v, want %v", s, s.Terminal(), terminal[s])
		}
		if terminal[s] {
			for _, next := range allStatuses {
				if s.CanTransitionTo(next) {
					t.Errorf("terminal %s must not allow %s", s, next)
				}
			}
		}
	}
}

func TestNoSelfTransition(t *testing.T) {
	for _, s := range allStatuses {
		if s.CanTransitionTo(s) {
			t.Errorf("%s must not transition to itself", s)
		}
	}
}

func TestNoSkippingForward(t *testing.T) {
	if models.StatusPending.CanTransitionTo(models.StatusInProgress) {
		t.Error("PENDING must not skip to IN_PROGRESS")
	}
	if models.StatusConfirmed.CanTransitionTo(models.StatusDelivered) {
		t.Error("CONFIRMED must not skip to DELIVERED")
	}
	if models.StatusInProgress.CanTransitionTo(models.StatusConfirmed) {
		t.Error("lifecycle must not run backwards")
	}
}

func TestRefundedHasNoInboundEdge(t *testing.T) {
	for _, s := range allStatuses {
		if s.CanTransitionTo(models.StatusRefunded) {
			t.Errorf("%s must not reach REFUNDED through the status endpoint", s)
		}
	}
}

func TestValid(t *testing.T) {
	for _, s := range allStatuses {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if models.OrderStatus("SHIPPED").Valid() {
		t.Error("SHIPPED is not a known status")
	}
	if models.OrderStatus("").Valid() {
		t.Error("empty status is not valid")
	}
}
