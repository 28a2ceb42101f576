package services

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/washly/app/models"
	"github.com/shashiranjanraj/washly/app/repositories"
	"github.com/shashiranjanraj/washly/pkg/event"
	"github.com/shashiranjanraj/washly/pkg/guard"
	"github.com/shashiranjanraj/washly/pkg/metrics"
	"github.com/shashiranjanraj/washly/pkg/orm"
	"github.com/shashiranjanraj/washly/pkg/ws"
)

// EventOrderPlaced fires after a new order is created, payload *models.Order.
// EventOrderStatusChanged fires after every persisted transition, payload
// *StatusChange.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// StatusChange is the payload published on every order transition.
type StatusChange struct {
	Order     *models.Order      `json:"order"`
	From      models.OrderStatus `json:"from"`
	To        models.OrderStatus `json:"to"`
	ChangedBy uint               `json:"changed_by"`
}

// OrderService implements order creation, listing and the status
// lifecycle.
type OrderService struct {
	orders    *repositories.OrderRepository
	laundries *repositories.LaundryRepository
	products  *repositories.ProductRepository
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders:    repositories.NewOrderRepository(),
		laundries: repositories.NewLaundryRepository(),
		products:  repositories.NewProductRepository(),
	}
}

// CreateOrderInput is the payload for placing an order.
type CreateOrderInput struct {
	LaundryID uint                   `json:"laundry_id" validate:"required,numeric"`
	AddressID *uint                  `json:"address_id"`
	Notes     string                 `json:"notes" validate:"nullable,max=1000"`
	Items     []CreateOrderItemInput `json:"items"`
}

// CreateOrderItemInput is one requested product line.
type CreateOrderItemInput struct {
	ProductID uint `json:"product_id" validate:"required,numeric"`
	Quantity  int  `json:"quantity" validate:"required,gte=1,lte=100"`
}

// Create places a new PENDING order for the principal. Prices are read
// from the laundry's products at this moment and frozen on the items.
func (s *OrderService) Create(p *guard.Principal, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, guard.Conflict("order must contain at least one item")
	}

	laundry, err := s.laundries.FindByID(in.LaundryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, guard.NotFound("laundry not found")
		}
		return nil, err
	}
	if !laundry.Active() {
		return nil, guard.Conflict("laundry is not accepting orders")
	}

	ids := make([]uint, 0, len(in.Items))
	qty := make(map[uint]int, len(in.Items))
	for _, item := range in.Items {
		ids = append(ids, item.ProductID)
		qty[item.ProductID] += item.Quantity
	}

	products, err := s.products.FindForOrder(laundry.ID, ids)
	if err != nil {
		return nil, err
	}
	if len(products) != len(qty) {
		return nil, guard.NotFound("one or more products are unavailable")
	}

	order := &models.Order{
		Number:     newOrderNumber(),
		CustomerID: p.ID,
		LaundryID:  laundry.ID,
		AddressID:  in.AddressID,
		Status:     models.StatusPending,
		Notes:      in.Notes,
	}
	for _, product := range products {
		n := qty[product.ID]
		order.Items = append(order.Items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  n,
			Price:     product.Price,
		})
		order.Total += product.Price * int64(n)
	}

	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	event.FireAsync(EventOrderPlaced, order)
	return order, nil
}

// Get loads an order and checks the principal may see it: the customer
// who placed it, staff of the laundry it belongs to, or a super admin.
func (s *OrderService) Get(p *guard.Principal, id uint) (*models.Order, error) {
	order, err := s.orders.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, guard.NotFound("order not found")
		}
		return nil, err
	}
	if gerr := guard.AuthorizeOwnership(p, order.CustomerID, order.LaundryID); gerr != nil {
		return nil, gerr
	}
	return &order, nil
}

// AuditTrail returns the status history for an order the principal may
// see.
func (s *OrderService) AuditTrail(p *guard.Principal, id uint) ([]models.OrderStatusLog, error) {
	if _, err := s.Get(p, id); err != nil {
		return nil, err
	}
	return s.orders.StatusLogs(id)
}

// ListMine returns the principal's own orders.
func (s *OrderService) ListMine(p *guard.Principal, page, limit int) ([]models.Order, orm.Pagination, error) {
	return s.orders.ForCustomer(p.ID, page, limit)
}

// ListForLaundry returns a laundry's orders after a tenant check.
func (s *OrderService) ListForLaundry(p *guard.Principal, laundryID uint, status models.OrderStatus, page, limit int) ([]models.Order, orm.Pagination, error) {
	if gerr := guard.AuthorizeTenant(p, laundryID); gerr != nil {
		return nil, orm.Pagination{}, gerr
	}
	return s.orders.ForLaundry(laundryID, status, page, limit)
}

// UpdateStatus moves an order to a requested status.
//
// The current status is re-read here, the transition is validated
// against the lifecycle graph, and the write is conditional on the
// status still being what was read. A concurrent writer therefore
// surfaces as a conflict, never as a silently skipped state.
//
// Requesting the status the order already has is a no-op: the call
// succeeds and no audit row is written.
func (s *OrderService) UpdateStatus(p *guard.Principal, id uint, requested models.OrderStatus, note string) (*models.Order, error) {
	order, err := s.orders.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, guard.NotFound("order not found")
		}
		return nil, err
	}

	if gerr := s.authorizeTransition(p, &order, requested); gerr != nil {
		return nil, gerr
	}

	if order.Status == requested {
		return &order, nil
	}

	if !requested.Valid() || !order.Status.CanTransitionTo(requested) {
		return nil, guard.InvalidTransition(string(order.Status), string(requested))
	}

	from := order.Status
	err = s.orders.UpdateStatusIf(order.ID, from, requested, p.ID, note)
	if err != nil {
		if errors.Is(err, repositories.ErrStale) {
			return nil, guard.Conflict("order status changed, reload and retry")
		}
		return nil, err
	}

	order.Status = requested
	metrics.OrderTransition(string(from), string(requested))
	s.publishChange(&order, from, requested, p.ID)

	return &order, nil
}

// Cancel is the customer-facing shortcut for moving an order to
// CANCELED. Staff use UpdateStatus directly.
func (s *OrderService) Cancel(p *guard.Principal, id uint, note string) (*models.Order, error) {
	return s.UpdateStatus(p, id, models.StatusCanceled, note)
}

// authorizeTransition decides who may request which status.
//
//   - Super admins may request anything the graph allows.
//   - Laundry admins may move their own laundry's orders.
//   - Customers may only cancel their own order, and only before the
//     laundry starts working on it.
func (s *OrderService) authorizeTransition(p *guard.Principal, order *models.Order, requested models.OrderStatus) *guard.Error {
	switch p.Role {
	case guard.RoleSuperAdmin:
		return nil

	case guard.RoleAdmin:
		return guard.AuthorizeTenant(p, order.LaundryID)

	case guard.RoleCustomer:
		if order.CustomerID != p.ID {
			return guard.Forbidden("not your order")
		}
		if requested != models.StatusCanceled {
			return guard.Forbidden("customers can only cancel orders")
		}
		if order.Status != models.StatusPending && order.Status != models.StatusConfirmed {
			return guard.Forbidden("order can no longer be canceled")
		}
		return nil
	}

	return guard.Forbidden("insufficient permissions")
}

// publishChange fans the transition out: domain event for in-process
// listeners (mail job, notifications) and websocket frames for the
// customer's and the laundry's live feeds.
func (s *OrderService) publishChange(order *models.Order, from, to models.OrderStatus, changedBy uint) {
	change := &StatusChange{Order: order, From: from, To: to, ChangedBy: changedBy}
	event.FireAsync(EventOrderStatusChanged, change)

	if frame, err := json.Marshal(change); err == nil {
		ws.OrderFeed.Publish(ws.TopicOrdersUser(order.CustomerID), frame)
		ws.OrderFeed.Publish(ws.TopicOrdersLaundry(order.LaundryID), frame)
	}
}

// newOrderNumber generates a short, unique, human-readable order number
// like WSH-20260831-3f9a2c.
func newOrderNumber() string {
	var b [3]byte
	rand.Read(b[:]) //nolint:errcheck
	return fmt.Sprintf("WSH-%s-%s", time.Now().Format("20060102"), hex.EncodeToString(b[:]))
}
