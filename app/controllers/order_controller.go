package controllers

import (
	"github.com/shashiranjanraj/washly/app/models"
	"github.com/shashiranjanraj/washly/app/services"
	"github.com/shashiranjanraj/washly/pkg/ctx"
	"github.com/shashiranjanraj/washly/pkg/ws"
)

// OrderController handles order placement, listing and the status
// lifecycle endpoints.
type OrderController struct {
	service *services.OrderService
}

func NewOrderController() *OrderController {
	return &OrderController{service: services.NewOrderService()}
}

// Create places an order. POST /api/orders
func (o *OrderController) Create(c *ctx.Context) {
	var in services.CreateOrderInput
	if !c.BindJSON(&in) {
		return
	}

	order, err := o.service.Create(c.Principal(), in)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Created(order)
}

// Show returns one order. GET /api/orders/{id}
func (o *OrderController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("order not found")
		return
	}

	order, err := o.service.Get(c.Principal(), id)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(order)
}

// Mine lists the caller's own orders. GET /api/orders
func (o *OrderController) Mine(c *ctx.Context) {
	orders, pagination, err := o.service.ListMine(c.Principal(),
		c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(map[string]any{"orders": orders, "pagination": pagination})
}

// ForLaundry lists one laundry's orders. GET /api/laundries/{id}/orders
func (o *OrderController) ForLaundry(c *ctx.Context) {
	laundryID, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("laundry not found")
		return
	}

	status := models.OrderStatus(c.Query("status"))
	orders, pagination, err := o.service.ListForLaundry(c.Principal(), laundryID,
		status, c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(map[string]any{"orders": orders, "pagination": pagination})
}

type statusInput struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note" validate:"nullable,max=500"`
}

// UpdateStatus moves an order through its lifecycle.
// PATCH /api/orders/{id}/status
func (o *OrderController) UpdateStatus(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("order not found")
		return
	}

	var in statusInput
	if !c.BindJSON(&in) {
		return
	}

	order, err := o.service.UpdateStatus(c.Principal(), id,
		models.OrderStatus(in.Status), in.Note)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(order)
}

type cancelInput struct {
	Note string `json:"note" validate:"nullable,max=500"`
}

// Cancel is the customer cancellation shortcut. POST /api/orders/{id}/cancel
func (o *OrderController) Cancel(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("order not found")
		return
	}

	var in cancelInput
	if !c.BindJSON(&in) {
		return
	}

	order, err := o.service.Cancel(c.Principal(), id, in.Note)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(order)
}

// AuditTrail returns the order's status history. GET /api/orders/{id}/history
func (o *OrderController) AuditTrail(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("order not found")
		return
	}

	logs, err := o.service.AuditTrail(c.Principal(), id)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(logs)
}

// Feed upgrades to a WebSocket subscribed to the caller's order topics.
// GET /api/ws/orders
func (o *OrderController) Feed(c *ctx.Context) {
	p := c.Principal()
	topics := []string{ws.TopicOrdersUser(p.ID)}
	if p.LaundryID != nil {
		topics = append(topics, ws.TopicOrdersLaundry(*p.LaundryID))
	}
	ws.Upgrade(c.W, c.R, ws.OrderFeed, topics...)
}
