package controllers

import (
	"github.com/shashiranjanraj/washly/app/services"
	"github.com/shashiranjanraj/washly/pkg/ctx"
	"github.com/shashiranjanraj/washly/pkg/notification"
)

// UserController handles platform user administration.
type UserController struct {
	service   *services.UserService
	dashboard *services.DashboardService
}

func NewUserController() *UserController {
	return &UserController{
		service:   services.NewUserService(),
		dashboard: services.NewDashboardService(),
	}
}

// Index lists accounts. GET /api/users (super admin)
func (u *UserController) Index(c *ctx.Context) {
	users, pagination, err := u.service.List(c.Query("role"),
		c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(map[string]any{"users": users, "pagination": pagination})
}

// CreateStaff adds staff to a laundry. POST /api/laundries/{id}/staff
func (u *UserController) CreateStaff(c *ctx.Context) {
	laundryID, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("laundry not found")
		return
	}

	var in services.StaffInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := u.service.CreateStaff(c.Principal(), laundryID, in)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Created(user)
}

// Suspend blocks an account. POST /api/users/{id}/suspend (super admin)
func (u *UserController) Suspend(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("user not found")
		return
	}

	var in services.SuspendInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := u.service.Suspend(id, in.Reason)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(user)
}

// Unsuspend lifts a suspension. POST /api/users/{id}/unsuspend (super admin)
func (u *UserController) Unsuspend(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("user not found")
		return
	}

	user, err := u.service.Unsuspend(id)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(user)
}

// PlatformDashboard returns platform-wide aggregates.
// GET /api/dashboard (super admin)
func (u *UserController) PlatformDashboard(c *ctx.Context) {
	d, err := u.dashboard.Platform()
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(d)
}

// Notifications returns the caller's in-app feed. GET /api/notifications
func (u *UserController) Notifications(c *ctx.Context) {
	records, err := notification.ForUser(c.Principal().ID, c.QueryInt("limit", 50))
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(records)
}

// ReadNotification marks one feed entry read.
// POST /api/notifications/{id}/read
func (u *UserController) ReadNotification(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("notification not found")
		return
	}
	if err := notification.MarkRead(id, c.Principal().ID); err != nil {
		c.GuardError(err)
		return
	}
	c.Success(map[string]any{"read": true})
}
