package controllers

import (
	"github.com/shashiranjanraj/washly/app/services"
	"github.com/shashiranjanraj/washly/pkg/ctx"
)

// LaundryController handles the public directory and laundry management.
type LaundryController struct {
	service   *services.LaundryService
	products  *services.ProductService
	dashboard *services.DashboardService
	exports   *services.ExportService
}

func NewLaundryController() *LaundryController {
	return &LaundryController{
		service:   services.NewLaundryService(),
		products:  services.NewProductService(),
		dashboard: services.NewDashboardService(),
		exports:   services.NewExportService(),
	}
}

// Index lists active laundries. GET /api/laundries
func (l *LaundryController) Index(c *ctx.Context) {
	laundries, pagination, err := l.service.List(c.Query("city"),
		c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(map[string]any{"laundries": laundries, "pagination": pagination})
}

// Show returns one laundry. GET /api/laundries/{id}
func (l *LaundryController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("laundry not found")
		return
	}

	laundry, err := l.service.Get(id)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(laundry)
}

type createLaundryInput struct {
	services.LaundryInput
	AdminID uint `json:"admin_id" validate:"required,numeric"`
}

// Create registers a laundry. POST /api/laundries (super admin)
func (l *LaundryController) Create(c *ctx.Context) {
	var in createLaundryInput
	if !c.BindJSON(&in) {
		return
	}

	laundry, err := l.service.Create(in.LaundryInput, in.AdminID)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Created(laundry)
}

// Update edits laundry details. PUT /api/laundries/{id}
func (l *LaundryController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("laundry not found")
		return
	}

	var in services.LaundryInput
	if !c.BindJSON(&in) {
		return
	}

	laundry, err := l.service.Update(c.Principal(), id, in)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(laundry)
}

type laundryStatusInput struct {
	Status string `json:"status" validate:"required,in=ACTIVE,SUSPENDED,CLOSED"`
}

// SetStatus suspends or reopens a laundry. PATCH /api/laundries/{id}/status
// (super admin)
func (l *LaundryController) SetStatus(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("laundry not found")
		return
	}

	var in laundryStatusInput
	if !c.BindJSON(&in) {
		return
	}

	laundry, err := l.service.SetStatus(id, in.Status)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(laundry)
}

// Dashboard returns order aggregates for one laundry.
// GET /api/laundries/{id}/dashboard
func (l *LaundryController) Dashboard(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("laundry not found")
		return
	}

	d, err := l.dashboard.ForLaundry(c.Principal(), id)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(d)
}

// Export writes the laundry's order history to storage and returns the
// download URL. POST /api/laundries/{id}/exports
func (l *LaundryController) Export(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("laundry not found")
		return
	}

	export, err := l.exports.Orders(c.Principal(), id,
		c.DefaultQuery("format", "csv"), c.Query("from"), c.Query("to"))
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Created(export)
}
