package controllers

import (
	"github.com/shashiranjanraj/washly/app/services"
	"github.com/shashiranjanraj/washly/pkg/ctx"
)

// ProductController handles a laundry's service catalogue.
type ProductController struct {
	service *services.ProductService
}

func NewProductController() *ProductController {
	return &ProductController{service: services.NewProductService()}
}

// Index lists a laundry's products. GET /api/laundries/{id}/products
func (p *ProductController) Index(c *ctx.Context) {
	laundryID, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("laundry not found")
		return
	}

	products, err := p.service.ListForLaundry(laundryID, c.Query("category"))
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(products)
}

// Create adds a product. POST /api/laundries/{id}/products
func (p *ProductController) Create(c *ctx.Context) {
	laundryID, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("laundry not found")
		return
	}

	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}

	product, err := p.service.Create(c.Principal(), laundryID, in)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Created(product)
}

// Update edits a product. PUT /api/products/{id}
func (p *ProductController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("product not found")
		return
	}

	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}

	product, err := p.service.Update(c.Principal(), id, in)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(product)
}

// Delete removes a product. DELETE /api/products/{id}
func (p *ProductController) Delete(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("product not found")
		return
	}

	if err := p.service.Delete(c.Principal(), id); err != nil {
		c.GuardError(err)
		return
	}
	c.Success(map[string]any{"deleted": true})
}
