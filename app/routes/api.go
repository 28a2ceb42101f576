package routes

import (
	"github.com/shashiranjanraj/washly/app/controllers"
	"github.com/shashiranjanraj/washly/app/repositories"
	"github.com/shashiranjanraj/washly/pkg/ctx"
	"github.com/shashiranjanraj/washly/pkg/guard"
	"github.com/shashiranjanraj/washly/pkg/middleware"
	"github.com/shashiranjanraj/washly/pkg/rbac"
	"github.com/shashiranjanraj/washly/pkg/router"
)

// RegisterAPI mounts every application route. Route names follow the
// "resource.action" convention so `washly route:list` reads naturally.
func RegisterAPI(r *router.Router) {
	authController := controllers.NewAuthController()
	orderController := controllers.NewOrderController()
	laundryController := controllers.NewLaundryController()
	productController := controllers.NewProductController()
	userController := controllers.NewUserController()

	authed := middleware.Authenticated(repositories.NewUserRepository())

	api := r.Group("/api")

	// Public.
	api.Post("/auth/register", "auth.register", ctx.Wrap(authController.Register))
	api.Post("/auth/login", "auth.login", ctx.Wrap(authController.Login))
	api.Get("/laundries", "laundries.index", ctx.Wrap(laundryController.Index))
	api.Get("/laundries/{id}", "laundries.show", ctx.Wrap(laundryController.Show))
	api.Get("/laundries/{id}/products", "products.index", ctx.Wrap(productController.Index))

	// Any authenticated principal.
	protected := api.Group("", authed)
	protected.Get("/auth/me", "auth.me", ctx.Wrap(authController.Me))
	protected.Get("/orders", "orders.mine", ctx.Wrap(orderController.Mine))
	protected.Post("/orders", "orders.create", ctx.Wrap(orderController.Create),
		rbac.Requires(guard.RoleCustomer))
	protected.Get("/orders/{id}", "orders.show", ctx.Wrap(orderController.Show))
	protected.Get("/orders/{id}/history", "orders.history", ctx.Wrap(orderController.AuditTrail))
	protected.Patch("/orders/{id}/status", "orders.status", ctx.Wrap(orderController.UpdateStatus))
	protected.Post("/orders/{id}/cancel", "orders.cancel", ctx.Wrap(orderController.Cancel))
	protected.Get("/ws/orders", "ws.orders", ctx.Wrap(orderController.Feed))
	protected.Get("/notifications", "notifications.index", ctx.Wrap(userController.Notifications))
	protected.Post("/notifications/{id}/read", "notifications.read", ctx.Wrap(userController.ReadNotification))

	// Laundry staff. The tenant binding is enforced per-laundry inside
	// the services; RequiresTenant additionally rejects admins that are
	// not attached to any laundry.
	staff := api.Group("", authed, rbac.RequiresTenant(guard.RoleAdmin))
	staff.Put("/laundries/{id}", "laundries.update", ctx.Wrap(laundryController.Update))
	staff.Get("/laundries/{id}/orders", "laundries.orders", ctx.Wrap(orderController.ForLaundry))
	staff.Get("/laundries/{id}/dashboard", "laundries.dashboard", ctx.Wrap(laundryController.Dashboard))
	staff.Post("/laundries/{id}/exports", "laundries.export", ctx.Wrap(laundryController.Export))
	staff.Post("/laundries/{id}/products", "products.create", ctx.Wrap(productController.Create))
	staff.Post("/laundries/{id}/staff", "staff.create", ctx.Wrap(userController.CreateStaff))
	staff.Put("/products/{id}", "products.update", ctx.Wrap(productController.Update))
	staff.Delete("/products/{id}", "products.delete", ctx.Wrap(productController.Delete))

	// Platform administration.
	admin := api.Group("", authed, rbac.Requires(guard.RoleSuperAdmin))
	admin.Post("/laundries", "laundries.create", ctx.Wrap(laundryController.Create))
	admin.Patch("/laundries/{id}/status", "laundries.status", ctx.Wrap(laundryController.SetStatus))
	admin.Get("/users", "users.index", ctx.Wrap(userController.Index))
	admin.Post("/users/{id}/suspend", "users.suspend", ctx.Wrap(userController.Suspend))
	admin.Post("/users/{id}/unsuspend", "users.unsuspend", ctx.Wrap(userController.Unsuspend))
	admin.Get("/dashboard", "dashboard.platform", ctx.Wrap(userController.PlatformDashboard))
}
