// Package routes wires the HTTP surface: the public storefront API and
// the session-gated admin API.
package routes

import (
	"github.com/souqdz/souq/app/controllers"
	"github.com/souqdz/souq/app/repositories"
	"github.com/souqdz/souq/app/services"
	"github.com/souqdz/souq/pkg/container"
	"github.com/souqdz/souq/pkg/ctx"
	"github.com/souqdz/souq/pkg/logger"
	"github.com/souqdz/souq/pkg/middleware"
	"github.com/souqdz/souq/pkg/rbac"
	"github.com/souqdz/souq/pkg/router"
	"github.com/souqdz/souq/pkg/ws"
)

// RegisterAPI builds the controllers and mounts every route.
// The hub must already be running (see internal/server).
func RegisterAPI(r *router.Router, hub *ws.Hub) {
	productRepo := repositories.NewProductRepository()
	categoryRepo := repositories.NewCategoryRepository()
	orderRepo := repositories.NewOrderRepository()
	userRepo := repositories.NewUserRepository()

	// Shared singletons; the CLI and gRPC surfaces resolve the same
	// instances through the container.
	container.Singleton("services.catalog", func() interface{} {
		return services.NewCatalogService(productRepo, categoryRepo)
	})
	container.Singleton("services.orders", func() interface{} {
		return services.NewOrderService(orderRepo, productRepo)
	})

	catalogService := container.Make("services.catalog").(*services.CatalogService)
	productService := services.NewProductService(productRepo, categoryRepo)
	orderService := container.Make("services.orders").(*services.OrderService)
	authService := services.NewAuthService(userRepo)

	configCtrl := controllers.NewConfigController()
	homeCtrl := controllers.NewHomeController(catalogService)
	shopCtrl := controllers.NewShopController(catalogService)
	productCtrl := controllers.NewProductController(catalogService)
	orderCtrl := controllers.NewOrderController(orderService)
	authCtrl := controllers.NewAuthController(authService)
	adminProducts := controllers.NewAdminProductController(productRepo, productService)
	adminCategories := controllers.NewAdminCategoryController(categoryRepo)
	adminOrders := controllers.NewAdminOrderController(orderService, hub)

	api := r.Group("/api")

	// Client bootstrap.
	api.Get("/config", "config.show", ctx.Wrap(configCtrl.Show))

	// Home page.
	api.Get("/search", "home.search", ctx.Wrap(homeCtrl.Search))
	api.Get("/home/categories", "home.categories", ctx.Wrap(homeCtrl.Categories))
	api.Get("/home/new-arrivals", "home.arrivals", ctx.Wrap(homeCtrl.NewArrivals))

	// Shop listing.
	api.Get("/categories", "shop.categories", ctx.Wrap(shopCtrl.Categories))
	api.Get("/products", "shop.products", ctx.Wrap(shopCtrl.Products))

	// Product page.
	api.Get("/products/{slug}", "products.show", ctx.Wrap(productCtrl.Show))
	api.Get("/products/{slug}/related", "products.related", ctx.Wrap(productCtrl.Related))
	api.Get("/shipping-quote", "shipping.quote", ctx.Wrap(productCtrl.ShippingQuote))

	// Checkout and tracking.
	api.Post("/orders", "orders.place", ctx.Wrap(orderCtrl.Place))
	api.Get("/orders/track", "orders.track", ctx.Wrap(orderCtrl.Track))

	// Read-only catalog GraphQL.
	if gqlCtrl, err := controllers.NewGraphQLController(catalogService); err == nil {
		api.Post("/graphql", "graphql.query", ctx.Wrap(gqlCtrl.Query))
	} else {
		logger.Error("graphql schema build failed", "error", err)
	}

	// Admin gate.
	api.Post("/admin/login", "admin.login", ctx.Wrap(authCtrl.Login), middleware.MaybeAuth, rbac.Guest)

	admin := api.Group("/admin", middleware.Auth, rbac.HasRole("admin"))
	admin.Post("/logout", "admin.logout", ctx.Wrap(authCtrl.Logout))
	admin.Get("/session", "admin.session", ctx.Wrap(authCtrl.Session))

	admin.Get("/products", "admin.products.index", ctx.Wrap(adminProducts.Index))
	admin.Post("/products", "admin.products.store", ctx.Wrap(adminProducts.Store))
	admin.Put("/products/{id}", "admin.products.update", ctx.Wrap(adminProducts.Update))
	admin.Delete("/products/{id}", "admin.products.destroy", ctx.Wrap(adminProducts.Destroy))
	admin.Delete("/products/{id}/images/{index}", "admin.products.images.remove", ctx.Wrap(adminProducts.RemoveImage))
	admin.Post("/uploads", "admin.uploads.store", ctx.Wrap(adminProducts.Upload))

	admin.Get("/categories", "admin.categories.index", ctx.Wrap(adminCategories.Index))
	admin.Post("/categories", "admin.categories.store", ctx.Wrap(adminCategories.Store))
	admin.Put("/categories/{id}", "admin.categories.update", ctx.Wrap(adminCategories.Update))
	admin.Delete("/categories/{id}", "admin.categories.destroy", ctx.Wrap(adminCategories.Destroy))

	admin.Get("/orders", "admin.orders.index", ctx.Wrap(adminOrders.Index))
	admin.Get("/orders/counts", "admin.orders.counts", ctx.Wrap(adminOrders.Counts))
	admin.Patch("/orders/{id}/status", "admin.orders.status", ctx.Wrap(adminOrders.UpdateStatus))
	admin.Get("/orders/stream", "admin.orders.stream", ctx.Wrap(adminOrders.Stream))
	admin.Get("/ws", "admin.ws", ctx.Wrap(adminOrders.Socket))
}
