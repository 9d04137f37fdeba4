package router

import (
	"github.com/gin-gonic/gin"
	"github.com/renztrending/backend/internal/interfaces/http/handler"
)

// Handlers are the HTTP handlers mounted by RegisterAPI
type Handlers struct {
	System       *handler.SystemHandler
	Auth         *handler.AuthHandler
	Account      *handler.AccountHandler
	Catalog      *handler.CatalogHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Review       *handler.ReviewHandler
	Wishlist     *handler.WishlistHandler
	Newsletter   *handler.NewsletterHandler
	AdminCatalog *handler.AdminCatalogHandler
	AdminOrder   *handler.AdminOrderHandler
	Report       *handler.ReportHandler
}

// Guards are the access-control middleware applied per group
type Guards struct {
	// Authenticated requires a valid access token
	Authenticated gin.HandlerFunc
	// Staff requires the staff role; it runs after Authenticated
	Staff gin.HandlerFunc
	// AuthAttempts throttles register, login and refresh
	AuthAttempts gin.HandlerFunc
}

// RegisterAPI mounts the storefront and admin route groups on r
func RegisterAPI(r *Router, h Handlers, g Guards) *Router {
	return r.Register(storefrontGroups(h, g)...).Register(adminGroup(h, g))
}

func storefrontGroups(h Handlers, g Guards) []*DomainGroup {
	system := NewDomainGroup("system", "")
	system.GET("/health", h.System.Health)

	auth := NewDomainGroup("auth", "/auth")
	auth.POST("/register", g.AuthAttempts, h.Auth.Register).
		POST("/login", g.AuthAttempts, h.Auth.Login).
		POST("/refresh", g.AuthAttempts, h.Auth.Refresh).
		POST("/logout", g.Authenticated, h.Auth.Logout)

	account := NewDomainGroup("account", "/account").Use(g.Authenticated)
	account.GET("/profile", h.Account.GetProfile).
		PUT("/profile", h.Account.UpdateProfile).
		PUT("/password", h.Account.ChangePassword).
		GET("/addresses", h.Account.ListAddresses).
		POST("/addresses", h.Account.CreateAddress).
		PUT("/addresses/:id", h.Account.UpdateAddress).
		DELETE("/addresses/:id", h.Account.DeleteAddress).
		GET("/billing-addresses", h.Account.ListBillingAddresses).
		POST("/billing-addresses", h.Account.CreateBillingAddress).
		DELETE("/billing-addresses/:id", h.Account.DeleteBillingAddress)

	catalog := NewDomainGroup("catalog", "/catalog")
	catalog.GET("/home", h.Catalog.Home).
		GET("/products", h.Catalog.ListProducts).
		GET("/products/:slug", h.Catalog.GetProduct).
		GET("/products/:slug/related", h.Catalog.RelatedProducts).
		GET("/products/:slug/reviews", h.Catalog.ProductReviews).
		GET("/categories", h.Catalog.ListCategories)

	cart := NewDomainGroup("cart", "/cart").Use(g.Authenticated)
	cart.GET("", h.Cart.GetCart).
		POST("/items", h.Cart.AddItem).
		PUT("/items/:id", h.Cart.UpdateItem).
		DELETE("/items/:id", h.Cart.RemoveItem).
		POST("/items/:id/action", h.Cart.ApplyAction)

	checkout := NewDomainGroup("checkout", "/checkout").Use(g.Authenticated)
	checkout.POST("/cod", h.Order.PlaceCODOrder).
		POST("/buy-now", h.Order.BuyNow).
		POST("/gateway/orders", h.Order.CreateGatewayOrder).
		POST("/gateway/verify", h.Order.VerifyGatewayPayment)

	orders := NewDomainGroup("orders", "/orders").Use(g.Authenticated)
	orders.GET("", h.Order.ListOrders).
		GET("/:id", h.Order.GetOrder).
		PUT("/:id/address", h.Order.UpdateAddress).
		POST("/:id/cancel", h.Order.CancelOrder)

	reviews := NewDomainGroup("reviews", "/reviews").Use(g.Authenticated)
	reviews.POST("", h.Review.Create)

	wishlist := NewDomainGroup("wishlist", "/wishlist").Use(g.Authenticated)
	wishlist.GET("", h.Wishlist.List).
		POST("", h.Wishlist.Add).
		DELETE("/:product_id", h.Wishlist.Remove).
		GET("/:product_id/status", h.Wishlist.Status)

	newsletter := NewDomainGroup("newsletter", "/newsletter")
	newsletter.POST("/subscribe", h.Newsletter.Subscribe).
		POST("/unsubscribe", h.Newsletter.Unsubscribe)

	return []*DomainGroup{system, auth, account, catalog, cart, checkout, orders, reviews, wishlist, newsletter}
}

func adminGroup(h Handlers, g Guards) *DomainGroup {
	admin := NewDomainGroup("admin", "/admin").Use(g.Authenticated, g.Staff)

	admin.Group("products", "/products").
		GET("", h.AdminCatalog.ListProducts).
		POST("", h.AdminCatalog.CreateProduct).
		PUT("/:id", h.AdminCatalog.UpdateProduct).
		POST("/:id/variants", h.AdminCatalog.AddVariant).
		POST("/:id/images", h.AdminCatalog.UploadImage)

	admin.POST("/product-groups", h.AdminCatalog.CreateGroup).
		GET("/categories", h.AdminCatalog.ListCategories).
		POST("/categories", h.AdminCatalog.CreateCategory).
		GET("/colors", h.AdminCatalog.ListColors).
		POST("/colors", h.AdminCatalog.CreateColor).
		GET("/sizes", h.AdminCatalog.ListSizes).
		POST("/sizes", h.AdminCatalog.CreateSize)

	admin.Group("inventory", "/inventory").
		GET("", h.AdminCatalog.InventorySummary).
		POST("/bulk", h.AdminCatalog.BulkUpdateStock).
		POST("/import", h.AdminCatalog.ImportStock).
		PUT("/:id", h.AdminCatalog.UpdateStock)

	admin.Group("orders", "/orders").
		GET("", h.AdminOrder.ListOrders).
		POST("/bulk-status", h.AdminOrder.BulkUpdateStatus).
		GET("/:id", h.AdminOrder.GetOrder).
		PUT("/:id/status", h.AdminOrder.UpdateStatus).
		PUT("/:id/tracking", h.AdminOrder.UpdateTracking).
		PUT("/:id/shipment", h.AdminOrder.UpdateShipment)

	admin.GET("/analytics/orders", h.Report.OrderAnalytics).
		GET("/exports/orders", h.Report.ExportOrders).
		GET("/exports/categories", h.Report.ExportCategories).
		GET("/audit", h.Report.RecentAudit)

	admin.Group("newsletter", "/newsletter").
		GET("/subscriptions", h.Newsletter.ListSubscriptions).
		POST("/confirmations", h.Newsletter.SendConfirmations)

	return admin
}

// Upload routes are the only ones allowed a body above the JSON limit
const (
	ImageUploadRoute = "/api/v1/admin/products/:id/images"
	StockImportRoute = "/api/v1/admin/inventory/import"
)
