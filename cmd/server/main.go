package main

import (
	"log"
	"strings"

	"storefront-backend/internal/admin"
	"storefront-backend/internal/audit"
	"storefront-backend/internal/auth"
	"storefront-backend/internal/cart"
	"storefront-backend/internal/catalog"
	"storefront-backend/internal/config"
	"storefront-backend/internal/database"
	"storefront-backend/internal/inventory"
	"storefront-backend/internal/models"
	"storefront-backend/internal/order"
	"storefront-backend/internal/storefront"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/register", auth.RegisterCustomerHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Public vitrin (misafir görünümü)
	api.Get("/storefront/:slug", storefront.GetStoreHandler())
	api.Get("/storefront/:slug/catalogs", storefront.ListCatalogsHandler())
	api.Get("/storefront/:slug/catalogs/:id/products", storefront.ListProductsHandler(cfg.CurrencySuffix))
	api.Get("/storefront/:slug/catalogs/:id/products/:productId", storefront.GetProductHandler(cfg.CurrencySuffix))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Super admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))

	// Mağaza yönetimi
	adminRoutes.Post("/stores", admin.CreateStoreHandler())
	adminRoutes.Get("/stores", admin.ListStoresHandler())
	adminRoutes.Get("/stores/:id", admin.GetStoreHandler())
	adminRoutes.Put("/stores/:id", admin.UpdateStoreHandler())
	adminRoutes.Delete("/stores/:id", admin.DeleteStoreHandler())
	adminRoutes.Post("/stores/:id/admin", admin.CreateStoreAdminHandler())
	adminRoutes.Get("/stores/:id/admins", admin.ListStoreAdminsHandler())

	// Store admin routes — satıcının kendi mağazası
	storeRoutes := protected.Group("/store")
	storeRoutes.Use(auth.RequireRole(models.RoleStoreAdmin))

	// Taban ürün listesi
	storeRoutes.Get("/products", inventory.ListProductsHandler())
	storeRoutes.Post("/products", inventory.CreateProductHandler())
	storeRoutes.Put("/products/:id", inventory.UpdateProductHandler())
	storeRoutes.Delete("/products/:id", inventory.DeleteProductHandler())

	// Katalog yönetimi + katalog×ürün override'ları
	storeRoutes.Post("/catalogs", catalog.CreateCatalogHandler())
	storeRoutes.Get("/catalogs", catalog.ListCatalogsHandler())
	storeRoutes.Put("/catalogs/:id", catalog.UpdateCatalogHandler())
	storeRoutes.Delete("/catalogs/:id", catalog.DeleteCatalogHandler())
	storeRoutes.Get("/catalogs/:id/products", catalog.ListMembersHandler())
	storeRoutes.Post("/catalogs/:id/products", catalog.AddProductHandler())
	storeRoutes.Delete("/catalogs/:id/products/:productId", catalog.RemoveProductHandler())
	storeRoutes.Put("/catalogs/:id/products/:productId/override", catalog.UpsertOverrideHandler())
	storeRoutes.Get("/catalogs/:id/preview", catalog.PreviewHandler(cfg.CurrencySuffix))

	// Müşteri routes — sepet ve siparişler
	customerRoutes := protected.Group("/storefront/:slug")
	customerRoutes.Use(auth.RequireRole(models.RoleCustomer))

	customerRoutes.Get("/cart", cart.GetCartHandler())
	customerRoutes.Post("/cart/items", cart.AddItemHandler())
	customerRoutes.Put("/cart/items/:itemId", cart.UpdateItemHandler())
	customerRoutes.Delete("/cart/items/:itemId", cart.DeleteItemHandler())
	customerRoutes.Delete("/cart", cart.ClearCartHandler())

	customerRoutes.Post("/checkout", order.CheckoutHandler())
	customerRoutes.Get("/orders", order.ListOrdersHandler())
	customerRoutes.Get("/orders/:id", order.GetOrderHandler())
	customerRoutes.Post("/orders/:id/reorder", order.ReorderHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
