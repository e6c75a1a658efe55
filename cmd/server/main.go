package main

import (
	"log"
	"strings"

	"mapper-backend/internal/audit"
	"mapper-backend/internal/auth"
	"mapper-backend/internal/catalog"
	"mapper-backend/internal/config"
	"mapper-backend/internal/database"
	"mapper-backend/internal/markets"
	"mapper-backend/internal/models"
	"mapper-backend/internal/uploadmapper"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		BodyLimit: 64 * 1024 * 1024, // spreadsheets with embedded images get big
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

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
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Market registry
	adminRoutes.Post("/markets", markets.CreateMarketHandler())
	adminRoutes.Put("/markets/:id", markets.UpdateMarketHandler())
	adminRoutes.Delete("/markets/:id", markets.DeleteMarketHandler())

	// Product catalog
	adminRoutes.Post("/products", catalog.CreateProductHandler())
	adminRoutes.Put("/products/:id", catalog.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", catalog.DeleteProductHandler())
	adminRoutes.Post("/products/import", catalog.BulkImportProductsHandler())
	adminRoutes.Post("/products/:id/scrape", catalog.ScrapeProductHandler(cfg))

	// Shared (authenticated) routes

	protected.Get("/markets", markets.ListMarketsHandler())
	protected.Get("/products", catalog.ListProductsHandler())

	// Upload-file mapping
	protected.Get("/mapping/solutions", uploadmapper.ListSolutionsHandler())
	protected.Post("/mapping/jobs", uploadmapper.CreateJobHandler(cfg))
	protected.Get("/mapping/jobs", uploadmapper.ListJobsHandler())
	protected.Get("/mapping/jobs/:id/download", uploadmapper.DownloadJobResultHandler(cfg))

	// Upload duplicate checks & records
	protected.Post("/uploads/check", markets.CheckUploadHandler())
	protected.Post("/uploads", markets.RecordUploadHandler())

	// Audit & correction logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())
	protected.Get("/correction-logs", audit.ListCorrectionLogsHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
