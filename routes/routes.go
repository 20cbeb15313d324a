package routes

import (
	"gate-dashboard/constants"
	"gate-dashboard/controllers/auth"
	"gate-dashboard/controllers/gateentry"
	"gate-dashboard/controllers/orders"
	"gate-dashboard/controllers/watchman"
	"gate-dashboard/logger"
	"gate-dashboard/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	authController := auth.NewAuthController(db, asyncLogger)
	watchmanController := watchman.NewWatchmanController(db, asyncLogger)
	gateEntryController := gateentry.NewGateEntryController(db, asyncLogger)
	ordersController := orders.NewOrdersController(db, asyncLogger)

	// Start the async audit logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Use(middleware.RequestAudit(asyncLogger))

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "gate-dashboard",
			"status":  "ok",
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/login", authController.Login)
	api.Post("/register", authController.Register)

	/*=============================================================================
	| Account Administration
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.RequirePermissions(
		constants.PermAdminFull,
	))
	authGroup.Get("/pending-users", authController.GetPendingUsers)
	authGroup.Put("/approve-user/:id", authController.ApproveUser)
	authGroup.Put("/reject-user/:id", authController.RejectUser)

	/*=============================================================================
	| Watchman Routes (pickup verification)
	===============================================================================*/
	watchmanGroup := api.Group("/watchman").Use(middleware.RequireAnyPermission(
		constants.PermWatchmanFull,
		constants.PermAdminFull,
	))
	watchmanGroup.Get("/pending-pickups", watchmanController.GetPendingPickups)
	watchmanGroup.Get("/gate-passes", watchmanController.GetAllGatePasses)
	watchmanGroup.Get("/search", watchmanController.SearchGatePasses)
	watchmanGroup.Get("/summary", watchmanController.GetSummary)
	watchmanGroup.Post("/verify/:gatePassId", watchmanController.VerifyPickup)
	watchmanGroup.Post("/reject/:gatePassId", watchmanController.RejectPickup)

	/*=============================================================================
	| Gate Entry Routes (registry + movement log)
	===============================================================================*/
	gateEntryGroup := api.Group("/gate-entry").Use(middleware.RequireAnyPermission(
		constants.PermWatchmanFull,
		constants.PermAdminFull,
	))
	gateEntryGroup.Post("/register", gateEntryController.RegisterPerson)
	gateEntryGroup.Get("/users", gateEntryController.GetPersons)
	gateEntryGroup.Delete("/users/:phone", gateEntryController.DeletePerson)
	gateEntryGroup.Post("/manual-entry", gateEntryController.ManualEntry)
	gateEntryGroup.Post("/manual-exit", gateEntryController.ManualExit)
	gateEntryGroup.Post("/going-out", gateEntryController.GoingOut)
	gateEntryGroup.Post("/coming-back", gateEntryController.ComingBack)
	gateEntryGroup.Get("/logs", gateEntryController.GetGateLogs)
	gateEntryGroup.Get("/going-out-logs", gateEntryController.GetGoingOutLogs)
	gateEntryGroup.Get("/today-logs", gateEntryController.GetTodayLogs)

	/*=============================================================================
	| Order Status Tracking (any authenticated department)
	===============================================================================*/
	ordersGroup := api.Group("/orders").Use(middleware.RequireAnyPermission())
	ordersGroup.Get("/status-tracking", ordersController.GetStatusTracking)
}
