package orders

import (
	"gate-dashboard/logger"
	ordersService "gate-dashboard/services/orders"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// OrdersController serves the cross-department order status view
type OrdersController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *ordersService.Service
}

// NewOrdersController creates a new orders controller
func NewOrdersController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *OrdersController {
	return &OrdersController{
		DB:      db,
		Logger:  asyncLogger,
		Service: ordersService.NewService(db),
	}
}

// GetStatusTracking returns production and sales orders matching ?q=. The
// response body is the tracking object itself, matching the polling screen's
// contract, rather than the ApiResponse envelope.
func (oc *OrdersController) GetStatusTracking(c *fiber.Ctx) error {
	tracking, err := oc.Service.GetStatusTracking(c.Query("q"))
	if err != nil {
		logger.Error("Failed to load order status tracking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load order status tracking",
		})
	}

	return c.Status(fiber.StatusOK).JSON(tracking)
}
