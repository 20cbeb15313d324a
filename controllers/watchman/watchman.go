package watchman

import (
	"errors"
	"fmt"
	"strconv"

	"gate-dashboard/logger"
	"gate-dashboard/middleware"
	watchmanService "gate-dashboard/services/watchman"
	"gate-dashboard/types"
	watchmanTypes "gate-dashboard/types/watchman"
	"gate-dashboard/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// WatchmanController handles gate security HTTP requests
type WatchmanController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *watchmanService.Service
}

// NewWatchmanController creates a new watchman controller
func NewWatchmanController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *WatchmanController {
	return &WatchmanController{
		DB:      db,
		Logger:  asyncLogger,
		Service: watchmanService.NewService(db),
	}
}

// GetPendingPickups lists passes awaiting verification, oldest first
func (wc *WatchmanController) GetPendingPickups(c *fiber.Ctx) error {
	pickups, err := wc.Service.ListPendingPickups()
	if err != nil {
		logger.Error("Failed to load pending pickups", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load pending pickups",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Pending pickups retrieved successfully",
		Data:    pickups,
	})
}

// GetAllGatePasses lists every gate pass, optionally filtered by ?q=
func (wc *WatchmanController) GetAllGatePasses(c *fiber.Ctx) error {
	passes, err := wc.Service.SearchGatePasses(c.Query("q"))
	if err != nil {
		logger.Error("Failed to load gate passes", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load gate passes",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Gate passes retrieved successfully",
		Data:    passes,
	})
}

// SearchGatePasses is the explicit search endpoint; unlike the list route it
// requires a term.
func (wc *WatchmanController) SearchGatePasses(c *fiber.Ctx) error {
	searchTerm := c.Query("q")
	if searchTerm == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Search term is required",
		})
	}

	results, err := wc.Service.SearchGatePasses(searchTerm)
	if err != nil {
		logger.Error("Failed to search gate passes", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to search gate passes",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Search completed successfully",
		Data: watchmanTypes.SearchResult{
			SearchTerm: searchTerm,
			Results:    results,
			Count:      len(results),
		},
	})
}

// GetSummary returns live aggregate counts for the watchman dashboard
func (wc *WatchmanController) GetSummary(c *fiber.Ctx) error {
	summary, err := wc.Service.Summary()
	if err != nil {
		logger.Error("Failed to compute watchman summary", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to compute summary",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Summary retrieved successfully",
		Data:    summary,
	})
}

// VerifyPickup checks the submitted identity against a gate pass and applies
// send_in or release. An identity mismatch is a 200 with a status flag, not
// an error: the gate screen shows the message and the pass stays untouched.
func (wc *WatchmanController) VerifyPickup(c *fiber.Ctx) error {
	gatePassID, err := parseGatePassID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid gate pass id",
		})
	}

	var req watchmanTypes.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse verify request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	result, err := wc.Service.VerifyPickup(gatePassID, req, middleware.ActorFromContext(c))
	if err != nil {
		return wc.errorResponse(c, "verify", gatePassID, err)
	}

	if result.Status == watchmanService.StatusIdentityMismatch {
		logger.Warning(fmt.Sprintf("Identity mismatch on gate pass %d", gatePassID))
	} else {
		logger.Success(fmt.Sprintf("Gate pass %d moved to status %s", gatePassID, result.Status))
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// RejectPickup refuses a pending pickup for a mandatory reason
func (wc *WatchmanController) RejectPickup(c *fiber.Ctx) error {
	gatePassID, err := parseGatePassID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid gate pass id",
		})
	}

	var req watchmanTypes.RejectRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse reject request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	pass, err := wc.Service.RejectPickup(gatePassID, req.RejectionReason, middleware.ActorFromContext(c))
	if err != nil {
		return wc.errorResponse(c, "reject", gatePassID, err)
	}

	logger.Success(fmt.Sprintf("Gate pass %d rejected", gatePassID))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("Pickup rejected: %s", *pass.RejectionReason),
		Data:    pass,
	})
}

func (wc *WatchmanController) errorResponse(c *fiber.Ctx, op string, gatePassID uint, err error) error {
	switch {
	case errors.Is(err, watchmanService.ErrGatePassNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Gate pass not found",
		})
	case errors.Is(err, watchmanService.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Gate pass does not allow this action in its current status",
		})
	case errors.Is(err, watchmanService.ErrEmptyReason):
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Rejection reason is required",
		})
	case errors.Is(err, watchmanService.ErrUnknownAction):
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Action must be either 'send_in' or 'release'",
		})
	default:
		logger.Error(fmt.Sprintf("Failed to %s gate pass %d", op, gatePassID), err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func parseGatePassID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("gatePassId"), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid gate pass id")
	}
	return uint(id), nil
}
