package gateentry

import (
	"errors"
	"fmt"

	"gate-dashboard/logger"
	"gate-dashboard/models/gatelog"
	gateentryService "gate-dashboard/services/gateentry"
	"gate-dashboard/types"
	gateentryTypes "gate-dashboard/types/gateentry"
	"gate-dashboard/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GateEntryController handles person registry and movement log HTTP requests
type GateEntryController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *gateentryService.Service
}

// NewGateEntryController creates a new gate entry controller
func NewGateEntryController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *GateEntryController {
	return &GateEntryController{
		DB:      db,
		Logger:  asyncLogger,
		Service: gateentryService.NewService(db),
	}
}

// RegisterPerson adds a person to the gate registry
func (gc *GateEntryController) RegisterPerson(c *fiber.Ctx) error {
	var req gateentryTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse register request body", err)
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

	p, err := gc.Service.RegisterPerson(req.Name, req.Phone, req.Photo)
	if err != nil {
		return gc.errorResponse(c, "register person", err)
	}

	logger.Success(fmt.Sprintf("Registered person %s at the gate", p.Name))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Person registered successfully",
		Data:    p,
	})
}

// GetPersons lists all registered persons
func (gc *GateEntryController) GetPersons(c *fiber.Ctx) error {
	persons, err := gc.Service.ListPersons()
	if err != nil {
		logger.Error("Failed to load gate registry", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load registered persons",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Registered persons retrieved successfully",
		Data:    persons,
	})
}

// DeletePerson removes a registry entry by phone
func (gc *GateEntryController) DeletePerson(c *fiber.Ctx) error {
	phone := c.Params("phone")
	if err := gc.Service.DeletePerson(phone); err != nil {
		return gc.errorResponse(c, "delete person", err)
	}

	logger.Success(fmt.Sprintf("Deleted gate registry entry for phone %s", phone))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Person deleted successfully",
	})
}

// ManualEntry records an entry event for a registered person
func (gc *GateEntryController) ManualEntry(c *fiber.Ctx) error {
	return gc.movement(c, gc.Service.RecordEntry, "Entry recorded successfully")
}

// ManualExit records an exit event for a registered person
func (gc *GateEntryController) ManualExit(c *fiber.Ctx) error {
	return gc.movement(c, gc.Service.RecordExit, "Exit recorded successfully")
}

// GoingOut opens a temporary absence for an admitted person
func (gc *GateEntryController) GoingOut(c *fiber.Ctx) error {
	var req gateentryTypes.GoingOutRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse going-out request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	entry, err := gc.Service.RecordGoingOut(req.Phone, req.Reason, req.Details)
	if err != nil {
		return gc.errorResponse(c, "record going-out", err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Going-out recorded successfully",
		Data:    entry,
	})
}

// ComingBack closes the open going-out for a person
func (gc *GateEntryController) ComingBack(c *fiber.Ctx) error {
	var req gateentryTypes.ComingBackRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse coming-back request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	entry, err := gc.Service.RecordComingBack(req.Phone)
	if err != nil {
		return gc.errorResponse(c, "record coming-back", err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Coming-back recorded successfully",
		Data:    entry,
	})
}

// GetGateLogs lists the newest movement events, all types
func (gc *GateEntryController) GetGateLogs(c *fiber.Ctx) error {
	logs, err := gc.Service.ListGateLogs(c.QueryInt("limit", 100))
	if err != nil {
		logger.Error("Failed to load gate logs", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load gate logs",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Gate logs retrieved successfully",
		Data:    logs,
	})
}

// GetGoingOutLogs lists the newest going-out events
func (gc *GateEntryController) GetGoingOutLogs(c *fiber.Ctx) error {
	logs, err := gc.Service.ListGoingOutLogs(c.QueryInt("limit", 100))
	if err != nil {
		logger.Error("Failed to load going-out logs", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load going-out logs",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Going-out logs retrieved successfully",
		Data:    logs,
	})
}

// GetTodayLogs returns movement counts since local midnight
func (gc *GateEntryController) GetTodayLogs(c *fiber.Ctx) error {
	summary, err := gc.Service.TodayLogs()
	if err != nil {
		logger.Error("Failed to compute today's gate summary", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to compute today's summary",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Today's summary retrieved successfully",
		Data:    summary,
	})
}

func (gc *GateEntryController) movement(c *fiber.Ctx, record func(phone, details string) (*gatelog.GateLog, error), successMessage string) error {
	var req gateentryTypes.MovementRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse movement request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	entry, err := record(req.Phone, req.Details)
	if err != nil {
		return gc.errorResponse(c, "record movement", err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: successMessage,
		Data:    entry,
	})
}

func (gc *GateEntryController) errorResponse(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, gateentryService.ErrPersonNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "No registered person with this phone",
		})
	case errors.Is(err, gateentryService.ErrPhoneRegistered):
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Phone number is already registered",
		})
	case errors.Is(err, gateentryService.ErrInvalidPhone):
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Phone number is not valid",
		})
	case errors.Is(err, gateentryService.ErrAlreadyOut):
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Person already has an open going-out",
		})
	case errors.Is(err, gateentryService.ErrNoOpenGoingOut):
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "No open going-out found for this person",
		})
	case errors.Is(err, gateentryService.ErrUnknownReason):
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Reason must be one of: Office Work, Personal Work, Medical, Other",
		})
	default:
		logger.Error(fmt.Sprintf("Failed to %s", op), err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
