package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gate-dashboard/logger"
	userModel "gate-dashboard/models/user"
	"gate-dashboard/types"
	"gate-dashboard/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController handles account registration, approval and login
type AuthController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{db: db, loggerInstance: asyncLogger}
}

// Register creates a dashboard account in pending status; an admin approval
// is required before login succeeds.
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req types.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing register request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var existing userModel.User
	err := h.db.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: "Email or username already registered",
			Status:  fiber.StatusConflict,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Database error while checking existing user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create account",
			Status:  fiber.StatusInternalServerError,
		})
	}

	newUser := userModel.User{
		FullName:     req.FullName,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: passwordHash,
		Department:   req.Department,
		Status:       userModel.StatusPending,
	}
	if err := h.db.Create(&newUser).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create account",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success(fmt.Sprintf("Account %s registered, pending approval", newUser.Username))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Registration successful! Your account is pending approval.",
		Data:    newUser,
	})
}

// Login authenticates by username or email and returns a signed token for
// approved accounts.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing login request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var account userModel.User
	var err error
	if req.Username != "" {
		err = h.db.Where("username = ?", req.Username).First(&account).Error
	} else {
		err = h.db.Where("email = ?", strings.ToLower(req.Email)).First(&account).Error
	}
	if err != nil || !utils.CheckPassword(account.PasswordHash, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid credentials",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if account.Status != userModel.StatusApproved {
		return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
			Message: "Your account is pending approval",
			Status:  fiber.StatusForbidden,
		})
	}

	token, err := utils.GenerateToken(&account)
	if err != nil {
		logger.Error("Failed to issue token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to issue token",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success(fmt.Sprintf("User %s logged in", account.Username))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Token:   token,
		Data:    account,
	})
}

// GetPendingUsers lists accounts awaiting approval
func (h *AuthController) GetPendingUsers(c *fiber.Ctx) error {
	pending := []userModel.User{}
	err := h.db.Where("status = ?", userModel.StatusPending).
		Order("created_at ASC").
		Find(&pending).Error
	if err != nil {
		logger.Error("Failed to load pending users", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to load pending users",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Pending users retrieved successfully",
		Data:    pending,
	})
}

// ApproveUser unlocks a pending account
func (h *AuthController) ApproveUser(c *fiber.Ctx) error {
	return h.setUserStatus(c, userModel.StatusApproved, "User approved successfully")
}

// RejectUser refuses a pending account
func (h *AuthController) RejectUser(c *fiber.Ctx) error {
	return h.setUserStatus(c, userModel.StatusRejected, "User rejected")
}

func (h *AuthController) setUserStatus(c *fiber.Ctx, status userModel.Status, message string) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid user id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var account userModel.User
	if err := h.db.First(&account, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "User not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to find user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if account.Status != userModel.StatusPending {
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("User is already %s", account.Status),
			Status:  fiber.StatusConflict,
		})
	}

	account.Status = status
	if err := h.db.Save(&account).Error; err != nil {
		logger.Error("Failed to update user status", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update user status",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success(fmt.Sprintf("User %s is now %s", account.Username, status))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Data:    account,
	})
}
