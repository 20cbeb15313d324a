package watchman

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gate-dashboard/database"
	"gate-dashboard/logger"
	"gate-dashboard/models/gatepass"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	wc := NewWatchmanController(db, logger.NewAsyncLogger(db))
	app := fiber.New()
	app.Get("/api/watchman/pending-pickups", wc.GetPendingPickups)
	app.Get("/api/watchman/gate-passes", wc.GetAllGatePasses)
	app.Get("/api/watchman/search", wc.SearchGatePasses)
	app.Get("/api/watchman/summary", wc.GetSummary)
	app.Post("/api/watchman/verify/:gatePassId", wc.VerifyPickup)
	app.Post("/api/watchman/reject/:gatePassId", wc.RejectPickup)
	return app, db
}

func seedPendingPass(t *testing.T, db *gorm.DB) *gatepass.GatePass {
	t.Helper()

	p := &gatepass.GatePass{
		GatePassNumber:  "GP-1001",
		OrderNumber:     "ORD-1001",
		CustomerName:    "Asha Rao",
		CustomerVehicle: "KA01AB1234",
		ProductName:     "Industrial Fan 600mm",
		Quantity:        12,
		DriverName:      "Ravi",
		DeliveryType:    gatepass.DeliveryTypePartLoad,
		DispatchStatus:  gatepass.DispatchReadyForPickup,
		Status:          gatepass.StatusPending,
		IssuedAt:        time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	parsed := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp, parsed
}

func TestVerifyEndpointSendIn(t *testing.T) {
	app, db := setupApp(t)
	p := seedPendingPass(t, db)

	resp, body := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/watchman/verify/%d", p.ID), map[string]string{
		"customerName": "asha rao",
		"vehicleNo":    "KA01AB1234",
		"driverName":   "Ravi",
		"action":       "send_in",
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "entered_for_pickup", body["status"])
	assert.NotEmpty(t, body["message"])
}

func TestVerifyEndpointIdentityMismatchIsOK(t *testing.T) {
	app, db := setupApp(t)
	p := seedPendingPass(t, db)

	resp, body := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/watchman/verify/%d", p.ID), map[string]string{
		"customerName": "Impostor",
		"action":       "release",
	})

	// A mismatch is a business outcome, not an HTTP failure.
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "identity_mismatch", body["status"])

	var reloaded gatepass.GatePass
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, gatepass.StatusPending, reloaded.Status)
}

func TestVerifyEndpointValidation(t *testing.T) {
	app, db := setupApp(t)
	p := seedPendingPass(t, db)

	resp, _ := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/watchman/verify/%d", p.ID), map[string]string{
		"action": "release",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/watchman/verify/99999", map[string]string{
		"customerName": "Asha Rao",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/watchman/verify/not-a-number", map[string]string{
		"customerName": "Asha Rao",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRejectEndpoint(t *testing.T) {
	app, db := setupApp(t)
	p := seedPendingPass(t, db)

	resp, _ := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/watchman/reject/%d", p.ID), map[string]string{
		"rejectionReason": "",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/watchman/reject/%d", p.ID), map[string]string{
		"rejectionReason": "Invalid ID",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body["message"], "Invalid ID")

	// A rejected pass refuses further verification.
	resp, _ = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/watchman/verify/%d", p.ID), map[string]string{
		"customerName": "Asha Rao",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestPendingPickupsEndpoint(t *testing.T) {
	app, db := setupApp(t)
	seedPendingPass(t, db)

	req := httptest.NewRequest(fiber.MethodGet, "/api/watchman/pending-pickups", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body struct {
		Data []gatepass.GatePass `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, gatepass.DispatchReadyForPickup, body.Data[0].DispatchStatus)
}

func TestSearchEndpointRequiresTerm(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/watchman/search", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
