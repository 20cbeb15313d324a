package orders

import (
	"fmt"
	"strings"
	"testing"

	"gate-dashboard/database"
	"gate-dashboard/models/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedOrders(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&order.ProductionOrder{
		OrderNumber:       "ORD-2025-0114",
		ProductName:       "Industrial Fan 600mm",
		CustomerName:      "Asha Rao",
		Quantity:          12,
		Status:            "ready_for_pickup",
		CurrentDepartment: "showroom",
	}).Error)
	require.NoError(t, db.Create(&order.ProductionOrder{
		OrderNumber:       "ORD-2025-0121",
		ProductName:       "Ceiling Fan 1200mm",
		CustomerName:      "Vimal Electricals",
		Quantity:          50,
		Status:            "in_assembly",
		CurrentDepartment: "production",
	}).Error)
	require.NoError(t, db.Create(&order.SalesOrder{
		OrderNumber:       "SO-2025-0033",
		ProductName:       "Exhaust Blower 2HP",
		CustomerName:      "Meena Traders",
		Quantity:          4,
		Status:            "payment_received",
		CurrentDepartment: "sales",
	}).Error)
}

func TestGetStatusTrackingEmptyQuery(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	seedOrders(t, db)

	for _, query := range []string{"", "   "} {
		tracking, err := svc.GetStatusTracking(query)
		require.NoError(t, err)
		require.NotNil(t, tracking.ProductionOrders)
		require.NotNil(t, tracking.SalesOrders)
		assert.Empty(t, tracking.ProductionOrders)
		assert.Empty(t, tracking.SalesOrders)
	}
}

func TestGetStatusTrackingFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	seedOrders(t, db)

	byProduct, err := svc.GetStatusTracking("fan")
	require.NoError(t, err)
	assert.Len(t, byProduct.ProductionOrders, 2)
	assert.Empty(t, byProduct.SalesOrders)

	byCustomer, err := svc.GetStatusTracking("MEENA")
	require.NoError(t, err)
	assert.Empty(t, byCustomer.ProductionOrders)
	require.Len(t, byCustomer.SalesOrders, 1)
	assert.Equal(t, "SO-2025-0033", byCustomer.SalesOrders[0].OrderNumber)

	byDepartment, err := svc.GetStatusTracking("production")
	require.NoError(t, err)
	assert.Len(t, byDepartment.ProductionOrders, 1)

	byStatus, err := svc.GetStatusTracking("payment_received")
	require.NoError(t, err)
	assert.Len(t, byStatus.SalesOrders, 1)

	none, err := svc.GetStatusTracking("no-such-order")
	require.NoError(t, err)
	assert.Empty(t, none.ProductionOrders)
	assert.Empty(t, none.SalesOrders)
}
