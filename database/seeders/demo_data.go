package seeders

import (
	"fmt"
	"strings"
	"time"

	"gate-dashboard/logger"
	"gate-dashboard/models/gatepass"
	"gate-dashboard/models/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewGatePassNumber builds a human-readable unique gate pass number, the
// format dispatch prints on the physical slip.
func NewGatePassNumber() string {
	return "GP-" + strings.ToUpper(uuid.New().String()[:8])
}

// SeedDemoData fills an empty database with a handful of gate passes and
// orders so the dashboard screens have something to show in development.
// It does nothing when gate passes already exist.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&gatepass.GatePass{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	passes := []gatepass.GatePass{
		{
			GatePassNumber:  NewGatePassNumber(),
			OrderNumber:     "ORD-2025-0114",
			CustomerName:    "Asha Rao",
			CustomerContact: "+91 98450 11223",
			CustomerVehicle: "KA01AB1234",
			ProductName:     "Industrial Fan 600mm",
			Quantity:        12,
			DriverName:      "Ravi",
			DriverContact:   "+91 98450 44556",
			DeliveryType:    gatepass.DeliveryTypePartLoad,
			DispatchStatus:  gatepass.DispatchReadyForPickup,
			Status:          gatepass.StatusPending,
			IssuedAt:        now.Add(-2 * time.Hour),
		},
		{
			GatePassNumber:  NewGatePassNumber(),
			OrderNumber:     "ORD-2025-0117",
			CustomerName:    "Meena Traders",
			CustomerContact: "+91 98220 77881",
			CustomerVehicle: "MH12CD5678",
			ProductName:     "Exhaust Blower 2HP",
			Quantity:        4,
			DeliveryType:    gatepass.DeliveryTypeSelf,
			DispatchStatus:  gatepass.DispatchPendingDispatch,
			Status:          gatepass.StatusPending,
			IssuedAt:        now.Add(-30 * time.Minute),
		},
	}
	if err := db.Create(&passes).Error; err != nil {
		return err
	}

	productionOrders := []order.ProductionOrder{
		{
			OrderNumber:       "ORD-2025-0114",
			ProductName:       "Industrial Fan 600mm",
			CustomerName:      "Asha Rao",
			Quantity:          12,
			Status:            "ready_for_pickup",
			CurrentDepartment: "showroom",
		},
		{
			OrderNumber:       "ORD-2025-0121",
			ProductName:       "Ceiling Fan 1200mm",
			CustomerName:      "Vimal Electricals",
			Quantity:          50,
			Status:            "in_assembly",
			CurrentDepartment: "production",
		},
	}
	if err := db.Create(&productionOrders).Error; err != nil {
		return err
	}

	salesOrders := []order.SalesOrder{
		{
			OrderNumber:       "SO-2025-0033",
			ProductName:       "Exhaust Blower 2HP",
			CustomerName:      "Meena Traders",
			Quantity:          4,
			Status:            "payment_received",
			CurrentDepartment: "sales",
		},
	}
	if err := db.Create(&salesOrders).Error; err != nil {
		return err
	}

	logger.Success(fmt.Sprintf("Seeded %d demo gate passes", len(passes)))
	return nil
}
