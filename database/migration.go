package database

import (
	"gate-dashboard/logger"
	"gate-dashboard/models/gatelog"
	"gate-dashboard/models/gatepass"
	"gate-dashboard/models/log"
	"gate-dashboard/models/order"
	"gate-dashboard/models/person"
	"gate-dashboard/models/user"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every registered model and the
// composite indexes the hot queries depend on.
func Migrate(db *gorm.DB) error {
	models := []interface{}{
		&user.User{},
		&person.Person{},
		&gatelog.GateLog{},
		&gatepass.GatePass{},
		&gatepass.GatePassStatusEvent{},
		&order.ProductionOrder{},
		&order.SalesOrder{},
		&log.Log{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return err
	}

	// Composite indexes for the pending-pickups list, the open-going-out
	// lookup and the today windows of the summaries.
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_gate_passes_status_issued ON gate_passes (status, issued_at)",
		"CREATE INDEX IF NOT EXISTS idx_gate_logs_open_going_out ON gate_logs (person_id, type, closed_at)",
		"CREATE INDEX IF NOT EXISTS idx_gate_logs_type_created ON gate_logs (type, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_gate_pass_events_status_created ON gate_pass_status_events (status, created_at)",
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			logger.Error("Failed to create index", err)
			return err
		}
	}

	return nil
}
