package gatepass

import (
	"time"
)

// GatePassStatusEvent represents a status change event for a gate pass
type GatePassStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for gate pass relationship
	GatePassID uint     `gorm:"not null;index" json:"gatePassId"`
	GatePass   GatePass `gorm:"foreignKey:GatePassID" json:"gatePass"`

	Status    Status    `gorm:"type:varchar(30);not null" json:"status"`
	Note      string    `gorm:"type:text" json:"note"`
	CreatedBy string    `gorm:"type:varchar(255);not null" json:"createdBy"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

// TableName sets the table name for the GatePassStatusEvent model
func (GatePassStatusEvent) TableName() string {
	return "gate_pass_status_events"
}
