package gatepass

import (
	"time"
)

// GatePass authorizes removal of goods for one order. It is created by the
// dispatch pipeline when goods become ready for pickup, mutated only by the
// watchman verification workflow, and never deleted — rejected passes remain
// as an audit record.
type GatePass struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"gatePassId"`
	GatePassNumber string `gorm:"type:varchar(50);not null;unique" json:"gatePassNumber"`
	OrderNumber    string `gorm:"type:varchar(100);not null;index" json:"orderNumber"`

	CustomerName    string `gorm:"type:varchar(255);not null" json:"customerName"`
	CustomerContact string `gorm:"type:varchar(20)" json:"customerContact"`
	CustomerVehicle string `gorm:"type:varchar(50)" json:"customerVehicle"`
	ProductName     string `gorm:"type:varchar(255);not null" json:"productName"`
	Quantity        int    `gorm:"not null" json:"quantity"`
	DriverName      string `gorm:"type:varchar(255)" json:"driverName"`
	DriverContact   string `gorm:"type:varchar(20)" json:"driverContact"`

	DeliveryType   DeliveryType   `gorm:"type:varchar(20);not null" json:"deliveryType"`
	DispatchStatus DispatchStatus `gorm:"type:varchar(30);not null" json:"dispatchStatus"`
	Status         Status         `gorm:"type:varchar(30);not null;default:pending;index" json:"status"`

	IssuedAt        time.Time  `gorm:"not null;index" json:"issuedAt"`
	VerifiedAt      *time.Time `json:"verifiedAt,omitempty"`
	RejectionReason *string    `gorm:"type:text" json:"rejectionReason,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName sets the table name for the GatePass model
func (GatePass) TableName() string {
	return "gate_passes"
}
