package order

import (
	"time"
)

// SalesOrder is the read model the status tracker exposes for the sales
// pipeline, same shape as ProductionOrder.
type SalesOrder struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber       string    `gorm:"type:varchar(100);not null;unique" json:"orderNumber"`
	ProductName       string    `gorm:"type:varchar(255);not null" json:"productName"`
	CustomerName      string    `gorm:"type:varchar(255)" json:"customerName"`
	Quantity          int       `gorm:"not null" json:"quantity"`
	Status            string    `gorm:"type:varchar(50);not null" json:"status"`
	CurrentDepartment string    `gorm:"type:varchar(50);not null" json:"currentDepartment"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName sets the table name for the SalesOrder model
func (SalesOrder) TableName() string {
	return "sales_orders"
}
