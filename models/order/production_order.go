package order

import (
	"time"
)

// ProductionOrder is the read model the status tracker exposes for the
// production pipeline. Rows are owned by the production department upstream;
// this service only reads them.
type ProductionOrder struct {
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

// TableName sets the table name for the ProductionOrder model
func (ProductionOrder) TableName() string {
	return "production_orders"
}
