package person

import (
	"time"
)

// Person is an identity registered at the gate, looked up by phone number.
// The photo is an opaque data URI captured at registration; matching against
// it is a front-desk concern, not something this service interprets.
type Person struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(20);not null;unique" json:"phone"`
	Photo     *string   `gorm:"type:text" json:"photo,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName sets the table name for the Person model
func (Person) TableName() string {
	return "gate_persons"
}
