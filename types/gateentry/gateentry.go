package gateentry

import (
	"fmt"
)

// RegisterRequest creates a person in the gate registry
type RegisterRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Phone string `json:"phone" validate:"required,min=7,max=20"`
	Photo string `json:"photo" validate:"omitempty"`
}

func (r RegisterRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	return nil
}

// MovementRequest is a manual entry or exit keyed by phone
type MovementRequest struct {
	Phone   string `json:"phone" validate:"required,min=7,max=20"`
	Details string `json:"details" validate:"omitempty,max=1000"`
}

func (r MovementRequest) Validate() error {
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	return nil
}

// GoingOutRequest records a temporary absence for an admitted person
type GoingOutRequest struct {
	Phone   string `json:"phone" validate:"required,min=7,max=20"`
	Reason  string `json:"reason" validate:"required"`
	Details string `json:"details" validate:"omitempty,max=1000"`
}

func (r GoingOutRequest) Validate() error {
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if r.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	return nil
}

// ComingBackRequest closes the open going-out for a person
type ComingBackRequest struct {
	Phone string `json:"phone" validate:"required,min=7,max=20"`
}

func (r ComingBackRequest) Validate() error {
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	return nil
}

// TodaySummary counts movement events since local midnight
type TodaySummary struct {
	Date       string `json:"date"`
	Entries    int64  `json:"entries"`
	Exits      int64  `json:"exits"`
	GoingOut   int64  `json:"goingOut"`
	ComingBack int64  `json:"comingBack"`
	StillOut   int64  `json:"stillOut"`
}
