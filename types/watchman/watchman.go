package watchman

import (
	"fmt"

	"gate-dashboard/models/gatepass"
)

// VerifyRequest is the identity the watchman submits against a gate pass.
// Action defaults to release when omitted.
type VerifyRequest struct {
	CustomerName string `json:"customerName" validate:"required,min=1,max=255"`
	VehicleNo    string `json:"vehicleNo" validate:"omitempty,max=50"`
	DriverName   string `json:"driverName" validate:"omitempty,max=255"`
	Note         string `json:"note" validate:"omitempty,max=1000"`
	Action       string `json:"action" validate:"omitempty,oneof=send_in release"`
}

func (r VerifyRequest) Validate() error {
	if r.CustomerName == "" {
		return fmt.Errorf("customerName is required")
	}
	if r.Action != "" && r.Action != "send_in" && r.Action != "release" {
		return fmt.Errorf("action must be either 'send_in' or 'release'")
	}
	return nil
}

// RejectRequest carries the mandatory reason for refusing a pickup
type RejectRequest struct {
	RejectionReason string `json:"rejectionReason" validate:"required,min=1"`
}

// VerifyResult is returned by the verification workflow. Status is either the
// updated gate pass status or "identity_mismatch", which is a business
// outcome rather than an error: the pass is left untouched.
type VerifyResult struct {
	Status   string             `json:"status"`
	Message  string             `json:"message"`
	GatePass *gatepass.GatePass `json:"gatePass,omitempty"`
}

// SearchResult mirrors the watchman search screen contract
type SearchResult struct {
	SearchTerm string              `json:"searchTerm"`
	Results    []gatepass.GatePass `json:"results"`
	Count      int                 `json:"count"`
}

// Summary aggregates watchman activity, computed live at request time
type Summary struct {
	Date          string `json:"date"`
	PendingTotal  int64  `json:"pendingTotal"`
	PendingToday  int64  `json:"pendingToday"`
	VerifiedTotal int64  `json:"verifiedTotal"`
	VerifiedToday int64  `json:"verifiedToday"`
	RejectedTotal int64  `json:"rejectedTotal"`
	RejectedToday int64  `json:"rejectedToday"`
	EntriesToday  int64  `json:"entriesToday"`
}
