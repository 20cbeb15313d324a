package gatepass

// Status is the verification lifecycle of a gate pass at the security gate.
// Legal transitions: pending -> entered_for_pickup -> verified, or
// pending -> rejected. verified and rejected are terminal.
type Status string

const (
	StatusPending          Status = "pending"
	StatusEnteredForPickup Status = "entered_for_pickup"
	StatusVerified         Status = "verified"
	StatusRejected         Status = "rejected"
)

// Helper methods for Status
func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusEnteredForPickup, StatusVerified, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal returns true once no further transition is legal
func (s Status) IsTerminal() bool {
	return s == StatusVerified || s == StatusRejected
}

// CanSendIn returns true if the pass allows a send_in action
func (s Status) CanSendIn() bool {
	return s == StatusPending
}

// CanRelease returns true if the pass allows a release action
func (s Status) CanRelease() bool {
	return s == StatusPending || s == StatusEnteredForPickup
}

// CanReject returns true if the pass can still be rejected
func (s Status) CanReject() bool {
	return s == StatusPending
}

// GetAllStatuses returns all valid gate pass statuses
func GetAllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusEnteredForPickup,
		StatusVerified,
		StatusRejected,
	}
}

// DispatchStatus is the upstream readiness flag set by the fulfillment
// pipeline, independent of the verification lifecycle.
type DispatchStatus string

const (
	DispatchPendingDispatch  DispatchStatus = "pending_dispatch"
	DispatchReadyForPickup   DispatchStatus = "ready_for_pickup"
	DispatchReadyForLoad     DispatchStatus = "ready_for_load"
	DispatchEnteredForPickup DispatchStatus = "entered_for_pickup"
	DispatchLoaded           DispatchStatus = "loaded"
)

func (d DispatchStatus) String() string {
	return string(d)
}

// IsReady reports whether the goods can be handed over at the gate
func (d DispatchStatus) IsReady() bool {
	switch d {
	case DispatchReadyForPickup, DispatchReadyForLoad, DispatchEnteredForPickup, DispatchLoaded:
		return true
	default:
		return false
	}
}

// DeliveryType describes how the goods leave the premises
type DeliveryType string

const (
	DeliveryTypePartLoad DeliveryType = "PART LOAD"
	DeliveryTypeFullLoad DeliveryType = "FULL LOAD"
	DeliveryTypeSelf     DeliveryType = "SELF"
)

func (d DeliveryType) IsValid() bool {
	switch d {
	case DeliveryTypePartLoad, DeliveryTypeFullLoad, DeliveryTypeSelf:
		return true
	default:
		return false
	}
}
