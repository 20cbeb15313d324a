package orders

import (
	"gate-dashboard/models/order"
)

// StatusTracking is the cross-department order view returned to the status
// bar. Both slices are always non-nil so an empty result marshals as [].
type StatusTracking struct {
	ProductionOrders []order.ProductionOrder `json:"productionOrders"`
	SalesOrders      []order.SalesOrder      `json:"salesOrders"`
}
