package constants

import (
	"strings"
)

// Department permissions
const (
	PermAdminFull      = "gate-dashboard.admin.full-permit"
	PermWatchmanFull   = "gate-dashboard.watchman.full-permit"
	PermStoreFull      = "gate-dashboard.store.full-permit"
	PermProductionFull = "gate-dashboard.production.full-permit"
	PermSalesFull      = "gate-dashboard.sales.full-permit"
	PermDispatchFull   = "gate-dashboard.dispatch.full-permit"

	// Special permissions
	PermAny = "any"
)

// PermissionsForDepartment maps a registered department to the permissions
// embedded in its tokens.
func PermissionsForDepartment(department string) []string {
	switch strings.ToLower(strings.TrimSpace(department)) {
	case "admin":
		return []string{
			PermAdminFull,
			PermWatchmanFull,
			PermStoreFull,
			PermProductionFull,
			PermSalesFull,
			PermDispatchFull,
		}
	case "watchman", "security":
		return []string{PermWatchmanFull}
	case "store":
		return []string{PermStoreFull}
	case "production":
		return []string{PermProductionFull}
	case "sales":
		return []string{PermSalesFull}
	case "dispatch", "showroom":
		return []string{PermDispatchFull}
	default:
		return nil
	}
}
