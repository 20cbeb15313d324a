package orders

import (
	"strings"

	"gate-dashboard/models/order"
	ordersTypes "gate-dashboard/types/orders"

	"gorm.io/gorm"
)

// Service is the read-only cross-department order status view
type Service struct {
	DB *gorm.DB
}

// NewService creates a new order status service
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// GetStatusTracking returns production and sales orders matching the search
// term. An empty term short-circuits to empty lists: the tracker is polled
// every few seconds per screen, and an unfiltered scan over both order
// tables is deliberately not offered.
func (s *Service) GetStatusTracking(query string) (*ordersTypes.StatusTracking, error) {
	result := &ordersTypes.StatusTracking{
		ProductionOrders: []order.ProductionOrder{},
		SalesOrders:      []order.SalesOrder{},
	}

	q := strings.TrimSpace(query)
	if q == "" {
		return result, nil
	}

	like := "%" + strings.ToLower(q) + "%"
	where := "LOWER(order_number) LIKE ? OR LOWER(product_name) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(current_department) LIKE ? OR LOWER(status) LIKE ?"
	args := []interface{}{like, like, like, like, like}

	err := s.DB.Where(where, args...).
		Order("updated_at DESC").
		Find(&result.ProductionOrders).Error
	if err != nil {
		return nil, err
	}

	err = s.DB.Where(where, args...).
		Order("updated_at DESC").
		Find(&result.SalesOrders).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}
