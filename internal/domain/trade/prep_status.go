package trade

import "context"

// PrepStatus is the preparation status of an order as reported by the
// fulfillment service
type PrepStatus struct {
	OrderStatus string `json:"order_status"`
}

// PrepStatusReader fetches the preparation status of a single order
type PrepStatusReader interface {
	GetPrepStatus(ctx context.Context, orderID string) (PrepStatus, error)
}
