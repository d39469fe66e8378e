package trade

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

const (
	OrderStatusDraft              OrderStatus = "DRAFT"
	OrderStatusUnconfirmed        OrderStatus = "UNCONFIRMED"
	OrderStatusUnfulfilled        OrderStatus = "UNFULFILLED"
	OrderStatusPartiallyFulfilled OrderStatus = "PARTIALLY_FULFILLED"
	OrderStatusFulfilled          OrderStatus = "FULFILLED"
	OrderStatusCanceled           OrderStatus = "CANCELED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusUnconfirmed, OrderStatusUnfulfilled,
		OrderStatusPartiallyFulfilled, OrderStatusFulfilled, OrderStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return target == OrderStatusUnconfirmed || target == OrderStatusUnfulfilled
	case OrderStatusUnconfirmed:
		return target == OrderStatusUnfulfilled || target == OrderStatusCanceled
	case OrderStatusUnfulfilled:
		return target == OrderStatusPartiallyFulfilled || target == OrderStatusFulfilled || target == OrderStatusCanceled
	case OrderStatusPartiallyFulfilled:
		return target == OrderStatusFulfilled
	case OrderStatusFulfilled, OrderStatusCanceled:
		return false // Terminal states
	}
	return false
}

// ChargeStatus is the payment state of an order
type ChargeStatus string

const (
	ChargeStatusNotCharged        ChargeStatus = "NOT_CHARGED"
	ChargeStatusPartiallyCharged  ChargeStatus = "PARTIALLY_CHARGED"
	ChargeStatusFullyCharged      ChargeStatus = "FULLY_CHARGED"
	ChargeStatusPartiallyRefunded ChargeStatus = "PARTIALLY_REFUNDED"
	ChargeStatusFullyRefunded     ChargeStatus = "FULLY_REFUNDED"
	ChargeStatusPending           ChargeStatus = "PENDING"
	ChargeStatusRefused           ChargeStatus = "REFUSED"
	ChargeStatusCancelled         ChargeStatus = "CANCELLED"
)

// Order is a customer order as shown in the dashboard
type Order struct {
	shared.TenantAggregateRoot
	Number       int
	CustomerID   *uuid.UUID
	UserEmail    string
	Status       OrderStatus
	ChargeStatus ChargeStatus
	TotalGross   valueobject.Money
	TotalNet     valueobject.Money
}

// NewOrder creates an unconfirmed, unpaid order
func NewOrder(tenantID uuid.UUID, number int, userEmail string, totalNet, totalGross valueobject.Money) (*Order, error) {
	if number <= 0 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Order number must be positive")
	}
	if totalNet.Currency() != totalGross.Currency() {
		return nil, shared.NewDomainError("CURRENCY_MISMATCH", "Net and gross totals must share a currency")
	}
	if totalGross.IsNegative() || totalNet.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Order totals cannot be negative")
	}

	return &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		UserEmail:           strings.ToLower(strings.TrimSpace(userEmail)),
		Status:              OrderStatusUnconfirmed,
		ChargeStatus:        ChargeStatusNotCharged,
		TotalGross:          totalGross,
		TotalNet:            totalNet,
	}, nil
}

// AssignCustomer links the order to a customer account
func (o *Order) AssignCustomer(customerID uuid.UUID, email string) {
	o.CustomerID = &customerID
	if email != "" {
		o.UserEmail = strings.ToLower(email)
	}
	o.Touch()
	o.IncrementVersion()
}

// TransitionTo moves the order to target if the transition is allowed
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", "Cannot move order from "+string(o.Status)+" to "+string(target))
	}
	o.Status = target
	o.Touch()
	o.IncrementVersion()
	return nil
}

// SetChargeStatus records the latest payment state
func (o *Order) SetChargeStatus(status ChargeStatus) {
	o.ChargeStatus = status
	o.Touch()
	o.IncrementVersion()
}

// DisplayNumber returns the order number as shown in lists, e.g. "#42"
func (o *Order) DisplayNumber() string {
	return "#" + strconv.Itoa(o.Number)
}
