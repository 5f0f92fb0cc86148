package enums

import "fmt"

// OrderStatus tracks the lifecycle of a sales order. The happy path is
// PENDENTE -> APROVADO -> FINALIZADO; REJEITADO and CANCELADO are
// terminal alternatives reachable only from PENDENTE.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDENTE"
	OrderStatusApproved  OrderStatus = "APROVADO"
	OrderStatusRejected  OrderStatus = "REJEITADO"
	OrderStatusCompleted OrderStatus = "FINALIZADO"
	OrderStatusCanceled  OrderStatus = "CANCELADO"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusApproved,
	OrderStatusRejected,
	OrderStatusCompleted,
	OrderStatusCanceled,
}

var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:  {OrderStatusApproved, OrderStatusRejected, OrderStatusCanceled},
	OrderStatusApproved: {OrderStatusCompleted},
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (o OrderStatus) IsTerminal() bool {
	return len(orderStatusTransitions[o]) == 0 && o.IsValid()
}

// CanTransitionTo reports whether the backend would accept moving the
// order from this status to the target. The backend stays authoritative;
// panels use this only to decide which actions to offer.
func (o OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, candidate := range orderStatusTransitions[o] {
		if candidate == target {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
