package salesapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vitorarj/sales-manager/pkg/enums"
)

const resourceOrders = "orders"

// ListOrders returns every order.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.getJSON(ctx, resourceOrders, "/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches a single order by ID.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/orders/%d", orderID)
	if err := c.getJSON(ctx, resourceOrders, path, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListPendingOrders returns orders awaiting a seller decision.
func (c *Client) ListPendingOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.getJSON(ctx, resourceOrders, "/orders/pending", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrdersByStatus returns orders in the given status.
func (c *Client) ListOrdersByStatus(ctx context.Context, status enums.OrderStatus) ([]Order, error) {
	var orders []Order
	path := fmt.Sprintf("/orders/status/%s", url.PathEscape(status.String()))
	if err := c.getJSON(ctx, resourceOrders, path, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrdersByCustomer returns orders placed by one customer. The
// backend exposes this, but the customer panel intentionally keeps its
// client-side filter over the full list instead.
func (c *Client) ListOrdersByCustomer(ctx context.Context, customerID int64) ([]Order, error) {
	var orders []Order
	path := fmt.Sprintf("/orders/customer/%d", customerID)
	if err := c.getJSON(ctx, resourceOrders, path, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ApproveOrder moves a pending order to APROVADO under the given seller.
func (c *Client) ApproveOrder(ctx context.Context, orderID, sellerID int64) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/orders/%d/approve/%d", orderID, sellerID)
	if err := c.mutate(ctx, resourceOrders, path, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// RejectOrder moves a pending order to REJEITADO under the given seller.
func (c *Client) RejectOrder(ctx context.Context, orderID, sellerID int64) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/orders/%d/reject/%d", orderID, sellerID)
	if err := c.mutate(ctx, resourceOrders, path, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CompleteOrder moves an approved order to FINALIZADO.
func (c *Client) CompleteOrder(ctx context.Context, orderID int64) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/orders/%d/complete", orderID)
	if err := c.mutate(ctx, resourceOrders, path, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CountOrders returns the backend's human-readable order count.
func (c *Client) CountOrders(ctx context.Context) (string, error) {
	return c.getText(ctx, resourceOrders, "/orders/count")
}

// CreateDemoOrders seeds demonstration orders.
func (c *Client) CreateDemoOrders(ctx context.Context) (string, error) {
	return c.getText(ctx, resourceOrders, "/orders/create-demo-orders")
}
