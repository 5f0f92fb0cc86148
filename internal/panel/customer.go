package panel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	pkgerrors "github.com/vitorarj/sales-manager/pkg/errors"
	"github.com/vitorarj/sales-manager/pkg/logger"
	"github.com/vitorarj/sales-manager/pkg/salesapi"
)

// CustomerAPI is the slice of the backend client the customer panel uses.
type CustomerAPI interface {
	ListOrders(ctx context.Context) ([]salesapi.Order, error)
	ListProductsInStock(ctx context.Context) ([]salesapi.Product, error)
}

// CustomerSnapshot is the customer's own orders plus the purchasable
// catalog.
type CustomerSnapshot struct {
	Orders   []salesapi.Order
	Products []salesapi.Product
	LoadedAt time.Time
}

// Customer is the panel for the CLIENTE role. Orders come from the
// full listing and are filtered locally to the signed-in customer,
// preserving the backend's ordering.
type Customer struct {
	api      CustomerAPI
	identity IdentitySource
	logs     *logger.Logger

	act activation

	mu       sync.RWMutex
	snapshot *CustomerSnapshot
}

func NewCustomer(api CustomerAPI, identity IdentitySource, logs *logger.Logger) (*Customer, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if identity == nil {
		return nil, fmt.Errorf("identity source required")
	}
	if logs == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Customer{api: api, identity: identity, logs: logs}, nil
}

// Load fetches all orders and the in-stock catalog concurrently, then
// keeps only the signed-in customer's orders.
func (c *Customer) Load(ctx context.Context) (*CustomerSnapshot, error) {
	ctx = c.logs.WithPanel(ctx, "customer")
	current := c.identity.Current()
	if current == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer panel without session")
	}
	loadCtx, gen := c.act.begin(ctx)

	var allOrders []salesapi.Order
	next := &CustomerSnapshot{}
	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() error {
		orders, err := c.api.ListOrders(gctx)
		allOrders = orders
		return err
	})
	g.Go(func() error {
		products, err := c.api.ListProductsInStock(gctx)
		next.Products = products
		return err
	})

	if err := g.Wait(); err != nil {
		c.logs.Error(ctx, "customer load failed", err)
		return nil, err
	}
	if !c.act.current(gen) {
		return nil, context.Canceled
	}

	next.Orders = make([]salesapi.Order, 0)
	for _, order := range allOrders {
		if order.Customer.ID == current.UserID {
			next.Orders = append(next.Orders, order)
		}
	}

	next.LoadedAt = time.Now()
	c.mu.Lock()
	c.snapshot = next
	c.mu.Unlock()

	c.logs.Debug(c.logs.WithUserID(ctx, current.UserID), "customer panel loaded")
	return next, nil
}

// Snapshot returns the last published view, or nil before the first
// successful load.
func (c *Customer) Snapshot() *CustomerSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Close cancels any in-flight load.
func (c *Customer) Close() {
	c.act.deactivate()
}
