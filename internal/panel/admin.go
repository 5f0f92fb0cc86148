package panel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/vitorarj/sales-manager/pkg/enums"
	"github.com/vitorarj/sales-manager/pkg/logger"
	"github.com/vitorarj/sales-manager/pkg/salesapi"
)

// AdminAPI is the slice of the backend client the admin panel uses.
type AdminAPI interface {
	ListUsers(ctx context.Context) ([]salesapi.User, error)
	ListProducts(ctx context.Context) ([]salesapi.Product, error)
	ListOrders(ctx context.Context) ([]salesapi.Order, error)
	CreateDemoUsers(ctx context.Context) (string, error)
	CreateDemoProducts(ctx context.Context) (string, error)
	CreateDemoOrders(ctx context.Context) (string, error)
}

// AdminSnapshot is one consistent view of the whole system for the
// admin screen, with the counts the screen derives locally.
type AdminSnapshot struct {
	Users    []salesapi.User
	Products []salesapi.Product
	Orders   []salesapi.Order

	UsersByRole    map[enums.Role]int
	OrdersByStatus map[enums.OrderStatus]int
	ActiveProducts int
	LoadedAt       time.Time
}

// Admin is the system-overview panel for the ADMIN role.
type Admin struct {
	api  AdminAPI
	logs *logger.Logger

	act activation

	mu       sync.RWMutex
	snapshot *AdminSnapshot
}

func NewAdmin(api AdminAPI, logs *logger.Logger) (*Admin, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if logs == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Admin{api: api, logs: logs}, nil
}

// Load fetches users, products, and orders concurrently and derives the
// per-role and per-status counts. All three must succeed.
func (a *Admin) Load(ctx context.Context) (*AdminSnapshot, error) {
	ctx = a.logs.WithPanel(ctx, "admin")
	loadCtx, gen := a.act.begin(ctx)

	next := &AdminSnapshot{}
	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() error {
		users, err := a.api.ListUsers(gctx)
		next.Users = users
		return err
	})
	g.Go(func() error {
		products, err := a.api.ListProducts(gctx)
		next.Products = products
		return err
	})
	g.Go(func() error {
		orders, err := a.api.ListOrders(gctx)
		next.Orders = orders
		return err
	})

	if err := g.Wait(); err != nil {
		a.logs.Error(ctx, "admin load failed", err)
		return nil, err
	}
	if !a.act.current(gen) {
		return nil, context.Canceled
	}

	next.UsersByRole = make(map[enums.Role]int)
	for _, user := range next.Users {
		next.UsersByRole[user.Role]++
	}
	next.OrdersByStatus = make(map[enums.OrderStatus]int)
	for _, order := range next.Orders {
		next.OrdersByStatus[order.Status]++
	}
	for _, product := range next.Products {
		if product.Active {
			next.ActiveProducts++
		}
	}

	next.LoadedAt = time.Now()
	a.mu.Lock()
	a.snapshot = next
	a.mu.Unlock()

	a.logs.Debug(ctx, "admin panel loaded")
	return next, nil
}

// SeedDemoData runs the three demo-seed calls in their dependency order
// (orders can only be seeded once users and products exist), collecting
// every failure rather than stopping at the first. The backend's
// human-readable result strings are returned in call order. The panel
// reloads only when all three calls succeeded.
func (a *Admin) SeedDemoData(ctx context.Context) ([]string, error) {
	ctx = a.logs.WithPanel(ctx, "admin")

	seeds := []struct {
		name string
		call func(context.Context) (string, error)
	}{
		{"users", a.api.CreateDemoUsers},
		{"products", a.api.CreateDemoProducts},
		{"orders", a.api.CreateDemoOrders},
	}

	var messages []string
	var errs error
	for _, seed := range seeds {
		msg, err := seed.call(ctx)
		if err != nil {
			a.logs.Error(a.logs.WithField(ctx, "seed", seed.name), "demo seed failed", err)
			errs = multierr.Append(errs, fmt.Errorf("seed %s: %w", seed.name, err))
			continue
		}
		messages = append(messages, msg)
	}
	if errs != nil {
		return messages, errs
	}

	if _, err := a.Load(ctx); err != nil {
		return messages, err
	}
	return messages, nil
}

// Snapshot returns the last published view, or nil before the first
// successful load.
func (a *Admin) Snapshot() *AdminSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// Close cancels any in-flight load.
func (a *Admin) Close() {
	a.act.deactivate()
}
