package panel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vitorarj/sales-manager/pkg/logger"
	"github.com/vitorarj/sales-manager/pkg/salesapi"
)

// ReportsAPI is the slice of the backend client the dashboard reads.
type ReportsAPI interface {
	Dashboard(ctx context.Context) (*salesapi.DashboardData, error)
	SalesSummary(ctx context.Context) (*salesapi.SalesSummary, error)
	TopCustomers(ctx context.Context) ([]salesapi.TopCustomer, error)
	TopProducts(ctx context.Context) ([]salesapi.TopProduct, error)
}

// DashboardSnapshot is one consistent view of the four report calls.
type DashboardSnapshot struct {
	Data         *salesapi.DashboardData
	Summary      *salesapi.SalesSummary
	TopCustomers []salesapi.TopCustomer
	TopProducts  []salesapi.TopProduct
	LoadedAt     time.Time
}

// Dashboard is the landing panel every role can open.
type Dashboard struct {
	api  ReportsAPI
	logs *logger.Logger

	act activation

	mu       sync.RWMutex
	snapshot *DashboardSnapshot
}

func NewDashboard(api ReportsAPI, logs *logger.Logger) (*Dashboard, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if logs == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Dashboard{api: api, logs: logs}, nil
}

// Load fetches the four reports concurrently. All four must succeed;
// otherwise the previous snapshot stays in place and the error is
// returned.
func (d *Dashboard) Load(ctx context.Context) (*DashboardSnapshot, error) {
	ctx = d.logs.WithPanel(ctx, "dashboard")
	loadCtx, gen := d.act.begin(ctx)

	next := &DashboardSnapshot{}
	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() error {
		data, err := d.api.Dashboard(gctx)
		next.Data = data
		return err
	})
	g.Go(func() error {
		summary, err := d.api.SalesSummary(gctx)
		next.Summary = summary
		return err
	})
	g.Go(func() error {
		customers, err := d.api.TopCustomers(gctx)
		next.TopCustomers = customers
		return err
	})
	g.Go(func() error {
		products, err := d.api.TopProducts(gctx)
		next.TopProducts = products
		return err
	})

	if err := g.Wait(); err != nil {
		d.logs.Error(ctx, "dashboard load failed", err)
		return nil, err
	}
	if !d.act.current(gen) {
		return nil, context.Canceled
	}

	next.LoadedAt = time.Now()
	d.mu.Lock()
	d.snapshot = next
	d.mu.Unlock()

	d.logs.Debug(ctx, "dashboard loaded")
	return next, nil
}

// Snapshot returns the last published view, or nil before the first
// successful load.
func (d *Dashboard) Snapshot() *DashboardSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot
}

// Close cancels any in-flight load.
func (d *Dashboard) Close() {
	d.act.deactivate()
}
