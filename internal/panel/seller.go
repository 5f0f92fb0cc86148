package panel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/vitorarj/sales-manager/internal/session"
	"github.com/vitorarj/sales-manager/pkg/enums"
	pkgerrors "github.com/vitorarj/sales-manager/pkg/errors"
	"github.com/vitorarj/sales-manager/pkg/logger"
	"github.com/vitorarj/sales-manager/pkg/salesapi"
)

const lowStockThreshold = 5

// SellerAPI is the slice of the backend client the seller panel uses.
type SellerAPI interface {
	ListOrders(ctx context.Context) ([]salesapi.Order, error)
	ListPendingOrders(ctx context.Context) ([]salesapi.Order, error)
	ListProducts(ctx context.Context) ([]salesapi.Product, error)
	ApproveOrder(ctx context.Context, orderID, sellerID int64) (*salesapi.Order, error)
	RejectOrder(ctx context.Context, orderID, sellerID int64) (*salesapi.Order, error)
	CompleteOrder(ctx context.Context, orderID int64) (*salesapi.Order, error)
}

// IdentitySource reports who is signed in. Satisfied by *session.Store.
type IdentitySource interface {
	Current() *session.Identity
}

// SellerSnapshot is one consistent view for the seller screen, with the
// sets and totals it derives locally.
type SellerSnapshot struct {
	Orders   []salesapi.Order
	Pending  []salesapi.Order
	Products []salesapi.Product

	Completed    []salesapi.Order
	LowStock     []salesapi.Product
	TotalRevenue decimal.Decimal
	LoadedAt     time.Time
}

// Seller is the order-management panel for the VENDEDOR role. The
// decision checks here are advisory; the backend re-validates every
// transition.
type Seller struct {
	api      SellerAPI
	identity IdentitySource
	logs     *logger.Logger

	act activation

	mu       sync.RWMutex
	snapshot *SellerSnapshot
}

func NewSeller(api SellerAPI, identity IdentitySource, logs *logger.Logger) (*Seller, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if identity == nil {
		return nil, fmt.Errorf("identity source required")
	}
	if logs == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Seller{api: api, identity: identity, logs: logs}, nil
}

// Load fetches orders, pending orders, and products concurrently, then
// derives the completed set, the low-stock set, and total revenue. All
// three fetches must succeed.
func (s *Seller) Load(ctx context.Context) (*SellerSnapshot, error) {
	ctx = s.logs.WithPanel(ctx, "seller")
	loadCtx, gen := s.act.begin(ctx)

	next := &SellerSnapshot{}
	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() error {
		orders, err := s.api.ListOrders(gctx)
		next.Orders = orders
		return err
	})
	g.Go(func() error {
		pending, err := s.api.ListPendingOrders(gctx)
		next.Pending = pending
		return err
	})
	g.Go(func() error {
		products, err := s.api.ListProducts(gctx)
		next.Products = products
		return err
	})

	if err := g.Wait(); err != nil {
		s.logs.Error(ctx, "seller load failed", err)
		return nil, err
	}
	if !s.act.current(gen) {
		return nil, context.Canceled
	}

	next.TotalRevenue = decimal.Zero
	for _, order := range next.Orders {
		if order.Status == enums.OrderStatusCompleted {
			next.Completed = append(next.Completed, order)
			next.TotalRevenue = next.TotalRevenue.Add(order.TotalAmount)
		}
	}
	for _, product := range next.Products {
		if product.Active && product.Stock < lowStockThreshold {
			next.LowStock = append(next.LowStock, product)
		}
	}

	next.LoadedAt = time.Now()
	s.mu.Lock()
	s.snapshot = next
	s.mu.Unlock()

	s.logs.Debug(ctx, "seller panel loaded")
	return next, nil
}

// Approve marks a pending order approved by the signed-in seller and
// reloads the panel.
func (s *Seller) Approve(ctx context.Context, orderID int64) error {
	return s.decide(ctx, "approve", orderID, s.api.ApproveOrder)
}

// Reject marks a pending order rejected by the signed-in seller and
// reloads the panel.
func (s *Seller) Reject(ctx context.Context, orderID int64) error {
	return s.decide(ctx, "reject", orderID, s.api.RejectOrder)
}

// Complete finalizes an approved order and reloads the panel.
func (s *Seller) Complete(ctx context.Context, orderID int64) error {
	ctx = s.logs.WithPanel(ctx, "seller")
	if s.identity.Current() == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "complete order without session")
	}

	if _, err := s.api.CompleteOrder(ctx, orderID); err != nil {
		s.logs.Error(s.logs.WithField(ctx, "order_id", orderID), "complete order failed", err)
		return err
	}
	_, err := s.Load(ctx)
	return err
}

// decide runs one approve/reject call and, only if it succeeded, one
// reload. A reload failure leaves the previous snapshot in place.
func (s *Seller) decide(ctx context.Context, action string, orderID int64,
	call func(context.Context, int64, int64) (*salesapi.Order, error)) error {

	ctx = s.logs.WithPanel(ctx, "seller")
	current := s.identity.Current()
	if current == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, action+" order without session")
	}

	if _, err := call(ctx, orderID, current.UserID); err != nil {
		s.logs.Error(s.logs.WithField(ctx, "order_id", orderID), action+" order failed", err)
		return err
	}
	_, err := s.Load(ctx)
	return err
}

// Snapshot returns the last published view, or nil before the first
// successful load.
func (s *Seller) Snapshot() *SellerSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Close cancels any in-flight load.
func (s *Seller) Close() {
	s.act.deactivate()
}
