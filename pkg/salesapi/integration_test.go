package salesapi_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vitorarj/sales-manager/pkg/enums"
	pkgerrors "github.com/vitorarj/sales-manager/pkg/errors"
	"github.com/vitorarj/sales-manager/pkg/salesapi"
	"github.com/vitorarj/sales-manager/pkg/salesapi/salesapitest"
)

func newFakeBackend(t *testing.T) (*salesapitest.Server, *salesapi.Client) {
	t.Helper()
	backend := salesapitest.NewServer("test-secret")
	ts := httptest.NewServer(backend.Handler())
	t.Cleanup(ts.Close)
	return backend, salesapi.NewClient(ts.URL + "/api")
}

func TestLoginSucceedsWithBaseAccount(t *testing.T) {
	_, client := newFakeBackend(t)

	resp, err := client.Login(context.Background(), salesapi.LoginRequest{
		Email:    "vendedor@teste.com",
		Password: "123456",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.Role != enums.RoleSeller {
		t.Fatalf("role = %q, want %q", resp.Role, enums.RoleSeller)
	}
	if resp.Message != "Login realizado com sucesso!" {
		t.Fatalf("message = %q", resp.Message)
	}

	info, err := client.ValidateToken(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if info.Email != "vendedor@teste.com" || info.UserID != resp.UserID {
		t.Fatalf("token info mismatch: %+v", info)
	}
}

func TestLoginFailuresCarryBackendMessages(t *testing.T) {
	_, client := newFakeBackend(t)

	_, err := client.Login(context.Background(), salesapi.LoginRequest{
		Email:    "ninguem@teste.com",
		Password: "123456",
	})
	if got := pkgerrors.UserMessage(err); got != "Usuário não encontrado" {
		t.Fatalf("unknown user message = %q", got)
	}

	_, err = client.Login(context.Background(), salesapi.LoginRequest{
		Email:    "admin@sistema.com",
		Password: "errada",
	})
	if got := pkgerrors.UserMessage(err); got != "Senha incorreta" {
		t.Fatalf("wrong password message = %q", got)
	}
}

func TestLoginTestShortcut(t *testing.T) {
	_, client := newFakeBackend(t)

	resp, err := client.LoginTest(context.Background(), "cliente@teste.com")
	if err != nil {
		t.Fatalf("LoginTest: %v", err)
	}
	if resp.Role != enums.RoleCustomer {
		t.Fatalf("role = %q", resp.Role)
	}
	if resp.Message != "Login de teste realizado com sucesso!" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestDemoSeedingFlow(t *testing.T) {
	_, client := newFakeBackend(t)
	ctx := context.Background()

	// Orders cannot be seeded before the catalog exists.
	msg, err := client.CreateDemoOrders(ctx)
	if err != nil {
		t.Fatalf("CreateDemoOrders: %v", err)
	}
	if msg != "⚠️ Crie usuários e produtos primeiro!" {
		t.Fatalf("premature seed message = %q", msg)
	}

	msg, err = client.CreateDemoUsers(ctx)
	if err != nil {
		t.Fatalf("CreateDemoUsers: %v", err)
	}
	if msg != "✅ Usuários de demonstração criados! Total: 11 usuários" {
		t.Fatalf("user seed message = %q", msg)
	}

	// A second seed is a no-op with a warning.
	msg, err = client.CreateDemoUsers(ctx)
	if err != nil {
		t.Fatalf("CreateDemoUsers again: %v", err)
	}
	if !strings.HasPrefix(msg, "⚠️") {
		t.Fatalf("repeat seed should warn, got %q", msg)
	}

	if _, err := client.CreateDemoProducts(ctx); err != nil {
		t.Fatalf("CreateDemoProducts: %v", err)
	}
	msg, err = client.CreateDemoOrders(ctx)
	if err != nil {
		t.Fatalf("CreateDemoOrders: %v", err)
	}
	if msg != "✅ Pedidos de demonstração criados com sucesso!" {
		t.Fatalf("order seed message = %q", msg)
	}

	count, err := client.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if count != "Total de usuários: 11" {
		t.Fatalf("count = %q", count)
	}

	orders, err := client.ListOrders(ctx)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(orders) != 8 {
		t.Fatalf("orders = %d, want 8", len(orders))
	}
}

func TestOrderLifecycle(t *testing.T) {
	backend, client := newFakeBackend(t)
	ctx := context.Background()

	customer := backend.AddUser("Maria Silva", "maria@email.com", "123456", enums.RoleCustomer)
	product := backend.AddProduct("Notebook Dell", "Notebook Dell Inspiron 15", decimal.RequireFromString("2500.00"), 10, true)
	order := backend.AddOrder(customer, enums.OrderStatusPending, salesapitest.OrderItemSpec{Product: product, Quantity: 2})

	// Complete before approval is rejected.
	_, err := client.CompleteOrder(ctx, order.ID)
	if got := pkgerrors.UserMessage(err); got != "Pedido não está aprovado" {
		t.Fatalf("premature complete message = %q", got)
	}

	// A customer cannot act as the deciding seller.
	_, err = client.ApproveOrder(ctx, order.ID, customer.ID)
	if got := pkgerrors.UserMessage(err); got != "Vendedor inválido" {
		t.Fatalf("customer approval message = %q", got)
	}

	// Seller id 3 is the pre-seeded vendedor@teste.com account.
	approved, err := client.ApproveOrder(ctx, order.ID, 3)
	if err != nil {
		t.Fatalf("ApproveOrder: %v", err)
	}
	if approved.Status != enums.OrderStatusApproved {
		t.Fatalf("status = %q", approved.Status)
	}
	if approved.Seller == nil || approved.Seller.ID != 3 {
		t.Fatalf("seller = %+v", approved.Seller)
	}
	if !approved.TotalAmount.Equal(decimal.RequireFromString("5000.00")) {
		t.Fatalf("total = %s", approved.TotalAmount)
	}

	// Approval is not repeatable.
	_, err = client.ApproveOrder(ctx, order.ID, 3)
	if got := pkgerrors.UserMessage(err); got != "Pedido não está pendente" {
		t.Fatalf("double approval message = %q", got)
	}

	completed, err := client.CompleteOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("CompleteOrder: %v", err)
	}
	if completed.Status != enums.OrderStatusCompleted {
		t.Fatalf("status = %q", completed.Status)
	}

	count, err := client.CountOrders(ctx)
	if err != nil {
		t.Fatalf("CountOrders: %v", err)
	}
	if count != "Total: 1 | Pendentes: 0 | Aprovados: 0 | Finalizados: 1" {
		t.Fatalf("count = %q", count)
	}
}

func TestRejectOrderRecordsNotes(t *testing.T) {
	backend, client := newFakeBackend(t)

	customer := backend.AddUser("João Santos", "joao@email.com", "123456", enums.RoleCustomer)
	product := backend.AddProduct("Mouse Gamer", "Mouse gamer RGB", decimal.RequireFromString("150.00"), 25, true)
	order := backend.AddOrder(customer, enums.OrderStatusPending, salesapitest.OrderItemSpec{Product: product, Quantity: 1})

	rejected, err := client.RejectOrder(context.Background(), order.ID, 3)
	if err != nil {
		t.Fatalf("RejectOrder: %v", err)
	}
	if rejected.Status != enums.OrderStatusRejected {
		t.Fatalf("status = %q", rejected.Status)
	}
	if rejected.Notes != "Produto indisponível" {
		t.Fatalf("notes = %q", rejected.Notes)
	}
}

func TestOrderFilters(t *testing.T) {
	backend, client := newFakeBackend(t)
	ctx := context.Background()

	maria := backend.AddUser("Maria Silva", "maria@email.com", "123456", enums.RoleCustomer)
	joao := backend.AddUser("João Santos", "joao@email.com", "123456", enums.RoleCustomer)
	product := backend.AddProduct("Teclado Mecânico", "Teclado mecânico RGB", decimal.RequireFromString("350.00"), 15, true)

	backend.AddOrder(maria, enums.OrderStatusPending, salesapitest.OrderItemSpec{Product: product, Quantity: 1})
	backend.AddOrder(joao, enums.OrderStatusApproved, salesapitest.OrderItemSpec{Product: product, Quantity: 2})
	backend.AddOrder(maria, enums.OrderStatusCompleted, salesapitest.OrderItemSpec{Product: product, Quantity: 3})

	pending, err := client.ListPendingOrders(ctx)
	if err != nil {
		t.Fatalf("ListPendingOrders: %v", err)
	}
	if len(pending) != 1 || pending[0].Customer.ID != maria.ID {
		t.Fatalf("pending = %+v", pending)
	}

	approved, err := client.ListOrdersByStatus(ctx, enums.OrderStatusApproved)
	if err != nil {
		t.Fatalf("ListOrdersByStatus: %v", err)
	}
	if len(approved) != 1 || approved[0].Customer.ID != joao.ID {
		t.Fatalf("approved = %+v", approved)
	}

	mariaOrders, err := client.ListOrdersByCustomer(ctx, maria.ID)
	if err != nil {
		t.Fatalf("ListOrdersByCustomer: %v", err)
	}
	if len(mariaOrders) != 2 {
		t.Fatalf("maria orders = %d, want 2", len(mariaOrders))
	}
}

func TestInStockFilterExcludesInactiveAndEmpty(t *testing.T) {
	backend, client := newFakeBackend(t)

	backend.AddProduct("Monitor 4K", "Monitor 4K 27 polegadas", decimal.RequireFromString("899.99"), 8, true)
	backend.AddProduct("Hub USB", "Hub USB 3.0", decimal.RequireFromString("59.99"), 0, true)
	backend.AddProduct("Impressora", "Impressora descontinuada", decimal.RequireFromString("499.00"), 4, false)

	inStock, err := client.ListProductsInStock(context.Background())
	if err != nil {
		t.Fatalf("ListProductsInStock: %v", err)
	}
	if len(inStock) != 1 || inStock[0].Name != "Monitor 4K" {
		t.Fatalf("in stock = %+v", inStock)
	}
}

func TestLowStockReport(t *testing.T) {
	backend, client := newFakeBackend(t)

	backend.AddProduct("Monitor 4K", "Monitor 4K 27 polegadas", decimal.RequireFromString("899.99"), 8, true)
	backend.AddProduct("Cabo HDMI", "Cabo HDMI 2.1", decimal.RequireFromString("29.99"), 2, true)
	backend.AddProduct("Hub USB", "Hub USB 3.0", decimal.RequireFromString("59.99"), 0, true)
	backend.AddProduct("Adaptador", "Adaptador fora de linha", decimal.RequireFromString("19.99"), 1, false)

	low, err := client.LowStock(context.Background())
	if err != nil {
		t.Fatalf("LowStock: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("low stock = %d entries, want 2", len(low))
	}
	if low[0].Name != "Hub USB" || low[0].Status != enums.StockStatusOut {
		t.Fatalf("low[0] = %+v", low[0])
	}
	if low[1].Name != "Cabo HDMI" || low[1].Status != enums.StockStatusLow {
		t.Fatalf("low[1] = %+v", low[1])
	}
}

func TestDashboardReportAggregates(t *testing.T) {
	backend, client := newFakeBackend(t)

	customer := backend.AddUser("Maria Silva", "maria@email.com", "123456", enums.RoleCustomer)
	product := backend.AddProduct("SSD 1TB", "SSD NVMe 1TB", decimal.RequireFromString("299.99"), 3, true)
	backend.AddOrder(customer, enums.OrderStatusPending, salesapitest.OrderItemSpec{Product: product, Quantity: 1})
	backend.AddOrder(customer, enums.OrderStatusCompleted, salesapitest.OrderItemSpec{Product: product, Quantity: 2})

	data, err := client.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if data.TotalUsers != 4 || data.TotalProducts != 1 || data.TotalOrders != 2 {
		t.Fatalf("totals = %+v", data)
	}
	if data.OrdersByStatus["PENDENTE"] != 1 || data.OrdersByStatus["FINALIZADO"] != 1 {
		t.Fatalf("by status = %+v", data.OrdersByStatus)
	}
	if !data.TotalSales.Equal(decimal.RequireFromString("599.98")) {
		t.Fatalf("total sales = %s", data.TotalSales)
	}
	if data.LowStockProducts != 1 {
		t.Fatalf("low stock count = %d", data.LowStockProducts)
	}
}

func TestUsersForLoginHints(t *testing.T) {
	_, client := newFakeBackend(t)

	hints, err := client.UsersForLogin(context.Background())
	if err != nil {
		t.Fatalf("UsersForLogin: %v", err)
	}
	if hints["admin"] != "admin@sistema.com (senha: 123456)" {
		t.Fatalf("hints = %+v", hints)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	_, client := newFakeBackend(t)

	_, err := client.GetOrder(context.Background(), 999)
	if got := pkgerrors.CodeOf(err); got != pkgerrors.CodeNotFound {
		t.Fatalf("code = %q, want %q", got, pkgerrors.CodeNotFound)
	}
}
