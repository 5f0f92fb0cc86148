package salesapi

import (
	"github.com/shopspring/decimal"

	"github.com/vitorarj/sales-manager/pkg/enums"
)

// User is an account as returned by the backend.
type User struct {
	ID    int64      `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  enums.Role `json:"role"`
}

// Product is a catalog entry. Stock is never negative; an inactive
// product is not purchasable regardless of stock.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
}

// OrderItem is owned by its parent order. Subtotal is backend-computed
// and not verified locally.
type OrderItem struct {
	ID        int64           `json:"id"`
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Order is a sales order. TotalAmount is backend-computed; the client
// never recalculates it. Timestamps stay as the backend's wire strings.
type Order struct {
	ID          int64             `json:"id"`
	Customer    User              `json:"customer"`
	Seller      *User             `json:"seller,omitempty"`
	Status      enums.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
	Items       []OrderItem       `json:"items"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt,omitempty"`
	Notes       string            `json:"notes,omitempty"`
}

// LoginRequest is the credential login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the identity+token shape both login paths return.
type LoginResponse struct {
	Token   string     `json:"token"`
	Email   string     `json:"email"`
	Role    enums.Role `json:"role"`
	UserID  int64      `json:"userId"`
	Name    string     `json:"name"`
	Message string     `json:"message"`
}

// TokenInfo is the result of server-side token validation.
type TokenInfo struct {
	Email   string     `json:"email"`
	Role    enums.Role `json:"role"`
	UserID  int64      `json:"userId"`
	Message string     `json:"message"`
}

// DashboardData is the server-computed dashboard aggregate.
type DashboardData struct {
	TotalUsers       int64            `json:"totalUsers"`
	TotalProducts    int64            `json:"totalProducts"`
	TotalOrders      int64            `json:"totalOrders"`
	OrdersByStatus   map[string]int64 `json:"ordersByStatus"`
	TotalSales       decimal.Decimal  `json:"totalSales"`
	PendingSales     decimal.Decimal  `json:"pendingSales"`
	LowStockProducts int64            `json:"lowStockProducts"`
	LastUpdated      string           `json:"lastUpdated"`
}

// SalesSummary is the server-computed sales rollup.
type SalesSummary struct {
	TotalOrders     int             `json:"totalOrders"`
	CompletedOrders int             `json:"completedOrders"`
	PendingOrders   int             `json:"pendingOrders"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	AverageTicket   decimal.Decimal `json:"averageTicket"`
	TotalItemsSold  int             `json:"totalItemsSold"`
}

// TopCustomer ranks customers by spend.
type TopCustomer struct {
	CustomerID    int64           `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	TotalOrders   int             `json:"totalOrders"`
	TotalSpent    decimal.Decimal `json:"totalSpent"`
}

// TopProduct ranks products by quantity sold.
type TopProduct struct {
	ProductID    int64           `json:"productId"`
	ProductName  string          `json:"productName"`
	QuantitySold int             `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
	CurrentStock int             `json:"currentStock"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
}

// LowStockProduct is the trimmed projection the low-stock report returns.
type LowStockProduct struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	CurrentStock int               `json:"currentStock"`
	Price        decimal.Decimal   `json:"price"`
	Status       enums.StockStatus `json:"status"`
}

// SalesTrendPoint is one day in the sales trend series.
type SalesTrendPoint struct {
	Date   string          `json:"date"`
	Orders int             `json:"orders"`
	Sales  decimal.Decimal `json:"sales"`
}

// SystemStatus is the operational snapshot report.
type SystemStatus struct {
	UsersByRole            map[string]int64 `json:"usersByRole"`
	ActiveProducts         int64            `json:"activeProducts"`
	InactiveProducts       int64            `json:"inactiveProducts"`
	OrdersNeedingAttention int64            `json:"ordersNeedingAttention"`
	SystemHealth           string           `json:"systemHealth"`
	LastCheck              string           `json:"lastCheck"`
}
