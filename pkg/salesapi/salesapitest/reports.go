package salesapitest

import (
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitorarj/sales-manager/pkg/enums"
	"github.com/vitorarj/sales-manager/pkg/salesapi"
)

const lowStockThreshold = 5

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := salesapi.DashboardData{
		TotalUsers:     int64(len(s.accounts)),
		TotalProducts:  int64(len(s.products)),
		TotalOrders:    int64(len(s.orders)),
		OrdersByStatus: make(map[string]int64),
		TotalSales:     decimal.Zero,
		PendingSales:   decimal.Zero,
		LastUpdated:    time.Now().UTC().Format("2006-01-02T15:04:05"),
	}
	for _, order := range s.orders {
		data.OrdersByStatus[order.Status.String()]++
		switch order.Status {
		case enums.OrderStatusCompleted:
			data.TotalSales = data.TotalSales.Add(order.TotalAmount)
		case enums.OrderStatusPending:
			data.PendingSales = data.PendingSales.Add(order.TotalAmount)
		}
	}
	for _, p := range s.products {
		if p.Active && p.Stock < lowStockThreshold {
			data.LowStockProducts++
		}
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleSalesSummary(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := salesapi.SalesSummary{
		TotalOrders:   len(s.orders),
		TotalRevenue:  decimal.Zero,
		AverageTicket: decimal.Zero,
	}
	for _, order := range s.orders {
		switch order.Status {
		case enums.OrderStatusCompleted:
			summary.CompletedOrders++
			summary.TotalRevenue = summary.TotalRevenue.Add(order.TotalAmount)
			for _, item := range order.Items {
				summary.TotalItemsSold += item.Quantity
			}
		case enums.OrderStatusPending:
			summary.PendingOrders++
		}
	}
	if summary.CompletedOrders > 0 {
		summary.AverageTicket = summary.TotalRevenue.
			Div(decimal.NewFromInt(int64(summary.CompletedOrders))).
			Round(2)
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleTopCustomers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byCustomer := make(map[int64]*salesapi.TopCustomer)
	for _, order := range s.orders {
		if order.Status != enums.OrderStatusCompleted {
			continue
		}
		entry, ok := byCustomer[order.Customer.ID]
		if !ok {
			entry = &salesapi.TopCustomer{
				CustomerID:    order.Customer.ID,
				CustomerName:  order.Customer.Name,
				CustomerEmail: order.Customer.Email,
				TotalSpent:    decimal.Zero,
			}
			byCustomer[order.Customer.ID] = entry
		}
		entry.TotalOrders++
		entry.TotalSpent = entry.TotalSpent.Add(order.TotalAmount)
	}

	ranked := make([]salesapi.TopCustomer, 0, len(byCustomer))
	for _, entry := range byCustomer {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].TotalSpent.GreaterThan(ranked[j].TotalSpent)
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	writeJSON(w, http.StatusOK, ranked)
}

func (s *Server) handleTopProducts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byProduct := make(map[int64]*salesapi.TopProduct)
	for _, order := range s.orders {
		if order.Status != enums.OrderStatusCompleted {
			continue
		}
		for _, item := range order.Items {
			entry, ok := byProduct[item.Product.ID]
			if !ok {
				entry = &salesapi.TopProduct{
					ProductID:    item.Product.ID,
					ProductName:  item.Product.Name,
					Revenue:      decimal.Zero,
					CurrentStock: item.Product.Stock,
					UnitPrice:    item.Product.Price,
				}
				byProduct[item.Product.ID] = entry
			}
			entry.QuantitySold += item.Quantity
			entry.Revenue = entry.Revenue.Add(item.Subtotal)
		}
	}

	ranked := make([]salesapi.TopProduct, 0, len(byProduct))
	for _, entry := range byProduct {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].QuantitySold > ranked[j].QuantitySold
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	writeJSON(w, http.StatusOK, ranked)
}

func (s *Server) handleLowStock(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	low := make([]salesapi.LowStockProduct, 0)
	for _, p := range s.products {
		if !p.Active || p.Stock >= lowStockThreshold {
			continue
		}
		status := enums.StockStatusLow
		if p.Stock == 0 {
			status = enums.StockStatusOut
		}
		low = append(low, salesapi.LowStockProduct{
			ID:           p.ID,
			Name:         p.Name,
			CurrentStock: p.Stock,
			Price:        p.Price,
			Status:       status,
		})
	}
	sort.Slice(low, func(i, j int) bool { return low[i].CurrentStock < low[j].CurrentStock })
	writeJSON(w, http.StatusOK, low)
}

func (s *Server) handleSalesTrend(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Seven buckets ending today, keyed by the createdAt date prefix.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	trend := make([]salesapi.SalesTrendPoint, 0, 7)
	for d := 6; d >= 0; d-- {
		day := today.AddDate(0, 0, -d).Format("2006-01-02")
		point := salesapi.SalesTrendPoint{Date: day, Sales: decimal.Zero}
		for _, order := range s.orders {
			if len(order.CreatedAt) < len(day) || order.CreatedAt[:len(day)] != day {
				continue
			}
			point.Orders++
			if order.Status == enums.OrderStatusCompleted {
				point.Sales = point.Sales.Add(order.TotalAmount)
			}
		}
		trend = append(trend, point)
	}
	writeJSON(w, http.StatusOK, trend)
}

func (s *Server) handleSystemStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := salesapi.SystemStatus{
		UsersByRole:  make(map[string]int64),
		SystemHealth: "OK",
		LastCheck:    time.Now().UTC().Format("2006-01-02T15:04:05"),
	}
	for _, acct := range s.accounts {
		status.UsersByRole[acct.user.Role.String()]++
	}
	for _, p := range s.products {
		if p.Active {
			status.ActiveProducts++
		} else {
			status.InactiveProducts++
		}
	}
	for _, order := range s.orders {
		if order.Status == enums.OrderStatusPending {
			status.OrdersNeedingAttention++
		}
	}
	if status.OrdersNeedingAttention > 10 {
		status.SystemHealth = "ATENÇÃO"
	}
	writeJSON(w, http.StatusOK, status)
}
