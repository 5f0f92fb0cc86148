// Package salesapitest provides an in-memory fake of the sales-management
// backend, mirroring the deployed REST contract closely enough for client
// and panel tests: JWT-bearing login responses, {"error": msg} failure
// bodies, Portuguese count/seed strings, and the GET-based order
// mutations with their server-side transition rules.
package salesapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/vitorarj/sales-manager/pkg/enums"
	"github.com/vitorarj/sales-manager/pkg/salesapi"
)

type account struct {
	user     salesapi.User
	password string
}

// Server holds the in-memory backend state. Safe for concurrent use.
type Server struct {
	mu       sync.Mutex
	accounts []account
	products []salesapi.Product
	orders   []salesapi.Order

	nextUserID    int64
	nextProductID int64
	nextOrderID   int64
	nextItemID    int64

	jwtSecret string
	requests  map[string]int

	handler http.Handler
}

// NewServer builds a fake backend pre-seeded with the three base
// accounts the hosted system ships with.
func NewServer(jwtSecret string) *Server {
	s := &Server{
		jwtSecret: jwtSecret,
		requests:  make(map[string]int),
	}
	s.handler = s.routes()

	s.AddUser("Admin Sistema", "admin@sistema.com", "123456", enums.RoleAdmin)
	s.AddUser("Cliente Teste", "cliente@teste.com", "123456", enums.RoleCustomer)
	s.AddUser("Vendedor Teste", "vendedor@teste.com", "123456", enums.RoleSeller)
	return s
}

// Handler returns the HTTP handler serving the /api tree.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// AddUser seeds an account and returns it.
func (s *Server) AddUser(name, email, password string, role enums.Role) salesapi.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	user := salesapi.User{ID: s.nextUserID, Name: name, Email: email, Role: role}
	s.accounts = append(s.accounts, account{user: user, password: password})
	return user
}

// AddProduct seeds a catalog entry and returns it.
func (s *Server) AddProduct(name, description string, price decimal.Decimal, stock int, active bool) salesapi.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addProductLocked(name, description, price, stock, active)
}

func (s *Server) addProductLocked(name, description string, price decimal.Decimal, stock int, active bool) salesapi.Product {
	s.nextProductID++
	product := salesapi.Product{
		ID:          s.nextProductID,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Active:      active,
	}
	s.products = append(s.products, product)
	return product
}

// OrderItemSpec describes one line when seeding an order.
type OrderItemSpec struct {
	Product  salesapi.Product
	Quantity int
}

// AddOrder seeds an order for the given customer, computing subtotals
// and the total the way the backend does.
func (s *Server) AddOrder(customer salesapi.User, status enums.OrderStatus, items ...OrderItemSpec) salesapi.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addOrderLocked(customer, nil, status, items...)
}

func (s *Server) addOrderLocked(customer salesapi.User, seller *salesapi.User, status enums.OrderStatus, items ...OrderItemSpec) salesapi.Order {
	s.nextOrderID++
	order := salesapi.Order{
		ID:          s.nextOrderID,
		Customer:    customer,
		Seller:      seller,
		Status:      status,
		TotalAmount: decimal.Zero,
		CreatedAt:   time.Now().UTC().Format("2006-01-02T15:04:05"),
	}
	for _, spec := range items {
		s.nextItemID++
		subtotal := spec.Product.Price.Mul(decimal.NewFromInt(int64(spec.Quantity)))
		order.Items = append(order.Items, salesapi.OrderItem{
			ID:        s.nextItemID,
			Product:   spec.Product,
			Quantity:  spec.Quantity,
			UnitPrice: spec.Product.Price,
			Subtotal:  subtotal,
		})
		order.TotalAmount = order.TotalAmount.Add(subtotal)
	}
	s.orders = append(s.orders, order)
	return order
}

// RequestCount reports how many requests hit the given path.
func (s *Server) RequestCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[path]
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.countRequests)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
			r.Get("/login-test/{email}", s.handleLoginTest)
			r.Get("/users-for-login", s.handleUsersForLogin)
			r.Post("/validate", s.handleValidateToken)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Get("/count", s.handleCountUsers)
			r.Get("/create-demo-users", s.handleCreateDemoUsers)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.handleListProducts)
			r.Get("/in-stock", s.handleListProductsInStock)
			r.Get("/count", s.handleCountProducts)
			r.Get("/create-demo-products", s.handleCreateDemoProducts)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", s.handleListOrders)
			r.Get("/pending", s.handleListPendingOrders)
			r.Get("/status/{status}", s.handleListOrdersByStatus)
			r.Get("/customer/{customerId}", s.handleListOrdersByCustomer)
			r.Get("/count", s.handleCountOrders)
			r.Get("/create-demo-orders", s.handleCreateDemoOrders)
			r.Get("/{orderId}", s.handleGetOrder)
			// The deployed backend accepts these mutations as GET; the
			// client's mutation verb is configurable, so match any method.
			r.HandleFunc("/{orderId}/approve/{sellerId}", s.handleApproveOrder)
			r.HandleFunc("/{orderId}/reject/{sellerId}", s.handleRejectOrder)
			r.HandleFunc("/{orderId}/complete", s.handleCompleteOrder)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/sales-summary", s.handleSalesSummary)
			r.Get("/top-customers", s.handleTopCustomers)
			r.Get("/top-products", s.handleTopProducts)
			r.Get("/low-stock", s.handleLowStock)
			r.Get("/sales-trend", s.handleSalesTrend)
			r.Get("/system-status", s.handleSystemStatus)
		})
	})

	return r
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests[r.URL.Path]++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeText(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(message))
}

func (s *Server) findAccountByEmail(email string) *account {
	for i := range s.accounts {
		if s.accounts[i].user.Email == email {
			return &s.accounts[i]
		}
	}
	return nil
}

func (s *Server) findUserByID(id int64) *salesapi.User {
	for i := range s.accounts {
		if s.accounts[i].user.ID == id {
			return &s.accounts[i].user
		}
	}
	return nil
}

func (s *Server) loginResponse(user salesapi.User, message string) (*salesapi.LoginResponse, error) {
	token, err := mintToken(s.jwtSecret, user)
	if err != nil {
		return nil, err
	}
	return &salesapi.LoginResponse{
		Token:   token,
		Email:   user.Email,
		Role:    user.Role,
		UserID:  user.ID,
		Name:    user.Name,
		Message: message,
	}, nil
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req salesapi.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.findAccountByEmail(req.Email)
	if acct == nil {
		writeError(w, http.StatusBadRequest, "Usuário não encontrado")
		return
	}
	if acct.password != req.Password {
		writeError(w, http.StatusBadRequest, "Senha incorreta")
		return
	}

	resp, err := s.loginResponse(acct.user, "Login realizado com sucesso!")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro interno: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLoginTest(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.findAccountByEmail(email)
	if acct == nil {
		writeError(w, http.StatusBadRequest, "Usuário não encontrado")
		return
	}

	resp, err := s.loginResponse(acct.user, "Login de teste realizado com sucesso!")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro interno: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUsersForLogin(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"admin":  "admin@sistema.com (senha: 123456)",
		"client": "cliente@teste.com (senha: 123456)",
		"seller": "vendedor@teste.com (senha: 123456)",
	})
}

func (s *Server) handleValidateToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "Token não fornecido")
		return
	}

	claims, err := parseToken(s.jwtSecret, req.Token)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Token inválido: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, salesapi.TokenInfo{
		Email:   claims.Email,
		Role:    claims.Role,
		UserID:  claims.UserID,
		Message: "Token válido",
	})
}

func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]salesapi.User, 0, len(s.accounts))
	for _, acct := range s.accounts {
		users = append(users, acct.user)
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleCountUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeText(w, fmt.Sprintf("Total de usuários: %d", len(s.accounts)))
}

func (s *Server) handleCreateDemoUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.accounts) > 3 {
		writeText(w, fmt.Sprintf("⚠️ Usuários de demonstração já existem! Total: %d", len(s.accounts)))
		return
	}

	demo := []struct {
		name  string
		email string
		role  enums.Role
	}{
		{"Maria Silva", "maria@email.com", enums.RoleCustomer},
		{"João Santos", "joao@email.com", enums.RoleCustomer},
		{"Ana Costa", "ana@email.com", enums.RoleCustomer},
		{"Pedro Lima", "pedro@email.com", enums.RoleCustomer},
		{"Carla Oliveira", "carla@email.com", enums.RoleCustomer},
		{"Carlos Vendas", "carlos@sistema.com", enums.RoleSeller},
		{"Lucia Comercial", "lucia@sistema.com", enums.RoleSeller},
		{"Roberto Gerente", "roberto@sistema.com", enums.RoleAdmin},
	}
	for _, d := range demo {
		s.nextUserID++
		s.accounts = append(s.accounts, account{
			user:     salesapi.User{ID: s.nextUserID, Name: d.name, Email: d.email, Role: d.role},
			password: "123456",
		})
	}

	writeText(w, fmt.Sprintf("✅ Usuários de demonstração criados! Total: %d usuários", len(s.accounts)))
}

func (s *Server) handleListProducts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]salesapi.Product(nil), s.products...))
}

func (s *Server) handleListProductsInStock(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inStock := make([]salesapi.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Active && p.Stock > 0 {
			inStock = append(inStock, p)
		}
	}
	writeJSON(w, http.StatusOK, inStock)
}

func (s *Server) handleCountProducts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeText(w, fmt.Sprintf("Total de produtos: %d", len(s.products)))
}

func (s *Server) handleCreateDemoProducts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.products) > 3 {
		writeText(w, fmt.Sprintf("⚠️ Produtos de demonstração já existem! Total: %d", len(s.products)))
		return
	}

	s.addProductLocked("Monitor 4K", "Monitor 4K 27 polegadas IPS", decimal.RequireFromString("899.99"), 8, true)
	s.addProductLocked("SSD 1TB", "SSD NVMe 1TB alta velocidade", decimal.RequireFromString("299.99"), 20, true)
	s.addProductLocked("Webcam HD", "Webcam Full HD com microfone", decimal.RequireFromString("199.99"), 12, true)
	s.addProductLocked("Headset Gamer", "Headset gamer 7.1 surround", decimal.RequireFromString("249.99"), 15, true)
	s.addProductLocked("Mousepad RGB", "Mousepad gamer grande com RGB", decimal.RequireFromString("79.99"), 30, true)
	s.addProductLocked("Cabo HDMI", "Cabo HDMI 2.1 4K 60Hz", decimal.RequireFromString("29.99"), 2, true)
	s.addProductLocked("Hub USB", "Hub USB 3.0 com 4 portas", decimal.RequireFromString("59.99"), 0, true)

	writeText(w, fmt.Sprintf("✅ Produtos de demonstração criados! Total: %d produtos", len(s.products)))
}

func (s *Server) handleListOrders(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]salesapi.Order(nil), s.orders...))
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Pedido inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == orderID {
			writeJSON(w, http.StatusOK, order)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (s *Server) handleListPendingOrders(w http.ResponseWriter, _ *http.Request) {
	s.writeOrdersByStatus(w, enums.OrderStatusPending)
}

func (s *Server) handleListOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := enums.ParseOrderStatus(chi.URLParam(r, "status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Status inválido")
		return
	}
	s.writeOrdersByStatus(w, status)
}

func (s *Server) writeOrdersByStatus(w http.ResponseWriter, status enums.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := make([]salesapi.Order, 0, len(s.orders))
	for _, order := range s.orders {
		if order.Status == status {
			matched = append(matched, order)
		}
	}
	writeJSON(w, http.StatusOK, matched)
}

func (s *Server) handleListOrdersByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "customerId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Cliente inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findUserByID(customerID) == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	matched := make([]salesapi.Order, 0)
	for _, order := range s.orders {
		if order.Customer.ID == customerID {
			matched = append(matched, order)
		}
	}
	writeJSON(w, http.StatusOK, matched)
}

func (s *Server) handleApproveOrder(w http.ResponseWriter, r *http.Request) {
	s.decideOrder(w, r, enums.OrderStatusApproved)
}

func (s *Server) handleRejectOrder(w http.ResponseWriter, r *http.Request) {
	s.decideOrder(w, r, enums.OrderStatusRejected)
}

func (s *Server) decideOrder(w http.ResponseWriter, r *http.Request, target enums.OrderStatus) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Pedido inválido")
		return
	}
	sellerID, err := strconv.ParseInt(chi.URLParam(r, "sellerId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Vendedor inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seller := s.findUserByID(sellerID)
	if seller == nil || (seller.Role != enums.RoleSeller && seller.Role != enums.RoleAdmin) {
		writeError(w, http.StatusBadRequest, "Vendedor inválido")
		return
	}

	for i := range s.orders {
		if s.orders[i].ID != orderID {
			continue
		}
		if s.orders[i].Status != enums.OrderStatusPending {
			writeError(w, http.StatusBadRequest, "Pedido não está pendente")
			return
		}
		sellerCopy := *seller
		s.orders[i].Seller = &sellerCopy
		s.orders[i].Status = target
		s.orders[i].UpdatedAt = time.Now().UTC().Format("2006-01-02T15:04:05")
		if target == enums.OrderStatusRejected {
			s.orders[i].Notes = "Produto indisponível"
		}
		writeJSON(w, http.StatusOK, s.orders[i])
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (s *Server) handleCompleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Pedido inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID != orderID {
			continue
		}
		if s.orders[i].Status != enums.OrderStatusApproved {
			writeError(w, http.StatusBadRequest, "Pedido não está aprovado")
			return
		}
		s.orders[i].Status = enums.OrderStatusCompleted
		s.orders[i].UpdatedAt = time.Now().UTC().Format("2006-01-02T15:04:05")
		writeJSON(w, http.StatusOK, s.orders[i])
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (s *Server) handleCountOrders(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending, approved, completed int
	for _, order := range s.orders {
		switch order.Status {
		case enums.OrderStatusPending:
			pending++
		case enums.OrderStatusApproved:
			approved++
		case enums.OrderStatusCompleted:
			completed++
		}
	}
	writeText(w, fmt.Sprintf("Total: %d | Pendentes: %d | Aprovados: %d | Finalizados: %d",
		len(s.orders), pending, approved, completed))
}

func (s *Server) handleCreateDemoOrders(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var customers, sellers []salesapi.User
	for _, acct := range s.accounts {
		switch acct.user.Role {
		case enums.RoleCustomer:
			customers = append(customers, acct.user)
		case enums.RoleSeller, enums.RoleAdmin:
			sellers = append(sellers, acct.user)
		}
	}

	var sellable []salesapi.Product
	for _, p := range s.products {
		if p.Active && p.Stock > 0 {
			sellable = append(sellable, p)
		}
	}

	if len(customers) == 0 || len(sellable) == 0 {
		writeText(w, "⚠️ Crie usuários e produtos primeiro!")
		return
	}

	for i := 0; i < 8; i++ {
		customer := customers[i%len(customers)]
		var items []OrderItemSpec
		numItems := 1 + i%3
		for j := 0; j < numItems; j++ {
			product := sellable[(i+j)%len(sellable)]
			items = append(items, OrderItemSpec{Product: product, Quantity: 1 + i%3})
		}

		order := s.addOrderLocked(customer, nil, enums.OrderStatusPending, items...)

		if i%3 == 0 && len(sellers) > 0 {
			seller := sellers[i%len(sellers)]
			status := enums.OrderStatusApproved
			if i%6 == 0 {
				status = enums.OrderStatusCompleted
			}
			s.setOrderStatusLocked(order.ID, status, &seller, "")
		} else if i%7 == 0 && len(sellers) > 0 {
			seller := sellers[i%len(sellers)]
			s.setOrderStatusLocked(order.ID, enums.OrderStatusRejected, &seller, "Produto indisponível")
		}
	}

	writeText(w, "✅ Pedidos de demonstração criados com sucesso!")
}

func (s *Server) setOrderStatusLocked(orderID int64, status enums.OrderStatus, seller *salesapi.User, notes string) {
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			s.orders[i].Seller = seller
			if notes != "" {
				s.orders[i].Notes = notes
			}
			s.orders[i].UpdatedAt = time.Now().UTC().Format("2006-01-02T15:04:05")
			return
		}
	}
}
