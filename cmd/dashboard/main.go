// The dashboard command is a terminal shell over the client library:
// it signs in (or restores the previous session), resolves the screens
// the role may open, loads each panel once, and prints a short summary.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vitorarj/sales-manager/internal/auth"
	"github.com/vitorarj/sales-manager/internal/nav"
	"github.com/vitorarj/sales-manager/internal/panel"
	"github.com/vitorarj/sales-manager/internal/session"
	"github.com/vitorarj/sales-manager/pkg/config"
	"github.com/vitorarj/sales-manager/pkg/enums"
	pkgerrors "github.com/vitorarj/sales-manager/pkg/errors"
	"github.com/vitorarj/sales-manager/pkg/logger"
	"github.com/vitorarj/sales-manager/pkg/metrics"
	"github.com/vitorarj/sales-manager/pkg/salesapi"
)

func main() {
	_ = godotenv.Load()

	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, pkgerrors.UserMessage(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logs := logger.New(logger.Options{
		ServiceName: "sales-manager",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Output:      os.Stderr,
	})

	storage, err := session.NewFileStorage(cfg.Session.StateDir)
	if err != nil {
		return err
	}
	sessions, err := session.NewStore(storage, logs)
	if err != nil {
		return err
	}

	client := salesapi.NewClient(cfg.API.BaseURL,
		salesapi.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		salesapi.WithTokenSource(sessions),
		salesapi.WithMetrics(metrics.NewRequestMetrics(prometheus.NewRegistry())),
		salesapi.WithMutationMethod(cfg.API.MutationMethod),
	)

	identity, err := signIn(ctx, cfg, client, sessions, logs)
	if err != nil {
		return err
	}

	fmt.Printf("Bem-vindo, %s (%s)\n", identity.Name, identity.Role.Label())
	fmt.Printf("Telas disponíveis: %v\n", nav.Routes(identity.Role))

	return loadPanels(ctx, identity, client, sessions, logs)
}

// signIn restores a persisted session when one exists, otherwise logs
// in with whatever the environment provides.
func signIn(ctx context.Context, cfg *config.Config, client *salesapi.Client,
	sessions *session.Store, logs *logger.Logger) (*session.Identity, error) {

	if identity, err := sessions.Restore(ctx); err == nil && identity != nil {
		return identity, nil
	}

	login, err := auth.NewService(client, sessions, logs)
	if err != nil {
		return nil, err
	}

	switch {
	case cfg.Login.TestEmail != "":
		return login.LoginTest(ctx, cfg.Login.TestEmail)
	case cfg.Login.Email != "":
		return login.Login(ctx, cfg.Login.Email, cfg.Login.Password)
	}

	hints, err := login.LoginHints(ctx)
	if err == nil {
		fmt.Println("Nenhuma credencial configurada. Contas de demonstração:")
		for role, hint := range hints {
			fmt.Printf("  %s: %s\n", role, hint)
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "no credentials configured").
		WithServerMessage("Configure SALESMANAGER_LOGIN_EMAIL ou SALESMANAGER_LOGIN_TEST_EMAIL")
}

// loadPanels activates each screen the role can reach and prints one
// line per panel.
func loadPanels(ctx context.Context, identity *session.Identity,
	client *salesapi.Client, sessions *session.Store, logs *logger.Logger) error {

	dashboard, err := panel.NewDashboard(client, logs)
	if err != nil {
		return err
	}
	defer dashboard.Close()

	snap, err := dashboard.Load(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Dashboard: %d usuários, %d produtos, %d pedidos\n",
		snap.Data.TotalUsers, snap.Data.TotalProducts, snap.Data.TotalOrders)

	switch identity.Role {
	case enums.RoleAdmin:
		admin, err := panel.NewAdmin(client, logs)
		if err != nil {
			return err
		}
		defer admin.Close()
		adminSnap, err := admin.Load(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Admin: %d usuários (%d clientes), %d pedidos pendentes\n",
			len(adminSnap.Users),
			adminSnap.UsersByRole[enums.RoleCustomer],
			adminSnap.OrdersByStatus[enums.OrderStatusPending])

	case enums.RoleSeller:
		seller, err := panel.NewSeller(client, sessions, logs)
		if err != nil {
			return err
		}
		defer seller.Close()
		sellerSnap, err := seller.Load(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Vendedor: %d pedidos pendentes, %d produtos com estoque baixo, receita %s\n",
			len(sellerSnap.Pending), len(sellerSnap.LowStock), sellerSnap.TotalRevenue)

	case enums.RoleCustomer:
		customer, err := panel.NewCustomer(client, sessions, logs)
		if err != nil {
			return err
		}
		defer customer.Close()
		customerSnap, err := customer.Load(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Cliente: %d pedidos seus, %d produtos disponíveis\n",
			len(customerSnap.Orders), len(customerSnap.Products))
	}

	return nil
}
