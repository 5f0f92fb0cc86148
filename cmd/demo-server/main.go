// The demo-server command runs the in-memory fake backend locally so
// the dashboard shell can be exercised without the hosted deployment:
//
//	SALESMANAGER_API_URL=http://localhost:8080/api go run ./cmd/dashboard
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/vitorarj/sales-manager/pkg/config"
	"github.com/vitorarj/sales-manager/pkg/logger"
	"github.com/vitorarj/sales-manager/pkg/salesapi/salesapitest"
)

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logs := logger.New(logger.Options{
		ServiceName: "demo-server",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Output:      os.Stderr,
	})

	backend := salesapitest.NewServer(cfg.Demo.JWTSecret)
	addr := ":" + cfg.Demo.Port

	logs.Info(logs.WithField(context.Background(), "addr", addr), "demo backend listening")
	return http.ListenAndServe(addr, backend.Handler())
}
