package panel

import (
	"io"

	"github.com/vitorarj/sales-manager/internal/session"
	"github.com/vitorarj/sales-manager/pkg/enums"
	"github.com/vitorarj/sales-manager/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "panel-test", Output: io.Discard})
}

type stubIdentity struct {
	identity *session.Identity
}

func (s *stubIdentity) Current() *session.Identity {
	if s.identity == nil {
		return nil
	}
	copied := *s.identity
	return &copied
}

func sellerIdentity(userID int64) *stubIdentity {
	return &stubIdentity{identity: &session.Identity{
		UserID: userID, Email: "vendedor@teste.com",
		Name: "Vendedor Teste", Role: enums.RoleSeller,
	}}
}

func customerIdentity(userID int64) *stubIdentity {
	return &stubIdentity{identity: &session.Identity{
		UserID: userID, Email: "cliente@teste.com",
		Name: "Cliente Teste", Role: enums.RoleCustomer,
	}}
}
