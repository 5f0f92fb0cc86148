package session

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vitorarj/sales-manager/pkg/enums"
	"github.com/vitorarj/sales-manager/pkg/logger"
	"github.com/vitorarj/sales-manager/pkg/salesapi"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "session-test", Output: io.Discard})
}

func newTestStore(t *testing.T) (*Store, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	store, err := NewStore(storage, testLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, storage
}

func signToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":  "vendedor@teste.com",
		"role":   "VENDEDOR",
		"userId": 3,
		"exp":    expiresAt.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestStoreRequiresDependencies(t *testing.T) {
	if _, err := NewStore(nil, testLogger()); err == nil {
		t.Fatal("expected error for nil storage")
	}
	if _, err := NewStore(NewMemoryStorage(), nil); err == nil {
		t.Fatal("expected error for nil logger")
	}
}

func TestLoginThenRestore(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()
	token := signToken(t, time.Now().Add(time.Hour))

	identity, err := store.Login(ctx, &salesapi.LoginResponse{
		Token:  token,
		Email:  "vendedor@teste.com",
		Role:   enums.RoleSeller,
		UserID: 3,
		Name:   "Vendedor Teste",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if identity.Token != token || identity.Role != enums.RoleSeller {
		t.Fatalf("identity = %+v", identity)
	}
	if store.Token() != token {
		t.Fatal("Token() should return the live token")
	}

	// A fresh store over the same storage restores the session.
	restored, err := NewStore(storage, testLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	got, err := restored.Restore(ctx)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got == nil {
		t.Fatal("expected a restored identity")
	}
	if got.UserID != 3 || got.Email != "vendedor@teste.com" || got.Token != token {
		t.Fatalf("restored = %+v", got)
	}
}

func TestRestoreWithNoStateIsSignedOut(t *testing.T) {
	store, _ := newTestStore(t)
	identity, err := store.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if identity != nil {
		t.Fatalf("expected nil identity, got %+v", identity)
	}
}

func TestRestoreClearsCorruptState(t *testing.T) {
	cases := []struct {
		name  string
		setup func(s *MemoryStorage, token string)
	}{
		{"missing identity", func(s *MemoryStorage, token string) {
			_ = s.Set("token", token)
		}},
		{"missing token", func(s *MemoryStorage, token string) {
			_ = s.Set("user", `{"userId":3,"email":"vendedor@teste.com","role":"VENDEDOR"}`)
		}},
		{"unparseable identity", func(s *MemoryStorage, token string) {
			_ = s.Set("token", token)
			_ = s.Set("user", "{not json")
		}},
		{"invalid role", func(s *MemoryStorage, token string) {
			_ = s.Set("token", token)
			_ = s.Set("user", `{"userId":3,"email":"vendedor@teste.com","role":"SUPERADMIN"}`)
		}},
		{"zero user id", func(s *MemoryStorage, token string) {
			_ = s.Set("token", token)
			_ = s.Set("user", `{"userId":0,"email":"vendedor@teste.com","role":"VENDEDOR"}`)
		}},
		{"garbage token", func(s *MemoryStorage, token string) {
			_ = s.Set("token", "not-a-jwt")
			_ = s.Set("user", `{"userId":3,"email":"vendedor@teste.com","role":"VENDEDOR"}`)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, storage := newTestStore(t)
			tc.setup(storage, signToken(t, time.Now().Add(time.Hour)))

			identity, err := store.Restore(context.Background())
			if err != nil {
				t.Fatalf("Restore: %v", err)
			}
			if identity != nil {
				t.Fatalf("corrupt state must not restore, got %+v", identity)
			}
			if _, err := storage.Get("token"); err != ErrNotFound {
				t.Fatal("token should have been cleared")
			}
			if _, err := storage.Get("user"); err != ErrNotFound {
				t.Fatal("identity should have been cleared")
			}
			if store.Token() != "" {
				t.Fatal("store must report signed out")
			}
		})
	}
}

func TestRestoreRejectsExpiredToken(t *testing.T) {
	store, storage := newTestStore(t)
	_ = storage.Set("token", signToken(t, time.Now().Add(-time.Minute)))
	_ = storage.Set("user", `{"userId":3,"email":"vendedor@teste.com","role":"VENDEDOR","name":"Vendedor Teste"}`)

	identity, err := store.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if identity != nil {
		t.Fatal("expired token must not restore")
	}
	if _, err := storage.Get("token"); err != ErrNotFound {
		t.Fatal("expired token should have been cleared")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()

	_, err := store.Login(ctx, &salesapi.LoginResponse{
		Token: signToken(t, time.Now().Add(time.Hour)), UserID: 3,
		Email: "vendedor@teste.com", Role: enums.RoleSeller,
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := store.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if store.Token() != "" || store.Current() != nil {
		t.Fatal("store should be signed out")
	}
	if _, err := storage.Get("token"); err != ErrNotFound {
		t.Fatal("token should have been deleted")
	}
}

type failingStorage struct {
	*MemoryStorage
	failKey string
}

func (f *failingStorage) Set(key, value string) error {
	if key == f.failKey {
		return fmt.Errorf("disk full")
	}
	return f.MemoryStorage.Set(key, value)
}

func TestLoginRollsBackOnPartialWrite(t *testing.T) {
	storage := &failingStorage{MemoryStorage: NewMemoryStorage(), failKey: "user"}
	store, err := NewStore(storage, testLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	_, err = store.Login(context.Background(), &salesapi.LoginResponse{
		Token: signToken(t, time.Now().Add(time.Hour)), UserID: 3,
		Email: "vendedor@teste.com", Role: enums.RoleSeller,
	})
	if err == nil {
		t.Fatal("expected login persistence to fail")
	}
	if _, err := storage.Get("token"); err != ErrNotFound {
		t.Fatal("token write should have been rolled back")
	}
	if store.Token() != "" {
		t.Fatal("store must stay signed out after a failed login")
	}
}

func TestFileStorageRoundTrip(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage: %v", err)
	}

	if _, err := storage.Get("token"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := storage.Set("token", "abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := storage.Get("token")
	if err != nil || got != "abc" {
		t.Fatalf("Get = %q, %v", got, err)
	}
	if err := storage.Delete("token"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// Deleting an absent key is not an error.
	if err := storage.Delete("token"); err != nil {
		t.Fatalf("repeat Delete: %v", err)
	}
	if _, err := storage.Get("../escape"); err == nil {
		t.Fatal("path traversal keys must be rejected")
	}
}
