// Package auth drives the two login paths and logout, persisting the
// resulting identity before the caller sees it.
package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vitorarj/sales-manager/internal/session"
	pkgerrors "github.com/vitorarj/sales-manager/pkg/errors"
	"github.com/vitorarj/sales-manager/pkg/logger"
	"github.com/vitorarj/sales-manager/pkg/salesapi"
)

// API is the slice of the backend client the auth flows need.
type API interface {
	Login(ctx context.Context, req salesapi.LoginRequest) (*salesapi.LoginResponse, error)
	LoginTest(ctx context.Context, email string) (*salesapi.LoginResponse, error)
	UsersForLogin(ctx context.Context) (map[string]string, error)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Service runs credential and shortcut logins against the backend and
// records the session on success.
type Service struct {
	api      API
	sessions *session.Store
	logs     *logger.Logger
}

func NewService(api API, sessions *session.Store, logs *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if logs == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{api: api, sessions: sessions, logs: logs}, nil
}

// Login validates the credentials locally, authenticates against the
// backend, and persists the session. The identity is only returned once
// it has been stored.
func (s *Service) Login(ctx context.Context, email, password string) (*session.Identity, error) {
	req := salesapi.LoginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		s.logs.Warn(s.logs.WithField(ctx, "email", req.Email), "login rejected")
		return nil, err
	}

	identity, err := s.sessions.Login(ctx, resp)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist session")
	}
	return identity, nil
}

// LoginTest signs in through the passwordless shortcut the backend
// exposes for known accounts.
func (s *Service) LoginTest(ctx context.Context, email string) (*session.Identity, error) {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email inválido").
			WithServerMessage("Informe um e-mail válido")
	}

	resp, err := s.api.LoginTest(ctx, email)
	if err != nil {
		s.logs.Warn(s.logs.WithField(ctx, "email", email), "test login rejected")
		return nil, err
	}

	identity, err := s.sessions.Login(ctx, resp)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist session")
	}
	return identity, nil
}

// LoginHints lists the demo accounts the backend advertises for the
// login screen.
func (s *Service) LoginHints(ctx context.Context) (map[string]string, error) {
	return s.api.UsersForLogin(ctx)
}

// Logout ends the current session. Purely local; the backend keeps no
// server-side session to invalidate.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.Logout(ctx)
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validate login form")
	}

	fe := fieldErrs[0]
	message := "Preencha todos os campos"
	if fe.Field() == "email" && fe.Tag() == "email" {
		message = "Informe um e-mail válido"
	}
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("field %s failed %s", fe.Field(), fe.Tag())).
		WithServerMessage(message)
}
