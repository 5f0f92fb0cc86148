package salesapi

import (
	"context"
	"fmt"
	"net/url"
)

const resourceAuth = "auth"

// Login exchanges credentials for an identity and token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.postJSON(ctx, resourceAuth, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LoginTest performs the passwordless demo login by email. The backend
// trusts the email outright; this is a demo convenience, not a security
// boundary.
func (c *Client) LoginTest(ctx context.Context, email string) (*LoginResponse, error) {
	var resp LoginResponse
	path := fmt.Sprintf("/auth/login-test/%s", url.PathEscape(email))
	if err := c.getJSON(ctx, resourceAuth, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UsersForLogin lists the accounts offered as quick-login shortcuts,
// keyed by role hint.
func (c *Client) UsersForLogin(ctx context.Context) (map[string]string, error) {
	var users map[string]string
	if err := c.getJSON(ctx, resourceAuth, "/auth/users-for-login", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ValidateToken asks the backend whether the given token is still valid.
func (c *Client) ValidateToken(ctx context.Context, token string) (*TokenInfo, error) {
	var info TokenInfo
	body := map[string]string{"token": token}
	if err := c.postJSON(ctx, resourceAuth, "/auth/validate", body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
