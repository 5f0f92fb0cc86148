package salesapi

import "context"

const resourceUsers = "users"

// ListUsers returns every user account.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, resourceUsers, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CountUsers returns the backend's human-readable user count.
func (c *Client) CountUsers(ctx context.Context) (string, error) {
	return c.getText(ctx, resourceUsers, "/users/count")
}

// CreateDemoUsers seeds demonstration accounts. Not guaranteed idempotent.
func (c *Client) CreateDemoUsers(ctx context.Context) (string, error) {
	return c.getText(ctx, resourceUsers, "/users/create-demo-users")
}
