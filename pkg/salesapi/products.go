package salesapi

import "context"

const resourceProducts = "products"

// ListProducts returns the full catalog, active or not.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, resourceProducts, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListProductsInStock returns only purchasable products with stock.
func (c *Client) ListProductsInStock(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, resourceProducts, "/products/in-stock", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CountProducts returns the backend's human-readable product count.
func (c *Client) CountProducts(ctx context.Context) (string, error) {
	return c.getText(ctx, resourceProducts, "/products/count")
}

// CreateDemoProducts seeds demonstration catalog entries.
func (c *Client) CreateDemoProducts(ctx context.Context) (string, error) {
	return c.getText(ctx, resourceProducts, "/products/create-demo-products")
}
