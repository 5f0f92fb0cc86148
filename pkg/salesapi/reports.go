package salesapi

import "context"

const resourceReports = "reports"

// Dashboard fetches the dashboard aggregate.
func (c *Client) Dashboard(ctx context.Context) (*DashboardData, error) {
	var data DashboardData
	if err := c.getJSON(ctx, resourceReports, "/reports/dashboard", &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// SalesSummary fetches the sales rollup.
func (c *Client) SalesSummary(ctx context.Context) (*SalesSummary, error) {
	var summary SalesSummary
	if err := c.getJSON(ctx, resourceReports, "/reports/sales-summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// TopCustomers fetches the customer ranking.
func (c *Client) TopCustomers(ctx context.Context) ([]TopCustomer, error) {
	var customers []TopCustomer
	if err := c.getJSON(ctx, resourceReports, "/reports/top-customers", &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// TopProducts fetches the product ranking.
func (c *Client) TopProducts(ctx context.Context) ([]TopProduct, error) {
	var products []TopProduct
	if err := c.getJSON(ctx, resourceReports, "/reports/top-products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// LowStock fetches the low-stock report.
func (c *Client) LowStock(ctx context.Context) ([]LowStockProduct, error) {
	var products []LowStockProduct
	if err := c.getJSON(ctx, resourceReports, "/reports/low-stock", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SalesTrend fetches the daily sales series.
func (c *Client) SalesTrend(ctx context.Context) ([]SalesTrendPoint, error) {
	var points []SalesTrendPoint
	if err := c.getJSON(ctx, resourceReports, "/reports/sales-trend", &points); err != nil {
		return nil, err
	}
	return points, nil
}

// SystemStatus fetches the operational snapshot.
func (c *Client) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	var status SystemStatus
	if err := c.getJSON(ctx, resourceReports, "/reports/system-status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}
