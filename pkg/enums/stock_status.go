package enums

import "fmt"

// StockStatus classifies a product flagged by the low-stock report.
type StockStatus string

const (
	StockStatusOut StockStatus = "SEM_ESTOQUE"
	StockStatusLow StockStatus = "ESTOQUE_BAIXO"
)

var validStockStatuses = []StockStatus{
	StockStatusOut,
	StockStatusLow,
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStockStatus converts raw input into a StockStatus.
func ParseStockStatus(value string) (StockStatus, error) {
	for _, candidate := range validStockStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock status %q", value)
}
