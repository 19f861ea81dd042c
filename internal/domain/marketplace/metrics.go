package marketplace

import "github.com/shopspring/decimal"

// TrendWindow is the maximum number of daily buckets in a trend series
const TrendWindow = 7

// DailyBucket holds the totals of one calendar day
type DailyBucket struct {
	Date        string          `json:"date"` // YYYY-MM-DD
	Revenue     decimal.Decimal `json:"revenue"`
	Fees        decimal.Decimal `json:"fees"`
	Adjustments decimal.Decimal `json:"adjustments"`
	Count       int             `json:"count"`
}

// AggregatedMetrics is recomputed from an input batch on every aggregation call
type AggregatedMetrics struct {
	TotalRevenue      decimal.Decimal   `json:"total_revenue"`
	TotalFees         decimal.Decimal   `json:"total_fees"`
	TotalAdjustments  decimal.Decimal   `json:"total_adjustments"`
	TotalSettlement   decimal.Decimal   `json:"total_settlement"`
	PerDay            []DailyBucket     `json:"per_day"`
	Trend             []decimal.Decimal `json:"trend"`
	TrendDates        []string          `json:"trend_dates"`
	TotalTransactions int               `json:"total_transactions"`
}

// BreakdownNode is one category of a revenue or fee breakdown.
// Groups made of several columns carry those columns as children.
type BreakdownNode struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Children []BreakdownNode `json:"children,omitempty"`
}

// Breakdown groups the revenue and fee composition of a transaction batch
type Breakdown struct {
	Revenue []BreakdownNode `json:"revenue"`
	Fees    []BreakdownNode `json:"fees"`
}
