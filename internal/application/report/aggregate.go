// Package report aggregates normalized marketplace records into daily buckets and a trailing trend.
package report

import (
	"sort"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/erp/salesnorm/internal/domain/marketplace"
)

// DateField selects which transaction date is used for bucketing
type DateField int

const (
	// ByOrderDate buckets by the date the order was placed
	ByOrderDate DateField = iota
	// ByPaymentDate buckets by the date the order was settled
	ByPaymentDate
)

// String returns the string representation of DateField
func (f DateField) String() string {
	switch f {
	case ByOrderDate:
		return "order_date"
	case ByPaymentDate:
		return "payment_date"
	default:
		return "unknown"
	}
}

func (f DateField) of(tx *marketplace.Transaction) *civil.Date {
	switch f {
	case ByOrderDate:
		return tx.OrderDate
	case ByPaymentDate:
		return tx.PaymentDate
	default:
		return nil
	}
}

// bucketDate returns the first date present among field and fallbacks
func bucketDate(tx *marketplace.Transaction, field DateField, fallback []DateField) *civil.Date {
	if d := field.of(tx); d != nil {
		return d
	}
	for _, f := range fallback {
		if d := f.of(tx); d != nil {
			return d
		}
	}
	return nil
}

// Aggregate totals a transaction batch and buckets it by calendar day.
// Every transaction counts toward the totals; those without a date on field or any fallback
// are left out of PerDay and Trend.
func Aggregate(txs []marketplace.Transaction, field DateField, fallback ...DateField) marketplace.AggregatedMetrics {
	acc := newAccumulator()
	for i := range txs {
		tx := &txs[i]
		acc.totalFees = acc.totalFees.Add(tx.Fees)
		acc.totalAdjustments = acc.totalAdjustments.Add(tx.Adjustments)
		acc.totalSettlement = acc.totalSettlement.Add(tx.Settlement)
		acc.add(bucketDate(tx, field, fallback), tx.Revenue, tx.Fees, tx.Adjustments)
	}
	return acc.metrics(len(txs))
}

// AggregateSales buckets product line revenue by order date. Fees and adjustments stay zero.
func AggregateSales(lines []marketplace.ProductSaleLine) marketplace.AggregatedMetrics {
	acc := newAccumulator()
	for i := range lines {
		l := &lines[i]
		acc.totalSettlement = acc.totalSettlement.Add(l.RevenueConfirmed)
		acc.add(l.OrderDate, l.RevenueConfirmed, decimal.Zero, decimal.Zero)
	}
	return acc.metrics(len(lines))
}

type accumulator struct {
	totalRevenue     decimal.Decimal
	totalFees        decimal.Decimal
	totalAdjustments decimal.Decimal
	totalSettlement  decimal.Decimal
	days             map[string]*marketplace.DailyBucket
}

func newAccumulator() *accumulator {
	return &accumulator{days: make(map[string]*marketplace.DailyBucket)}
}

func (a *accumulator) add(date *civil.Date, revenue, fees, adjustments decimal.Decimal) {
	a.totalRevenue = a.totalRevenue.Add(revenue)
	if date == nil {
		return
	}

	key := date.String()
	b, ok := a.days[key]
	if !ok {
		b = &marketplace.DailyBucket{Date: key}
		a.days[key] = b
	}
	b.Revenue = b.Revenue.Add(revenue)
	b.Fees = b.Fees.Add(fees)
	b.Adjustments = b.Adjustments.Add(adjustments)
	b.Count++
}

func (a *accumulator) metrics(count int) marketplace.AggregatedMetrics {
	perDay := make([]marketplace.DailyBucket, 0, len(a.days))
	for _, b := range a.days {
		perDay = append(perDay, *b)
	}
	sort.Slice(perDay, func(i, j int) bool { return perDay[i].Date < perDay[j].Date })

	window := perDay
	if len(window) > marketplace.TrendWindow {
		window = window[len(window)-marketplace.TrendWindow:]
	}
	trend := make([]decimal.Decimal, len(window))
	trendDates := make([]string, len(window))
	for i, b := range window {
		trend[i] = b.Revenue
		trendDates[i] = b.Date
	}

	return marketplace.AggregatedMetrics{
		TotalRevenue:      a.totalRevenue,
		TotalFees:         a.totalFees,
		TotalAdjustments:  a.totalAdjustments,
		TotalSettlement:   a.totalSettlement,
		PerDay:            perDay,
		Trend:             trend,
		TrendDates:        trendDates,
		TotalTransactions: count,
	}
}
