package report

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/salesnorm/internal/domain/marketplace"
)

func date(y, m, d int) *civil.Date {
	return &civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func tx(revenue, fees, adjustments string, orderDate, paymentDate *civil.Date) marketplace.Transaction {
	t := marketplace.Transaction{
		Platform:    marketplace.PlatformShopee,
		OrderDate:   orderDate,
		PaymentDate: paymentDate,
		Revenue:     decimal.RequireFromString(revenue),
		Fees:        decimal.RequireFromString(fees),
		Adjustments: decimal.RequireFromString(adjustments),
	}
	t.Settlement = t.ComputeSettlement()
	return t
}

func TestAggregate_Scenario1205Over28Days(t *testing.T) {
	txs := make([]marketplace.Transaction, 0, 1205)
	for i := 0; i < 1205; i++ {
		txs = append(txs, tx("10", "-2", "1", date(2024, 2, 1+i%28), nil))
	}

	m := Aggregate(txs, ByOrderDate)

	assert.True(t, m.TotalRevenue.Equal(decimal.NewFromInt(12050)))
	assert.True(t, m.TotalFees.Equal(decimal.NewFromInt(-2410)))
	assert.True(t, m.TotalAdjustments.Equal(decimal.NewFromInt(1205)))
	assert.True(t, m.TotalSettlement.Equal(decimal.NewFromInt(10845)))
	assert.Equal(t, 1205, m.TotalTransactions)
	require.Len(t, m.PerDay, 28)
	assert.LessOrEqual(t, len(m.Trend), marketplace.TrendWindow)
	assert.Len(t, m.Trend, 7)
	assert.Equal(t, []string{
		"2024-02-22", "2024-02-23", "2024-02-24", "2024-02-25", "2024-02-26", "2024-02-27", "2024-02-28",
	}, m.TrendDates)

	count := 0
	for _, b := range m.PerDay {
		count += b.Count
	}
	assert.Equal(t, 1205, count)
}

func TestAggregate_RevenueRoundTrip(t *testing.T) {
	txs := []marketplace.Transaction{
		tx("100.10", "-5", "0", date(2024, 3, 2), nil),
		tx("-20.05", "0", "0", nil, date(2024, 3, 1)),
		tx("7", "-1", "3", nil, nil),
		tx("0.95", "0", "0", date(2024, 3, 2), nil),
	}

	m := Aggregate(txs, ByOrderDate, ByPaymentDate)

	sum := decimal.Zero
	for _, x := range txs {
		sum = sum.Add(x.Revenue)
	}
	assert.True(t, m.TotalRevenue.Equal(sum), "got %s want %s", m.TotalRevenue, sum)
	assert.Equal(t, 4, m.TotalTransactions)

	require.Len(t, m.PerDay, 2)
	assert.Equal(t, "2024-03-01", m.PerDay[0].Date)
	assert.True(t, m.PerDay[0].Revenue.Equal(decimal.RequireFromString("-20.05")))
	assert.Equal(t, "2024-03-02", m.PerDay[1].Date)
	assert.True(t, m.PerDay[1].Revenue.Equal(decimal.RequireFromString("101.05")))
	assert.Equal(t, 2, m.PerDay[1].Count)

	// the undated row counts in totals only
	dated := decimal.Zero
	for _, b := range m.PerDay {
		dated = dated.Add(b.Revenue)
	}
	assert.True(t, m.TotalRevenue.Sub(dated).Equal(decimal.NewFromInt(7)))
}

func TestAggregate_FallbackOnlyWhenPrimaryMissing(t *testing.T) {
	txs := []marketplace.Transaction{
		tx("1", "0", "0", date(2024, 1, 5), date(2024, 1, 9)),
		tx("2", "0", "0", nil, date(2024, 1, 9)),
	}

	byPayment := Aggregate(txs, ByPaymentDate)
	require.Len(t, byPayment.PerDay, 1)
	assert.Equal(t, "2024-01-09", byPayment.PerDay[0].Date)

	byOrder := Aggregate(txs, ByOrderDate)
	require.Len(t, byOrder.PerDay, 1)
	assert.Equal(t, "2024-01-05", byOrder.PerDay[0].Date)

	withFallback := Aggregate(txs, ByOrderDate, ByPaymentDate)
	assert.Equal(t, []string{"2024-01-05", "2024-01-09"}, withFallback.TrendDates)
}

func TestAggregate_AllUndated(t *testing.T) {
	txs := []marketplace.Transaction{
		tx("10", "-1", "0", nil, nil),
		tx("5", "0", "2", nil, nil),
	}

	m := Aggregate(txs, ByOrderDate, ByPaymentDate)

	assert.Equal(t, 2, m.TotalTransactions)
	assert.True(t, m.TotalRevenue.Equal(decimal.NewFromInt(15)))
	assert.Empty(t, m.PerDay)
	assert.Empty(t, m.Trend)
	assert.Empty(t, m.TrendDates)
}

func TestAggregate_Empty(t *testing.T) {
	m := Aggregate(nil, ByOrderDate)

	assert.Equal(t, 0, m.TotalTransactions)
	assert.True(t, m.TotalRevenue.IsZero())
	assert.NotNil(t, m.PerDay)
	assert.NotNil(t, m.Trend)
}

func TestAggregate_TrendNeverReorders(t *testing.T) {
	var txs []marketplace.Transaction
	for _, d := range []int{9, 3, 7, 1, 5} {
		txs = append(txs, tx("1", "0", "0", date(2024, 5, d), nil))
	}

	m := Aggregate(txs, ByOrderDate)
	assert.Equal(t, []string{"2024-05-01", "2024-05-03", "2024-05-05", "2024-05-07", "2024-05-09"}, m.TrendDates)
}

func TestAggregateSales(t *testing.T) {
	lines := []marketplace.ProductSaleLine{
		{Platform: marketplace.PlatformTikTok, RevenueConfirmed: decimal.NewFromInt(300), OrderDate: date(2024, 6, 2)},
		{Platform: marketplace.PlatformTikTok, RevenueConfirmed: decimal.NewFromInt(-50), OrderDate: date(2024, 6, 2)},
		{Platform: marketplace.PlatformTikTok, RevenueConfirmed: decimal.NewFromInt(20)},
	}

	m := AggregateSales(lines)

	assert.True(t, m.TotalRevenue.Equal(decimal.NewFromInt(270)))
	assert.True(t, m.TotalFees.IsZero())
	assert.Equal(t, 3, m.TotalTransactions)
	require.Len(t, m.PerDay, 1)
	assert.True(t, m.PerDay[0].Revenue.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, 2, m.PerDay[0].Count)
}

func TestDateFieldString(t *testing.T) {
	assert.Equal(t, "order_date", ByOrderDate.String())
	assert.Equal(t, "payment_date", ByPaymentDate.String())
	assert.Equal(t, "unknown", DateField(9).String())
}
