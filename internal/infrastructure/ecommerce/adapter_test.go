package ecommerce

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/salesnorm/internal/domain/marketplace"
)

func TestBind(t *testing.T) {
	adapter, err := ProductSalesAdapterFor(marketplace.PlatformShopee)
	require.NoError(t, err)

	t.Run("First synonym present wins", func(t *testing.T) {
		b := adapter.Bind([]string{"Parent SKU Reference No.", "shopee_code", "Order ID"})

		h, ok := b.Header(FieldVariantCode)
		require.True(t, ok)
		assert.Equal(t, "shopee_code", h)
	})

	t.Run("Case and whitespace insensitive", func(t *testing.T) {
		b := adapter.Bind([]string{"  order id ", "PRODUCT  NAME", "\ufeffจำนวน"})

		assert.True(t, b.Bound(FieldOrderID))
		assert.True(t, b.Bound(FieldProductName))
		assert.True(t, b.Bound(FieldQuantity))
		assert.Equal(t, 3, b.Recognized())
	})

	t.Run("Missing in declaration order", func(t *testing.T) {
		b := adapter.Bind([]string{"Order ID", "shopee_code", "Product Name", "Variation Name", "Quantity", "Deal Price", "Province"})

		assert.Equal(t, []Field{FieldReturnedQuantity, FieldOrderDate}, b.Missing())
	})

	t.Run("Unbound fields read as defaults", func(t *testing.T) {
		b := adapter.Bind([]string{"Something else"})
		row := map[string]string{"Something else": "42"}

		assert.Equal(t, 0, b.Recognized())
		assert.Equal(t, "", b.Text(row, FieldProductName))
		assert.True(t, b.Amount(row, FieldRevenue).IsZero())
		assert.Equal(t, int64(0), b.Quantity(row, FieldQuantity))
		assert.Nil(t, b.Date(row, FieldOrderDate))
	})

	t.Run("Typed reads", func(t *testing.T) {
		b := adapter.Bind([]string{"Quantity", "Deal Price", "Order Creation Date"})
		row := map[string]string{"Quantity": "2", "Deal Price": "฿1,299.00", "Order Creation Date": "15/01/2024 13:45"}

		assert.Equal(t, int64(2), b.Quantity(row, FieldQuantity))
		assert.True(t, decimal.RequireFromString("1299").Equal(b.Amount(row, FieldRevenue)))
		assert.Equal(t, &civil.Date{Year: 2024, Month: 1, Day: 15}, b.Date(row, FieldOrderDate))
	})
}

func TestAdapterRegistry(t *testing.T) {
	t.Run("Every platform has both adapters", func(t *testing.T) {
		for _, p := range marketplace.AllPlatforms() {
			fa, err := FinanceAdapterFor(p)
			require.NoError(t, err)
			assert.Equal(t, p, fa.Platform)
			assert.Equal(t, KindFinance, fa.Kind)

			pa, err := ProductSalesAdapterFor(p)
			require.NoError(t, err)
			assert.Equal(t, p, pa.Platform)
			assert.Equal(t, KindProductSales, pa.Kind)
		}
	})

	t.Run("Code column names lead the synonym list", func(t *testing.T) {
		want := map[marketplace.Platform]string{
			marketplace.PlatformShopee: "shopee_code",
			marketplace.PlatformTikTok: "product_id",
			marketplace.PlatformLazada: "lazada_code",
		}
		for p, code := range want {
			pa, err := ProductSalesAdapterFor(p)
			require.NoError(t, err)
			assert.Equal(t, code, pa.Synonyms(FieldVariantCode)[0])
		}
	})

	t.Run("Unknown platform", func(t *testing.T) {
		_, err := FinanceAdapterFor("EBAY")
		assert.ErrorIs(t, err, marketplace.ErrUnsupportedPlatform)

		_, err = ProductSalesAdapterFor("")
		assert.ErrorIs(t, err, marketplace.ErrUnsupportedPlatform)
	})

	t.Run("Adapters are independent copies", func(t *testing.T) {
		a, _ := FinanceAdapterFor(marketplace.PlatformTikTok)
		a.Columns[0].Synonyms[0] = "changed"

		b, _ := FinanceAdapterFor(marketplace.PlatformTikTok)
		assert.Equal(t, "Order/adjustment ID", b.Columns[0].Synonyms[0])
	})
}

func TestProductSalesQuantity(t *testing.T) {
	t.Run("Lazada counts one unit per row", func(t *testing.T) {
		pa, _ := ProductSalesAdapterFor(marketplace.PlatformLazada)
		b := pa.Bind([]string{"orderNumber", "lazada_code", "paidPrice"})

		assert.Equal(t, int64(1), pa.Quantity(b, map[string]string{"orderNumber": "1"}))
	})

	t.Run("Lazada quantity column wins when present", func(t *testing.T) {
		pa, _ := ProductSalesAdapterFor(marketplace.PlatformLazada)
		b := pa.Bind([]string{"quantity"})

		assert.Equal(t, int64(3), pa.Quantity(b, map[string]string{"quantity": "3"}))
	})

	t.Run("Other platforms default to zero", func(t *testing.T) {
		pa, _ := ProductSalesAdapterFor(marketplace.PlatformTikTok)
		b := pa.Bind([]string{"Order ID"})

		assert.Equal(t, int64(0), pa.Quantity(b, map[string]string{"Order ID": "1"}))
	})
}
