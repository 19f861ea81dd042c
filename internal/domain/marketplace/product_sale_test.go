package marketplace

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductSaleLine_Key(t *testing.T) {
	order := "O-1"
	empty := ""

	t.Run("uses order and variant", func(t *testing.T) {
		l := ProductSaleLine{Platform: PlatformShopee, OrderID: &order, VariantCode: "V1"}
		assert.Equal(t, LineKey{Platform: PlatformShopee, OrderID: "O-1", VariantCode: "V1"}, l.Key())
	})

	t.Run("missing parts become the sentinel", func(t *testing.T) {
		assert.Equal(t,
			LineKey{Platform: PlatformLazada, OrderID: KeySentinel, VariantCode: KeySentinel},
			ProductSaleLine{Platform: PlatformLazada}.Key())
		assert.Equal(t,
			LineKey{Platform: PlatformLazada, OrderID: KeySentinel, VariantCode: "V1"},
			ProductSaleLine{Platform: PlatformLazada, OrderID: &empty, VariantCode: "V1"}.Key())
	})
}

func TestProductSaleLine_Validate(t *testing.T) {
	valid := ProductSaleLine{
		Platform:          PlatformTikTok,
		QuantityConfirmed: 2,
		RevenueConfirmed:  decimal.NewFromInt(-50),
	}
	assert.NoError(t, valid.Validate())

	neg := valid
	neg.QuantityReturned = -1
	assert.ErrorIs(t, neg.Validate(), ErrNegativeQuantity)

	noPlatform := valid
	noPlatform.Platform = ""
	assert.ErrorIs(t, noPlatform.Validate(), ErrUnsupportedPlatform)
}

func TestStandardProvinces(t *testing.T) {
	names := StandardProvinces()
	assert.Len(t, names, 77)

	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		assert.True(t, IsStandardProvince(n), n)
		seen[n] = struct{}{}
	}
	assert.Len(t, seen, 77)
	assert.True(t, IsStandardProvince("กรุงเทพมหานคร"))
	assert.False(t, IsStandardProvince("Bangkok"))

	names[0] = "changed"
	assert.NotEqual(t, "changed", StandardProvinces()[0])
}
