package ecommerce

import (
	"fmt"

	"github.com/erp/salesnorm/internal/domain/marketplace"
)

// FinanceAdapterFor returns a fresh finance adapter for the platform
func FinanceAdapterFor(p marketplace.Platform) (*FinanceAdapter, error) {
	switch p {
	case marketplace.PlatformShopee:
		return newShopeeFinanceAdapter(), nil
	case marketplace.PlatformTikTok:
		return newTikTokFinanceAdapter(), nil
	case marketplace.PlatformLazada:
		return newLazadaFinanceAdapter(), nil
	default:
		return nil, fmt.Errorf("%w: %q", marketplace.ErrUnsupportedPlatform, string(p))
	}
}

// ProductSalesAdapterFor returns a fresh product-sales adapter for the platform
func ProductSalesAdapterFor(p marketplace.Platform) (*ProductSalesAdapter, error) {
	switch p {
	case marketplace.PlatformShopee:
		return newShopeeProductSalesAdapter(), nil
	case marketplace.PlatformTikTok:
		return newTikTokProductSalesAdapter(), nil
	case marketplace.PlatformLazada:
		return newLazadaProductSalesAdapter(), nil
	default:
		return nil, fmt.Errorf("%w: %q", marketplace.ErrUnsupportedPlatform, string(p))
	}
}
