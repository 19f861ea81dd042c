package marketplace

import (
	"errors"
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Marketplace Errors
// ---------------------------------------------------------------------------

var (
	// ErrUnsupportedPlatform is returned when a platform selector is not one of the supported values
	ErrUnsupportedPlatform = errors.New("marketplace: unsupported platform")
	// ErrNegativeQuantity is returned when a product sale line carries a negative quantity
	ErrNegativeQuantity = errors.New("marketplace: quantity cannot be negative")
)

// ---------------------------------------------------------------------------
// Platform represents the marketplace an export file came from
// ---------------------------------------------------------------------------

// Platform represents the marketplace an export file came from
type Platform string

const (
	// PlatformShopee represents Shopee seller center exports
	PlatformShopee Platform = "SHOPEE"
	// PlatformTikTok represents TikTok Shop seller center exports
	PlatformTikTok Platform = "TIKTOK"
	// PlatformLazada represents Lazada seller center exports
	PlatformLazada Platform = "LAZADA"
)

// AllPlatforms returns every supported platform in a stable order
func AllPlatforms() []Platform {
	return []Platform{PlatformShopee, PlatformTikTok, PlatformLazada}
}

// IsValid returns true if the platform is supported
func (p Platform) IsValid() bool {
	switch p {
	case PlatformShopee, PlatformTikTok, PlatformLazada:
		return true
	default:
		return false
	}
}

// String returns the string representation of Platform
func (p Platform) String() string {
	return string(p)
}

// DisplayName returns a human-readable name for the platform
func (p Platform) DisplayName() string {
	switch p {
	case PlatformShopee:
		return "Shopee"
	case PlatformTikTok:
		return "TikTok Shop"
	case PlatformLazada:
		return "Lazada"
	default:
		return string(p)
	}
}

// ParsePlatform converts a platform selector such as "shopee" or "TIKTOK" into a Platform
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToUpper(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, s)
	}
	return p, nil
}
