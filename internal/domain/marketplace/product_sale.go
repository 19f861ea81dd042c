package marketplace

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KeySentinel stands in for a missing order ID or variant code inside a LineKey
const KeySentinel = "-"

// LineKey is the composite identity of a product sale line.
// The persistence layer enforces the same key as a uniqueness constraint.
type LineKey struct {
	Platform    Platform
	OrderID     string
	VariantCode string
}

// ProductSaleLine is a line item of units sold and returned for one product variant
type ProductSaleLine struct {
	Platform           Platform        `json:"platform"`
	ProductName        string          `json:"product_name"`
	VariantName        string          `json:"variant_name"`
	VariantCode        string          `json:"variant_code"`
	QuantityConfirmed  int64           `json:"quantity_confirmed"`
	QuantityReturned   int64           `json:"quantity_returned"`
	RevenueConfirmed   decimal.Decimal `json:"revenue_confirmed"`
	RowNumber          int             `json:"row_number"`
	OrderID            *string         `json:"order_id,omitempty"`
	ProvinceRaw        *string         `json:"province_raw,omitempty"`
	ProvinceNormalized *string         `json:"province_normalized,omitempty"`
	OrderDate          *civil.Date     `json:"order_date,omitempty"`
	RawRow             RawRow          `json:"raw_row,omitempty"`
	// UploadID and ObservedAt carry provenance; the fresher observation wins on merge
	UploadID   uuid.UUID `json:"upload_id"`
	ObservedAt time.Time `json:"observed_at"`
}

// Key returns the composite identity (platform, orderId-or-sentinel, variantCode-or-sentinel)
func (l ProductSaleLine) Key() LineKey {
	key := LineKey{Platform: l.Platform, OrderID: KeySentinel, VariantCode: KeySentinel}
	if l.OrderID != nil && *l.OrderID != "" {
		key.OrderID = *l.OrderID
	}
	if l.VariantCode != "" {
		key.VariantCode = l.VariantCode
	}
	return key
}

// Validate checks the quantity invariants. Monetary fields may be negative.
func (l ProductSaleLine) Validate() error {
	if !l.Platform.IsValid() {
		return ErrUnsupportedPlatform
	}
	if l.QuantityConfirmed < 0 || l.QuantityReturned < 0 {
		return ErrNegativeQuantity
	}
	return nil
}
