// Package marketplace contains the Marketplace Sales bounded context.
// It defines the canonical records produced from marketplace export spreadsheets.
//
// Key concepts:
//   - Platform: the marketplace an export came from (Shopee, TikTok Shop, Lazada)
//   - Transaction: a platform-level financial ledger row (revenue, fees, adjustments, settlement)
//   - ProductSaleLine: units sold/returned for one product variant, optionally with a delivery province
//   - ProvinceAliasMap: caller-supplied table resolving free-text provinces to the 77 standard names
//   - AggregatedMetrics: per-day buckets, totals and the trailing trend window
//
// Everything in this package is plain data. Parsing lives in the application layer and
// the column adapters live in the infrastructure layer.
package marketplace
