package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"kind":       true,
	"sale_price": true,
	"min_stock":  true,
	"active":     true,
}

// MovementSortFields contains allowed sort fields for movements
var MovementSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"occurred_at": true,
	"product_id":  true,
	"direction":   true,
	"quantity":    true,
}

// SaleSortFields contains allowed sort fields for sales
var SaleSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"occurred_at":    true,
	"total":          true,
	"payment_method": true,
	"status":         true,
}

// OverrideRecordSortFields contains allowed sort fields for override records
var OverrideRecordSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"category":   true,
	"user_id":    true,
}

// LedgerEntrySortFields contains allowed sort fields for ledger entries
var LedgerEntrySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"entry_date": true,
	"type":       true,
	"amount":     true,
	"category":   true,
}
