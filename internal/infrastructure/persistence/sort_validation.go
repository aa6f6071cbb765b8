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

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"email":         true,
	"phone":         true,
	"points":        true,
	"total_visits":  true,
	"last_visit_at": true,
	"status":        true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"name":             true,
	"sku":              true,
	"category":         true,
	"type":             true,
	"price":            true,
	"status":           true,
	"duration_minutes": true,
	"stock_level":      true,
}

// ClientSortFields contains allowed sort fields for corporate clients
var ClientSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"company_name":      true,
	"business_type":     true,
	"status":            true,
	"credit_limit":      true,
	"current_balance":   true,
	"contract_end_date": true,
}

// MenuItemSortFields contains allowed sort fields for menu items
var MenuItemSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"name":             true,
	"category":         true,
	"duration_minutes": true,
	"price":            true,
	"display_order":    true,
	"status":           true,
}
