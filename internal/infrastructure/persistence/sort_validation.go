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

// ClientSortFields contains allowed sort fields for clients
var ClientSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"company_name": true,
	"kind":         true,
	"status":       true,
	"email":        true,
	"cpf":          true,
	"cnpj":         true,
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"company_name": true,
	"kind":         true,
	"status":       true,
	"email":        true,
	"cpf":          true,
	"cnpj":         true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"kind":       true,
	"status":     true,
	"sku":        true,
	"barcode":    true,
	"unit":       true,
	"cost_price": true,
	"sale_price": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
	"status":     true,
}
