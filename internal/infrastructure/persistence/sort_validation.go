package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC, defaulting to DESC.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when it is whitelisted, otherwise defaultField.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for marketplace listings
var ProductSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"title":      true,
	"price":      true,
	"views":      true,
	"sold_count": true,
}

// WithdrawalSortFields contains allowed sort fields for withdrawal requests
var WithdrawalSortFields = map[string]bool{
	"created_at":   true,
	"amount":       true,
	"status":       true,
	"processed_at": true,
}

// GallerySortFields contains allowed sort fields for the admin gallery list
var GallerySortFields = map[string]bool{
	"created_at": true,
	"title":      true,
}

// ContactSortFields contains allowed sort fields for the contact inbox
var ContactSortFields = map[string]bool{
	"created_at": true,
	"email":      true,
}
