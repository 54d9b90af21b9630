// Package models contains GORM persistence models that map to database tables.
// Domain types stay free of ORM tags; each model has ToDomain/FromDomain
// mappers used by the repositories.
//
// Tables:
//   - accounts, clients: identity
//   - products: catalog
//   - orders, order_items: client carts and receipts
//   - payment_attempts, withdrawal_requests: gateway interactions
package models
