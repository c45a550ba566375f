// Package products stores WarrantyGuard product records in the local SQLite
// database. Order is kept by an autoincrement sequence column; listing sorts
// by it descending so the newest record comes first.
package products
