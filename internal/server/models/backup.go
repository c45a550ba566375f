package models

import "github.com/dmitrijs2005/warrantyguard/internal/warranty"

// Backup is the whole server-side document of one user. A new backup
// replaces the previous one.
type Backup struct {
	LastUpdated string             `json:"lastUpdated"`
	Products    []warranty.Product `json:"products"`
}
