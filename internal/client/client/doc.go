// Package client contains the client-side plumbing of WarrantyGuard.
//
// It provides:
//  1. BackupClient, the contract for pushing the full product list to the
//     backup server and pulling it back, and HTTPClient, its JSON-over-HTTP
//     implementation (POST /api/backup, GET /api/restore/{userId}).
//  2. Local database bootstrap (InitDatabase, RunMigrations, NewRepositories)
//     wiring SQLite and the embedded goose migrations.
//
// # Errors
//
// Network failures, timeouts and non-2xx answers surface as *SyncError with a
// Reason of "connection failed", "server rejected" or "invalid response".
// A 404 on restore is ErrBackupNotFound, matched with errors.Is.
package client
