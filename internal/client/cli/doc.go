// Package cli provides the interactive WarrantyGuard command-line client.
//
// It wires configuration, the local SQLite store, the backup client and a
// REPL. Products are added by hand or through a scan session that reads a
// barcode line before the form is shown. The dashboard and list views
// compute warranty status on the fly from the current date.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
