// Package warranty holds the product record shared by the WarrantyGuard
// client and backup server, the validation of form input into records, and
// the status calculation that decides whether a warranty is still active.
package warranty
