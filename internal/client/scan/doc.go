// Package scan turns decoded barcode or QR text into input for the add form.
//
// A Scanner is an external decoder with a start/stop lifecycle. An Intake
// owns at most one scan session at a time: it starts the scanner, keeps the
// first decoded code as the pending code, and stops the scanner exactly once
// per session, whether the session ends in a created record or a cancel.
package scan
