// Package rest exposes the backup service over JSON/HTTP using echo.
//
// Routes:
//
//	POST /api/backup            store {userId, products, date} (PUT is accepted too)
//	GET  /api/restore/:userId   load {lastUpdated, products}
//	GET  /health                liveness probe
//	GET  /metrics               Prometheus metrics
//
// Error bodies are {"error": "..."}.
package rest
