// Package api implements the HTTP REST API and WebSocket server for rig-calc.
//
// This package provides:
//   - REST endpoints for the fixture catalogue, rig lines and aggregates
//   - A paged view of recent rig changes at /api/v1/rig/history
//   - A WebSocket hub that pushes "rig.changed" events to the panel
//   - Prometheus metrics for universe usage, circuit load and HTTP traffic
//   - Middleware stack (request ID, logging, recovery, CORS, body limit)
//   - The embedded web panel at /
//
// # Architecture
//
// Handlers are thin: they decode the request, call the session and encode
// the result. Placement rejections become 422 responses carrying the
// reason; every other failure uses the same {status, code, message} shape.
//
// # Graceful Degradation
//
// MQTT and InfluxDB are optional. The server runs without them and reports
// their state on /api/v1/health.
package api
