// Package server runs the dreamline interpretation service.
//
// # Routes
//
//   - POST /api/interpret: {"dream": "..."} -> 200 {"interpretation": "..."}
//     or 400 {"error": "Dream text is required."}
//   - GET|HEAD /health: {"status": "ok"}
//   - GET /metrics: Prometheus exposition
//   - anything else: the optional static directory, when configured
//
// A body that is not valid JSON is treated as carrying no dream. As a
// fallback the dream may be passed as the "dream" query parameter.
//
// # Middleware
//
// Recovery, zap request logging with X-Request-ID, CORS for the configured
// origins, and go-gin-prometheus request metrics, in that order.
//
// # Metrics
//
//   - dreamline_interpretations_total{result="matched"|"default"}
//   - dreamline_symbol_matches_total{orisha}
//   - dreamline_rejected_requests_total
package server
