// Package interpret provides the HTTP client for the dreamline interpretation API.
//
// # Overview
//
// The client sends one dream per call and decodes the interpretation. It is
// deliberately thin: the form controller owns validation, loading state and
// the user-facing failure message, so everything here is reported as a
// wrapped error.
//
// # API Endpoints
//
//   - POST /api/interpret: body {"dream": "..."}, answers {"interpretation": "..."}
//   - GET /health: answers {"status": "ok"}
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Set Accept: application/json and User-Agent: dreamline/0.1
//   - Set Content-Type: application/json when a body is sent
//   - Time out after 15 seconds unless WithTimeout says otherwise
//
// # Error Handling
//
//   - Network errors: "execute request: dial tcp: connection refused"
//   - Non-2xx statuses: *StatusError, "api /api/interpret returned status 502"
//   - Malformed bodies: "decode response: unexpected EOF"
//
// A success body without an interpretation field decodes to an empty
// Response.Interpretation; deciding what to show for it is the caller's job.
//
// # URL Construction
//
//   - "127.0.0.1:8787" -> http://127.0.0.1:8787
//   - "https://dreams.example/any/path" -> https://dreams.example
//
// # Thread Safety
//
// Client is safe for concurrent use.
package interpret
