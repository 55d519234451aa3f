// Package config loads dreamline configuration.
//
// # Overview
//
// One TOML file serves both halves of dreamline: the interactive clients read
// where to post dreams, and the interpretation service reads how to listen.
//
// # Configuration Discovery
//
// Load resolves settings in this order:
//
//  1. The explicit path, or ~/.config/dreamline/config.toml
//  2. Built-in defaults when the file does not exist
//  3. Defaults for any field left blank in the file
//  4. DREAMLINE_* environment variables, which win when non-empty
//
// # Default Values
//
//   - api_url: http://127.0.0.1:8787
//   - request_timeout: 15s
//   - log_dir: ~/.local/state/dreamline
//   - server.listen: 127.0.0.1:8787
//   - server.env: production
//   - server.cors_origins: ["http://localhost:3000"]
//   - server.log_level / server.log_encoding: info / json
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:8787"
//	request_timeout = "15s"
//	log_dir = "~/.local/state/dreamline"
//
//	[server]
//	listen = "127.0.0.1:8787"
//	env = "production"
//	cors_origins = ["http://localhost:3000"]
//	log_level = "info"
//	log_encoding = "json"
//	static_dir = ""
//
// # Environment
//
//   - DREAMLINE_API_URL, DREAMLINE_REQUEST_TIMEOUT, DREAMLINE_LOG_DIR
//   - DREAMLINE_LISTEN, DREAMLINE_ENV, DREAMLINE_CORS_ORIGINS (comma separated)
//   - DREAMLINE_LOG_LEVEL, DREAMLINE_LOG_ENCODING, DREAMLINE_STATIC_DIR
//
// The command entry point loads a .env file first, so the same variables can
// live there during development.
//
// # Error Handling
//
// Load returns errors for unreadable files, malformed TOML, unparsable
// durations, and malformed environment values. A missing file is not an error.
package config
