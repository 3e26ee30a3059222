// Package config loads contactdesk settings from a TOML file.
//
// # Resolution
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/contactdesk/config.toml
//  3. If the file doesn't exist, use defaults
//  4. Empty or missing keys keep their defaults
//  5. CONTACTDESK_BASE_URL, when set, overrides base_url
//
// # Keys
//
//	base_url        = "http://127.0.0.1:8080"
//	poll_seconds    = 5
//	request_timeout = "0s"   # zero: no client timeout
//	log_file        = "~/.local/state/contactdesk/contactdesk.log"
//	log_level       = "info" # debug, info, warn, error
//
// Paths beginning with ~ are expanded with go-homedir and made absolute.
// A file that exists but cannot be parsed is an error; the caller decides
// whether to stop.
package config
