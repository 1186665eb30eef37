// Package config loads showcase's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/showcase/config.toml
//  3. If the file doesn't exist, fall back to Defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:4000/api"
//	page_size = 12
//	featured_count = 20
//	home_news_count = 3
//	refresh_every = "5m"   # "0s" disables background refresh
//	log_dir = "~/.local/share/showcase"
//	cache_path = "~/.local/share/showcase/cache.db"
//	cache_ttl = "10m"
//
// Every field is optional. Durations use time.ParseDuration syntax and tilde
// expansion is performed on paths. cache_path defaults to cache.db inside
// log_dir.
//
// # Error Handling
//
// A missing file is not an error. Unreadable files, invalid TOML, bad
// durations and an api_url that is not an absolute http(s) URL are returned
// as errors prefixed with their stage ("open config", "parse config",
// "api_url").
package config
