// Package app is the composition root for showcase.
//
// Setup loads the TOML config, opens the application log (or writes to the
// caller's stream for one-shot commands), builds the backend client and wraps
// it with the SQLite detail cache. Run adds the home content refresher and
// starts the TUI:
//
//	Run()
//	  ├─> Setup()          config, logger, site.Client, cache.Details
//	  ├─> state.Store{}    shared home content
//	  ├─> StartPoller()    background refresh with backoff
//	  └─> ui.Run()         blocks until quit
//
// # Refresh Behavior
//
// The refresher loads heroes, promotions, company details, featured games and
// the latest news concurrently. A failure in any section keeps the previous
// content and is retried after 2s, 4s, 8s, 16s and then every 30s, but never
// later than the regular interval. With refresh disabled the refresher stops
// after its first success.
//
// Configuration errors are fatal. A cache that cannot be opened is logged and
// detail pages are fetched directly instead.
package app
