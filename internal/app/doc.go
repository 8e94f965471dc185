// Package app is the composition root of bookshelf.
//
// Run loads the TOML config (see internal/config), applies command-line
// overrides, opens the slog log file, builds the catalog client and the prefs
// store, and hands them to the UI:
//
//	config.Load ─> flags ─> openLog ─> catalog.NewClient ─> prefs.NewStore ─> ui.Run
//
// Startup problems (bad config, unusable log path, malformed API URL) are
// returned from Run. Once the UI is up, catalog failures are shown on screen
// and logged; they never end the program.
package app
