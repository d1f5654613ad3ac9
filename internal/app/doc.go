// Package app is the composition root of the departure board.
//
// # Overview
//
// Run wires configuration, the stationboard client, the shared state store,
// the background poller, and the TUI into a running board. Business logic
// lives in the domain packages; app only connects them.
//
// # Architecture
//
//  1. Load the JSON configuration (a missing file is created with defaults)
//  2. Open the log file; the console stays quiet because the TUI owns it
//  3. Build the stationboard HTTP client and, when enabled, the weather client
//  4. Create a state.Store sized to the configured stops
//  5. Launch the poller goroutine
//  6. Run the TUI until the user quits or the context is cancelled
//
// # Polling Behavior
//
// The poller wakes once per second and fetches at most one stop whose
// per-stop deadline has elapsed, cycling round-robin so every stop gets its
// turn. Each stop refreshes on the configured fetch_interval. The daily
// weather forecast piggybacks on ticks where no stop is due, on a 30 minute
// cadence.
//
// # Error Handling
//
// Configuration failures are fatal and surface from Run as *config.Error.
// Fetch failures during polling are logged and recorded in the store; the
// previous snapshot stays on screen until a later fetch succeeds.
package app
