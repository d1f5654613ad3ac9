// Package webui serves the configuration API for the departure board.
//
// # Overview
//
// The display itself has no input besides Esc, so configuration happens over
// HTTP from another device on the network. The server reads and writes the
// same JSON config file the display loads, taking a timestamped backup before
// every save.
//
// # Endpoints
//
//	GET  /api/config           current configuration merged over defaults
//	POST /api/config           validate, back up, and save a new configuration
//	GET  /api/status           liveness and uptime
//	POST /api/restart          restart the display service via systemctl
//	GET  /api/search/stops?q=  search the public stop directory (max 10 hits)
//	GET  /api/stops/:id/info   live lines and terminals serving a stop
//	GET  /api/backups          list config backups, newest first
//	GET  /api/backups/:name    download one backup
//
// # Stop Directory
//
// Searches run against a published CSV of stops, cached in memory for a few
// hours. A failed refresh serves the stale copy rather than erroring the
// search.
package webui
