// Package config handles loading and persisting the busdisplay configuration.
//
// # Overview
//
// The configuration is a single JSON document shared between the board
// process and the web configurator. It holds the stop list with per-stop
// line filters, the polling/display behavior knobs, and the sizing block the
// layout engine scales from.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/busdisplay/config.json (default)
//  3. If the file doesn't exist, write a default file first, then load it
//  4. Fields missing from the file keep their default values
//
// # Stop Filters
//
// Each stop may carry at most one of two filters, both mapping a line label
// to an optional destination terminal ID:
//
//   - LinesInclude: only departures whose line is a key AND whose terminal
//     matches the mapped value (any terminal when the value is null) survive
//   - LinesExclude: departures matching the same predicate are dropped
//
// Older config revisions used a flat "Lines" map with include semantics.
// Load migrates it into LinesInclude; mixing the legacy key with either new
// key is an error.
//
// # Error Handling
//
// A missing file is NOT an error. Everything else (unreadable file, invalid
// JSON, schema violations such as an empty stop ID, non-positive intervals,
// or both filters set) returns a *Error, which is fatal at startup: the process
// logs it and exits without partial start.
package config
