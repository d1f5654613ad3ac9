// Package state holds the shared snapshot store between the poller and the
// renderer.
//
// # Ownership
//
// Exactly one writer (the poller, one stop per tick) and one reader (the UI,
// once per frame). The store clones on read so a frame renders a consistent
// picture even while the next fetch lands.
//
// # Stale-but-available
//
// A failed fetch records its error and keeps the previous snapshot. The
// display never blanks on a transient upstream failure; it simply keeps
// showing the last good departures until the next poll succeeds.
//
// # Phase latch
//
// The board starts in Loading and flips to Ready once every configured stop
// has fetched successfully at least once. Ready is permanent for the process
// lifetime; later failures show stale data, never the loading spinner.
package state
