// Package transit provides HTTP clients for the upstream transit data
// sources.
//
// # Stationboard
//
// Client fetches departure boards from the search.ch timetable API. One
// request per stop: stop ID, a transportation-type filter (bus and tram by
// default), and a result-count limit. Responses are decoded into typed
// structs; the caller (internal/board) applies line filtering and minute
// computation.
//
// The client holds a shared http.Client with a fixed per-request timeout and
// takes a context on every call. There are no retries here: a failed fetch
// surfaces as an error and the next scheduled poll is the retry.
//
// # Stop directory
//
// Directory downloads the published arrets.csv dataset and serves the web
// configurator's stop search. Matching is case-, accent-, and
// separator-insensitive. Only rows flagged active are kept.
package transit
