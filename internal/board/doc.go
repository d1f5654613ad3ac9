// Package board turns raw stationboard responses into display snapshots.
//
// The pipeline is pure: no clock reads, no network, no shared state. Given a
// response, a stop's filter config, the current time, and the display
// bounds, BuildSnapshot yields the ordered departure list the renderer
// shows. Keeping it pure is what makes the filtering, grace-window, and
// truncation rules directly testable.
package board
