package transit

// StationboardResponse is the stationboard API payload for one stop.
type StationboardResponse struct {
	Stop        StopInfo     `json:"stop"`
	Connections []Connection `json:"connections"`
}

// StopInfo identifies the stop the board was requested for.
type StopInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Connection is one scheduled departure as returned by the API.
type Connection struct {
	// The API reports the line label under "*L" for most operators and
	// falls back to "line" for the rest.
	LineL    string   `json:"*L"`
	Line     string   `json:"line"`
	Type     string   `json:"type"`
	Time     string   `json:"time"` // "2006-01-02 15:04:05", local time
	Terminal Terminal `json:"terminal"`
}

// Terminal is the destination endpoint of a connection.
type Terminal struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LineLabel returns the effective line label of a connection.
func (c Connection) LineLabel() string {
	if c.LineL != "" {
		return c.LineL
	}
	return c.Line
}
