package covidapi

import (
	"bytes"
	"encoding/json"
)

// envelope wraps every API response. Data is kept raw because the API
// returns an object when a report exists and an empty array when it does not.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

type reportDTO struct {
	Date          string  `json:"date"`
	Confirmed     int64   `json:"confirmed"`
	ConfirmedDiff int64   `json:"confirmed_diff"`
	Deaths        int64   `json:"deaths"`
	DeathsDiff    int64   `json:"deaths_diff"`
	Recovered     int64   `json:"recovered"`
	RecoveredDiff int64   `json:"recovered_diff"`
	Active        int64   `json:"active"`
	ActiveDiff    int64   `json:"active_diff"`
	FatalityRate  float64 `json:"fatality_rate"`
	LastUpdate    string  `json:"last_update"`
}

// emptyData reports whether the payload carries no report: null, empty
// array, or empty object.
func emptyData(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "[]", "{}":
		return true
	}
	return false
}
