package models

// TableCounts is the row count summary reported by the diagnostics endpoint.
type TableCounts struct {
	Users       int64 `json:"users"`
	Restaurants int64 `json:"restaurants"`
	Friends     int64 `json:"friends"`
}
