package models

import "time"

// Sentinel is the value recorded for any field that could not be extracted.
const Sentinel = "N/A"

// SourceYahoo is the source label stamped on every snapshot.
const SourceYahoo = "Yahoo Finance"

// Snapshot is one quote's headline figures at a point in time.
// All market fields are raw page text, Sentinel when unavailable.
// A snapshot is built once per run and never mutated afterwards.
type Snapshot struct {
	Symbol        string `json:"symbol"`
	Price         string `json:"price"`
	Change        string `json:"change"`
	PercentChange string `json:"percent_change"`
	PreviousClose string `json:"previous_close"`
	Open          string `json:"open"`
	Volume        string `json:"volume"`
	Source        string `json:"source"`
	Timestamp     string `json:"timestamp"`
}

// NewSnapshot returns a snapshot for symbol with every market field set to
// Sentinel, the source label set, and the timestamp set to now (RFC 3339).
func NewSnapshot(symbol string) *Snapshot {
	return &Snapshot{
		Symbol:        symbol,
		Price:         Sentinel,
		Change:        Sentinel,
		PercentChange: Sentinel,
		PreviousClose: Sentinel,
		Open:          Sentinel,
		Volume:        Sentinel,
		Source:        SourceYahoo,
		Timestamp:     time.Now().Format(time.RFC3339),
	}
}
