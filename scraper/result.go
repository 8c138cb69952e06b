package scraper

import (
	"strings"

	"github.com/use-agent/quotesnap/models"
)

// FieldResult is the outcome of one field's extraction, kept separate per
// field so a failure is distinguishable from a legitimately absent value.
type FieldResult struct {
	Field string
	Value string
	Err   error
}

// Text collapses a failed or empty extraction to the sentinel.
func (r FieldResult) Text() string {
	if r.Err != nil {
		return models.Sentinel
	}
	v := strings.TrimSpace(r.Value)
	if v == "" {
		return models.Sentinel
	}
	return v
}
