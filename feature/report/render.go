package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"photo-sync/core/reconcile"
)

// Lines renders a result as one line per day without differences and one line
// per peer otherwise, in day then peer order.
func Lines(result *reconcile.Result) []string {
	var lines []string
	for _, day := range result.Days {
		lines = append(lines, DayLines(day)...)
	}
	return lines
}

// DayLines renders a single day.
func DayLines(day reconcile.DayResult) []string {
	if len(day.Missing) == 0 {
		return []string{fmt.Sprintf("For day: '%s' no difference have been found.", day.Day)}
	}

	lines := make([]string, 0, len(day.Missing))
	for _, peer := range day.Missing.Peers() {
		ids := day.Missing[peer].IDs()
		quoted := make([]string, len(ids))
		for i, id := range ids {
			quoted[i] = fmt.Sprintf("%q", id)
		}
		lines = append(lines, fmt.Sprintf("For day: '%s', you are missing: [%s] - we can find it in '%s' collection.",
			day.Day, strings.Join(quoted, ", "), peer))
	}
	return lines
}

// Render writes Lines to w.
func Render(w io.Writer, result *reconcile.Result) error {
	for _, line := range Lines(result) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Document is the JSON form of a reconciliation.
type Document struct {
	Owner       reconcile.UserLabel   `json:"owner"`
	Source      string                `json:"source"`
	GeneratedAt time.Time             `json:"generated_at"`
	Summary     reconcile.Summary     `json:"summary"`
	Days        []reconcile.DayResult `json:"days"`
}

// NewDocument wraps a result for JSON output.
func NewDocument(result *reconcile.Result, source string, generated time.Time) *Document {
	days := make([]reconcile.DayResult, len(result.Days))
	for i, d := range result.Days {
		if d.Missing == nil {
			d.Missing = reconcile.MissingPhotos{}
		}
		days[i] = d
	}
	return &Document{
		Owner:       result.Owner,
		Source:      source,
		GeneratedAt: generated.UTC(),
		Summary:     result.Summary(),
		Days:        days,
	}
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
