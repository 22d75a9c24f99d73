package checks

import (
	"fmt"

	"photo-sync/feature/history"
)

// SchemaReport strictly types the result of a history schema check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckHistorySchema verifies that the history tables have every column the
// models expect.
func CheckHistorySchema(store *history.Store) (*SchemaReport, error) {
	if store == nil {
		return nil, fmt.Errorf("history store is not configured")
	}

	missing, err := store.Verify()
	if err != nil {
		return nil, fmt.Errorf("failed to inspect history schema: %w", err)
	}

	report := &SchemaReport{Matched: true, Tables: make(map[string]TableReport)}
	for table := range history.Columns {
		tbl := TableReport{MissingColumns: []string{}, Status: "ok"}
		if cols := missing[table]; len(cols) > 0 {
			tbl.MissingColumns = cols
			tbl.Status = "error"
			report.Matched = false
		}
		report.Tables[table] = tbl
	}
	return report, nil
}
