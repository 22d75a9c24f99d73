package history

import "time"

// Run is one completed reconciliation.
type Run struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Owner           string    `gorm:"size:191;not null;index" json:"owner"`
	Source          string    `gorm:"size:255;not null" json:"source"`
	StartedAt       time.Time `gorm:"not null;index" json:"started_at"`
	DurationMs      int64     `json:"duration_ms"`
	TotalDays       int       `json:"total_days"`
	DaysWithMissing int       `json:"days_with_missing"`
	MissingPhotos   int       `json:"missing_photos"`
	Findings        []Finding `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"findings,omitempty"`
}

// TableName overrides the table name used by Run.
func (Run) TableName() string {
	return "reconcile_runs"
}

// Finding is one photo a peer had that the owner lacked.
type Finding struct {
	ID      uint   `gorm:"primaryKey" json:"-"`
	RunID   string `gorm:"size:36;not null;index" json:"-"`
	Day     string `gorm:"size:10;not null" json:"day"`
	Peer    string `gorm:"size:191;not null" json:"peer"`
	PhotoID string `gorm:"size:64;not null" json:"photo_id"`
}

// TableName overrides the table name used by Finding.
func (Finding) TableName() string {
	return "reconcile_findings"
}

// Columns lists the columns each history table must have.
var Columns = map[string][]string{
	Run{}.TableName():     {"id", "owner", "source", "started_at", "duration_ms", "total_days", "days_with_missing", "missing_photos"},
	Finding{}.TableName(): {"id", "run_id", "day", "peer", "photo_id"},
}
