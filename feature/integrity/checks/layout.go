package checks

import (
	"photo-sync/core/reconcile"
)

// Folder names a user folder on a given day.
type Folder struct {
	Day  reconcile.Day       `json:"day"`
	User reconcile.UserLabel `json:"user"`
}

// LayoutReport strictly types the result of a layout check.
type LayoutReport struct {
	Owner reconcile.UserLabel `json:"owner"`
	Days  int                 `json:"days"`
	// DaysWithoutOwner lists days with no owner folder. Every peer photo on
	// such a day is reported as missing.
	DaysWithoutOwner []reconcile.Day `json:"days_without_owner"`
	// EmptyDays lists day folders holding no user folders at all.
	EmptyDays []reconcile.Day `json:"empty_days"`
	// EmptyFolders lists user folders holding no photos.
	EmptyFolders []Folder `json:"empty_folders"`
}

// OK reports whether the layout check found nothing.
func (r *LayoutReport) OK() bool {
	return len(r.DaysWithoutOwner) == 0 && len(r.EmptyDays) == 0 && len(r.EmptyFolders) == 0
}

// CheckLayout inspects a snapshot for folders that make a reconciliation
// misleading. Days are reported in ascending order.
func CheckLayout(s reconcile.Snapshot, owner reconcile.UserLabel) *LayoutReport {
	report := &LayoutReport{
		Owner:            owner,
		DaysWithoutOwner: []reconcile.Day{},
		EmptyDays:        []reconcile.Day{},
		EmptyFolders:     []Folder{},
	}

	for _, day := range s.Days() {
		report.Days++
		users := s[day]
		if len(users) == 0 {
			report.EmptyDays = append(report.EmptyDays, day)
			continue
		}

		hasOwner := false
		for _, uc := range users {
			if uc.User == owner {
				hasOwner = true
			}
			if uc.Photos.IsEmpty() {
				report.EmptyFolders = append(report.EmptyFolders, Folder{Day: day, User: uc.User})
			}
		}
		if !hasOwner {
			report.DaysWithoutOwner = append(report.DaysWithoutOwner, day)
		}
	}
	return report
}
