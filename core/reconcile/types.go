package reconcile

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// DayLayout is the textual form of a Day, also used for day folder names.
const DayLayout = "2006-01-02"

// PhotoID is the content identity of a photo (hex SHA-256 of its bytes).
// Two photos with equal IDs are the same photo regardless of name or location.
type PhotoID string

// String implements fmt.Stringer.
func (id PhotoID) String() string {
	return string(id)
}

// UserLabel identifies a person (owner or peer) by folder name.
type UserLabel string

// String implements fmt.Stringer.
func (u UserLabel) String() string {
	return string(u)
}

// Day is a calendar date. The zero value is not a valid day.
// Days are comparable and can be used as map keys.
type Day struct {
	year  int
	month time.Month
	day   int
}

// NewDay returns the Day for the given calendar date, normalized the way time.Date does.
func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayOf returns the calendar date of t in t's location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{year: y, month: m, day: d}
}

// ParseDay parses a day in DayLayout form (e.g. "2024-04-15").
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day %q: %w", s, err)
	}
	return DayOf(t), nil
}

// Before reports whether d is earlier than other.
func (d Day) Before(other Day) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool {
	return d == Day{}
}

// Time returns the day as UTC midnight.
func (d Day) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// String implements fmt.Stringer.
func (d Day) String() string {
	return d.Time().Format(DayLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UserCollection is one user's photos for one day, as supplied by a Provider.
type UserCollection struct {
	User   UserLabel
	Photos *Collection
}

// Snapshot maps each scanned day to the collections of every user seen that day.
type Snapshot map[Day][]UserCollection

// Days returns the snapshot's days in ascending order.
func (s Snapshot) Days() []Day {
	days := make([]Day, 0, len(s))
	for day := range s {
		days = append(days, day)
	}
	sortDays(days)
	return days
}

// MissingPhotos maps a peer to the photos the peer has and the owner lacks.
// It never holds an empty collection: no difference means no key.
type MissingPhotos map[UserLabel]*Collection

// Peers returns the peers in sorted order.
func (m MissingPhotos) Peers() []UserLabel {
	peers := make([]UserLabel, 0, len(m))
	for peer := range m {
		peers = append(peers, peer)
	}
	sort.Slice(peers, func(i, j int) bool { return peers[i] < peers[j] })
	return peers
}

// DayResult is the reconciliation output for a single day.
type DayResult struct {
	Day     Day           `json:"day"`
	Missing MissingPhotos `json:"missing"`
}

// Result is the reconciliation output for every scanned day, in ascending day order.
// Days with nothing missing are present with an empty Missing map.
type Result struct {
	Owner UserLabel   `json:"owner"`
	Days  []DayResult `json:"days"`
}

// Get returns the missing photos for a day, and whether the day was scanned.
func (r *Result) Get(day Day) (MissingPhotos, bool) {
	i := sort.Search(len(r.Days), func(i int) bool { return !r.Days[i].Day.Before(day) })
	if i < len(r.Days) && r.Days[i].Day == day {
		return r.Days[i].Missing, true
	}
	return nil, false
}

// Summary returns aggregate counts over the result.
func (r *Result) Summary() Summary {
	s := Summary{TotalDays: len(r.Days)}
	for _, d := range r.Days {
		if len(d.Missing) > 0 {
			s.DaysWithMissing++
		}
		for _, photos := range d.Missing {
			s.MissingPhotos += photos.Len()
		}
	}
	return s
}

// MarshalJSON keeps the result's day order in the encoded form.
func (r *Result) MarshalJSON() ([]byte, error) {
	type alias Result
	out := alias{Owner: r.Owner, Days: make([]DayResult, len(r.Days))}
	for i, d := range r.Days {
		if d.Missing == nil {
			d.Missing = MissingPhotos{}
		}
		out.Days[i] = d
	}
	return json.Marshal(out)
}

// Summary provides aggregate statistics for a Result.
type Summary struct {
	// TotalDays is the number of scanned days.
	TotalDays int `json:"total_days"`

	// DaysWithMissing counts days where at least one peer has photos the owner lacks.
	DaysWithMissing int `json:"days_with_missing"`

	// MissingPhotos counts (peer, photo) pairs across all days.
	MissingPhotos int `json:"missing_photos"`
}

func sortDays(days []Day) {
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
}
