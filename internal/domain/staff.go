package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// BreakWindow is a pause inside a working day
type BreakWindow struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// DaySchedule is the working window of one weekday
type DaySchedule struct {
	Enabled bool             `json:"enabled"`
	Start   types.TimeString `json:"start"`
	End     types.TimeString `json:"end"`
	Break   *BreakWindow     `json:"break,omitempty"`
}

// IsWorking returns true if the day is enabled and its window is well formed
func (d *DaySchedule) IsWorking() bool {
	if d == nil || !d.Enabled {
		return false
	}
	if d.Start.Validate() != nil || d.End.Validate() != nil {
		return false
	}
	return d.Start.IsBefore(d.End)
}

// HasBreak returns true if a well formed break window is configured
func (d *DaySchedule) HasBreak() bool {
	if d == nil || d.Break == nil {
		return false
	}
	return d.Break.Start.Validate() == nil && d.Break.End.Validate() == nil
}

// WeeklyHours maps lowercase weekday names (sunday..saturday) to day schedules.
// Stored as JSONB.
type WeeklyHours map[string]*DaySchedule

// ForDate returns the schedule for the weekday of t, or nil
func (w WeeklyHours) ForDate(t time.Time) *DaySchedule {
	if w == nil {
		return nil
	}
	return w[strings.ToLower(t.Weekday().String())]
}

// Scan implements sql.Scanner. Malformed JSON yields an empty schedule, not an error.
func (w *WeeklyHours) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*w = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("weekly hours: cannot scan %T", src)
	}

	var hours WeeklyHours
	if err := json.Unmarshal(data, &hours); err != nil {
		*w = nil
		return nil
	}
	*w = hours
	return nil
}

// Value implements driver.Valuer
func (w WeeklyHours) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// StaffMember is a shop employee with a recurring weekly schedule
type StaffMember struct {
	ID          string
	ShopID      string
	Name        string
	Active      bool
	WeeklyHours WeeklyHours
}

// HasSchedule returns true if weekly hours are configured
func (s *StaffMember) HasSchedule() bool {
	return len(s.WeeklyHours) > 0
}
