package domain

import (
	"strings"

	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

const (
	generatedSlotPrefix = "gen_"
	recurringSlotPrefix = "rec_"
)

// AvailabilitySlot is a manually entered one-off availability record
type AvailabilitySlot struct {
	ID        string
	ShopID    string
	Date      string
	Time      types.TimeString
	Duration  int
	Available bool
	StaffID   *string
}

// Slot is a bookable candidate returned by the availability engine.
// Generated slots are derived from weekly hours and never persisted.
type Slot struct {
	ID        string
	Date      string
	Time      types.TimeString
	Duration  int
	StaffID   *string
	StaffName *string
	Generated bool
	Available bool
}

// Start returns the slot start in minutes from midnight
func (s *Slot) Start() int {
	return s.Time.Minutes()
}

// End returns the slot end in minutes from midnight
func (s *Slot) End() int {
	return s.Time.Minutes() + s.Duration
}

// Key returns the (staff, date, time) coordinate used for merge precedence
func (s *Slot) Key() string {
	return SlotKey(s.StaffID, s.Date, s.Time)
}

// ToSlot converts a manual availability record to a candidate slot
func (a *AvailabilitySlot) ToSlot() Slot {
	return Slot{
		ID:        a.ID,
		Date:      a.Date,
		Time:      a.Time,
		Duration:  a.Duration,
		StaffID:   a.StaffID,
		Available: a.Available,
	}
}

// SlotKey builds a coordinate key; a missing staff id is the empty string
func SlotKey(staffID *string, date string, t types.TimeString) string {
	staff := ""
	if staffID != nil {
		staff = *staffID
	}
	return staff + "|" + date + "|" + t.String()
}

// GeneratedSlotID is the deterministic id of a slot derived from weekly hours
func GeneratedSlotID(staffID, date string, t types.TimeString) string {
	return generatedSlotPrefix + staffID + "_" + date + "_" + t.String()
}

// RecurringSlotID is the synthetic slot id of a recurring occurrence
func RecurringSlotID(groupID, date string) string {
	return recurringSlotPrefix + groupID + "_" + date
}

// IsSyntheticSlotID reports whether id marks a generated or recurring slot with no stored record
func IsSyntheticSlotID(id string) bool {
	return strings.HasPrefix(id, generatedSlotPrefix) || strings.HasPrefix(id, recurringSlotPrefix)
}

// IsManualSlotID reports whether id references a stored availability slot
func IsManualSlotID(id string) bool {
	return id != "" && !IsSyntheticSlotID(id)
}
