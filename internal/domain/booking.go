package domain

import (
	"time"

	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusRejected  BookingStatus = "rejected"
)

// IsValid reports whether s is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// RecurringInterval is the repeat step of a recurring series
type RecurringInterval string

const (
	IntervalWeekly     RecurringInterval = "weekly"
	IntervalBiweekly   RecurringInterval = "biweekly"
	IntervalFourWeekly RecurringInterval = "fourweekly"
	IntervalMonthly    RecurringInterval = "monthly"
)

// IsValid reports whether i is a supported interval
func (i RecurringInterval) IsValid() bool {
	switch i {
	case IntervalWeekly, IntervalBiweekly, IntervalFourWeekly, IntervalMonthly:
		return true
	}
	return false
}

// Booking represents a client appointment at a shop
type Booking struct {
	ID        string
	ShopID    string
	ServiceID string

	// Denormalized service data
	ServiceName     string
	Price           float64
	ServiceDuration int // 0 = unknown

	Date     string // YYYY-MM-DD
	Time     types.TimeString
	Duration int // 0 = unknown

	// nil = any available staff member
	StaffID   *string
	StaffName *string

	Status BookingStatus
	SlotID string

	RecurringGroupID  *string
	RecurringInterval *RecurringInterval

	RefCode string

	ClientName  string
	ClientEmail string
	ClientPhone *string
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking blocks its time. A booking without a status counts as active.
func (b *Booking) IsActive() bool {
	return b.Status == "" || b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// CanBeRescheduled returns true if the booking can be moved to another slot
func (b *Booking) CanBeRescheduled() bool {
	return b.IsActive()
}

// CanTransitionTo reports whether a shop decision may move the booking to next.
// Cancellation goes through the cancel flow, not through here.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusRejected
	case StatusConfirmed:
		return next == StatusPending || next == StatusRejected
	}
	return false
}

// EffectiveDuration returns ServiceDuration, then Duration, then fallback
func (b *Booking) EffectiveDuration(fallback int) int {
	if b.ServiceDuration > 0 {
		return b.ServiceDuration
	}
	if b.Duration > 0 {
		return b.Duration
	}
	return fallback
}

// IsRecurring returns true if the booking belongs to a recurring group
func (b *Booking) IsRecurring() bool {
	return b.RecurringGroupID != nil && *b.RecurringGroupID != ""
}

// HoldsManualSlot returns true if SlotID references a persisted availability slot
func (b *Booking) HoldsManualSlot() bool {
	return IsManualSlotID(b.SlotID)
}

// ActiveBookings returns the bookings that participate in conflict detection
func ActiveBookings(bookings []Booking) []Booking {
	active := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	return active
}

// StaffCompatible reports whether two staff references may refer to the same person.
// An unset side is compatible with anyone.
func StaffCompatible(a, b *string) bool {
	if a == nil || b == nil || *a == "" || *b == "" {
		return true
	}
	return *a == *b
}
