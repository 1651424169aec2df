package domain

import "time"

// Booking lifecycle event types
const (
	EventBookingCreated       = "booking.created"
	EventBookingRescheduled   = "booking.rescheduled"
	EventBookingCancelled     = "booking.cancelled"
	EventBookingStatusChanged = "booking.status_changed"
)

// BookingEvent is published after a lifecycle write commits
type BookingEvent struct {
	Type       string        `json:"type"`
	BookingID  string        `json:"booking_id"`
	ShopID     string        `json:"shop_id"`
	RefCode    string        `json:"ref_code"`
	Status     BookingStatus `json:"status"`
	Date       string        `json:"date"`
	Time       string        `json:"time"`
	StaffID    *string       `json:"staff_id,omitempty"`
	GroupID    *string       `json:"recurring_group_id,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewBookingEvent builds an event snapshot of b
func NewBookingEvent(eventType string, b *Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		ShopID:     b.ShopID,
		RefCode:    b.RefCode,
		Status:     b.Status,
		Date:       b.Date,
		Time:       b.Time.String(),
		StaffID:    b.StaffID,
		GroupID:    b.RecurringGroupID,
		OccurredAt: at,
	}
}
