package domain

import "time"

// WaitlistStatus represents the status of a waitlist entry
type WaitlistStatus string

const (
	WaitlistWaiting  WaitlistStatus = "waiting"
	WaitlistNotified WaitlistStatus = "notified"
	WaitlistClosed   WaitlistStatus = "closed"
)

// WaitlistEntry is a client asking to be notified when a slot frees up
type WaitlistEntry struct {
	ID            string
	ShopID        string
	ServiceID     *string
	StaffID       *string
	PreferredDate *string
	ClientName    string
	ClientEmail   string
	ClientPhone   *string
	RefCode       string
	Status        WaitlistStatus
	CreatedAt     time.Time
}
