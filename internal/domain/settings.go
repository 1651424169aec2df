package domain

import "time"

// ShopSettings is the booking policy of a shop
type ShopSettings struct {
	ShopID          string
	BufferMinutes   int
	RequireApproval bool
	HorizonWeeks    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DefaultShopSettings returns the policy used when a shop has not configured one
func DefaultShopSettings(shopID string) *ShopSettings {
	return &ShopSettings{
		ShopID:        shopID,
		BufferMinutes: DefaultBufferMinutes,
		HorizonWeeks:  DefaultHorizonWeeks,
	}
}

// HorizonDays returns the availability horizon in days
func (s *ShopSettings) HorizonDays() int {
	if s.HorizonWeeks <= 0 {
		return DefaultHorizonWeeks * 7
	}
	return s.HorizonWeeks * 7
}

// InitialStatus returns the status of a freshly created or rescheduled booking
func (s *ShopSettings) InitialStatus() BookingStatus {
	if s.RequireApproval {
		return StatusPending
	}
	return StatusConfirmed
}
