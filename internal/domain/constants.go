package domain

// Default configuration values
const (
	DefaultServiceDuration = 60
	DefaultBufferMinutes   = 0
	DefaultHorizonWeeks    = 4
	RecurringHorizonMonths = 3
)

// Business validation constants
const (
	MinBufferMinutes    = 0
	MaxBufferMinutes    = 240
	MinHorizonWeeks     = 1
	MaxHorizonWeeks     = 52
	MaxNotesLength      = 500
	MaxClientNameLength = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, которые блокируют время мастера
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
