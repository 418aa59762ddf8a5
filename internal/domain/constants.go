package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Booking engine defaults. The configurable values live in config.toml;
// these are the fallbacks applied when the file omits them.
const (
	DefaultHoldMinutes               = 12
	DefaultSweepIntervalSeconds      = 60
	DefaultCancellationLeadTimeHours = 24
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxCustomerNameLength       = 120
)

// BlockingStatuses are the statuses that occupy a time slot. Bookings in
// these states are considered by overlap checks and subtracted from
// availability.
var BlockingStatuses = []BookingStatus{
	StatusPendingPayment,
	StatusConfirmed,
}

// InactiveStatuses are the statuses excluded from agenda listings unless
// explicitly requested.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}
