package domain

// Default board configuration values
const (
	DefaultSlotMinutes         = 60
	DefaultDayStart            = "08:00"
	DefaultDayEnd              = "18:00"
	DefaultReminderLeadMinutes = 60
	DefaultReminderPollSeconds = 30
)

// Business validation constants
const (
	MinSlotMinutes = 5
	MaxSlotMinutes = 240

	MaxTypeLength  = 100
	MaxNotesLength = 500

	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ReleasedStatuses статусы, при которых встреча освобождает доктора и кабинет.
// Используются при проверке конфликтов.
var ReleasedStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}

// AllStatuses полный список допустимых статусов встречи
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// IsValidStatus returns true for a known status value
func IsValidStatus(s AppointmentStatus) bool {
	for _, status := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}
