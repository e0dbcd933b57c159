package reminder

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// BoardSource источник консистентных снимков доски.
// Планировщик читает только снимки и никогда не блокирует путь записи.
type BoardSource interface {
	Snapshot() []*domain.Appointment
}

// Event одно событие напоминания о предстоящей встрече
type Event struct {
	Appointment *domain.Appointment
	// FireAt расчетный момент срабатывания (start - lead)
	FireAt time.Time
	// SentAt фактический момент отправки
	SentAt time.Time
}

// Notifier получатель событий напоминаний
type Notifier interface {
	Notify(event Event)
}

// FireRecorder интерфейс метрик отправленных напоминаний.
// Реализуется pkg/metrics; nil допустим.
type FireRecorder interface {
	IncReminderFired()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
