package board

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ConflictRecorder интерфейс метрик отклоненных конфликтов.
// Реализуется pkg/metrics; nil допустим (метрики выключены).
type ConflictRecorder interface {
	IncConflictRejected(resource string)
}
