package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда встреча не найдена
	ErrAppointmentNotFound = errors.New("appointments.service: appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments.service: invalid input data")

	// ErrCannotCancel возвращается, когда встреча уже в терминальном статусе
	ErrCannotCancel = errors.New("appointments.service: appointment cannot be cancelled")

	// ErrDirectoryUnavailable возвращается, когда справочник недоступен
	// и кеш еще не прогрет
	ErrDirectoryUnavailable = errors.New("appointments.service: directory unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments.service: internal error")
)
