package move_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("move_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда встреча не найдена
	ErrAppointmentNotFound = errors.New("move_appointment: appointment not found")

	// ErrCannotMove возвращается при попытке перенести завершенную или отмененную встречу
	ErrCannotMove = errors.New("move_appointment: appointment cannot be moved")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("move_appointment: internal error")
)
