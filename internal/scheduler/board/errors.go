package board

import "errors"

var (
	// ErrNotFound возвращается, когда встреча не найдена
	ErrNotFound = errors.New("board: appointment not found")

	// ErrInvalidInterval возвращается, когда конец встречи не позже начала
	ErrInvalidInterval = errors.New("board: appointment end must be after start")

	// ErrMissingResource возвращается, когда не указан пациент, доктор или кабинет
	ErrMissingResource = errors.New("board: patient, doctor and room ids are required")

	// ErrInvalidStatus возвращается при попытке установить неизвестный статус
	ErrInvalidStatus = errors.New("board: invalid appointment status")

	// ErrCannotCancel возвращается, когда встреча уже в терминальном статусе
	ErrCannotCancel = errors.New("board: appointment cannot be cancelled")

	// ErrCannotMove возвращается при попытке перенести завершенную или отмененную встречу
	ErrCannotMove = errors.New("board: appointment cannot be moved")
)
