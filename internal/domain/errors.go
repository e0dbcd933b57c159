package domain

import (
	"errors"
	"fmt"
)

// ErrConflict метка конфликта бронирования для errors.Is;
// конкретные данные несет *ConflictError
var ErrConflict = errors.New("scheduling conflict")

// ConflictError отказ в бронировании из-за пересечения с существующей
// встречей по общему ресурсу. Несет ID встречи-виновника и ось ресурса.
// Это бизнес-отказ, а не временный сбой: операция не повторяется
// автоматически, решение принимает пользователь.
type ConflictError struct {
	ColliderID int64
	Resource   ResourceKind
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot conflicts with appointment id=%d on %s axis", e.ColliderID, e.Resource)
}

// Is делает errors.Is(err, ErrConflict) истинным для *ConflictError
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
