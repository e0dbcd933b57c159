package create_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	// Полуоткрытый интервал [start, end): конец строго позже начала
	if !req.Start.Before(req.End) {
		return ErrInvalidInterval
	}

	if len(req.Type) > domain.MaxTypeLength {
		return fmt.Errorf("%w: type exceeds %d characters", ErrInvalidInput, domain.MaxTypeLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
