package get_doctors

import (
	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// DoctorResponse HTTP response model
type DoctorResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// DoctorListResponse список докторов
type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

// FromDomainDoctors конвертирует доменные модели в HTTP response
func FromDomainDoctors(doctors []domain.Doctor) *DoctorListResponse {
	out := &DoctorListResponse{
		Doctors: make([]DoctorResponse, 0, len(doctors)),
		Total:   len(doctors),
	}
	for _, d := range doctors {
		out.Doctors = append(out.Doctors, DoctorResponse{
			ID:        d.ID,
			Name:      d.Name,
			Specialty: d.Specialty,
		})
	}
	return out
}
