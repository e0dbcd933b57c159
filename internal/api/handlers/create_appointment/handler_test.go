package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SchedulerService/internal/usecase/create_appointment"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubUseCase struct {
	resp *createAppointment.Response
	err  error
}

func (s *stubUseCase) Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

const validBody = `{
	"patientId": 1,
	"doctorId": 10,
	"roomId": 100,
	"start": "2026-03-02T10:00:00Z",
	"end": "2026-03-02T11:00:00Z",
	"type": "consultation"
}`

func do(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{resp: &createAppointment.Response{
		ID:        7,
		PatientID: 1,
		DoctorID:  10,
		RoomID:    100,
		Start:     time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		End:       time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
		Type:      "consultation",
		Status:    "pending",
	}}
	h := NewHandler(uc, nopLogger{})

	rec := do(h, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2026-03-02T10:00:00Z", resp.Start)
}

func TestHandle_InvalidBody(t *testing.T) {
	h := NewHandler(&stubUseCase{}, nopLogger{})

	rec := do(h, `{"patientId": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidTimeFormat(t *testing.T) {
	h := NewHandler(&stubUseCase{}, nopLogger{})

	rec := do(h, `{"patientId":1,"doctorId":10,"roomId":100,"start":"10:00","end":"11:00","type":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_Conflict(t *testing.T) {
	uc := &stubUseCase{err: &domain.ConflictError{ColliderID: 3, Resource: domain.ResourceDoctor}}
	h := NewHandler(uc, nopLogger{})

	rec := do(h, validBody)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Error      string `json:"error"`
		ColliderID int64  `json:"colliderId"`
		Resource   string `json:"resource"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.ColliderID)
	assert.Equal(t, "DOCTOR", resp.Resource)
	assert.NotEmpty(t, resp.Error)
}

func TestHandle_DoctorNotFound(t *testing.T) {
	h := NewHandler(&stubUseCase{err: createAppointment.ErrDoctorNotFound}, nopLogger{})

	rec := do(h, validBody)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_InvalidInterval(t *testing.T) {
	h := NewHandler(&stubUseCase{err: createAppointment.ErrInvalidInterval}, nopLogger{})

	rec := do(h, validBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	h := NewHandler(&stubUseCase{err: createAppointment.ErrInternal}, nopLogger{})

	rec := do(h, validBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
