package create_appointment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/integrations/directory"
	"github.com/m04kA/SMC-SchedulerService/internal/scheduler/board"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// stubDirectory возвращает заранее заданные ошибки справочника
type stubDirectory struct {
	doctorErr error
	roomErr   error
}

func (d *stubDirectory) GetDoctor(ctx context.Context, id int64) (*domain.Doctor, error) {
	if d.doctorErr != nil {
		return nil, d.doctorErr
	}
	return &domain.Doctor{ID: id, Name: "Dr. Petrova", Specialty: "cardiology"}, nil
}

func (d *stubDirectory) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	if d.roomErr != nil {
		return nil, d.roomErr
	}
	return &domain.Room{ID: id, Name: "Room A", Type: domain.RoomConsultation}, nil
}

func at(hour, minutes int) time.Time {
	return time.Date(2026, 3, 2, hour, minutes, 0, 0, time.UTC)
}

func validRequest() *Request {
	return &Request{
		PatientID: 1,
		DoctorID:  10,
		RoomID:    100,
		Start:     at(10, 0),
		End:       at(11, 0),
		Type:      "consultation",
	}
}

func newFixture(t *testing.T, dir *stubDirectory) (*UseCase, *board.Board) {
	t.Helper()
	b := board.New(nopLogger{}, nil, nil)
	return NewUseCase(b, dir, nopLogger{}), b
}

func TestExecute_Success(t *testing.T) {
	uc, _ := newFixture(t, &stubDirectory{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, at(10, 0), resp.Start)
}

func TestExecute_Validation(t *testing.T) {
	uc, _ := newFixture(t, &stubDirectory{})

	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{"zero patient", func(r *Request) { r.PatientID = 0 }, ErrInvalidInput},
		{"zero doctor", func(r *Request) { r.DoctorID = 0 }, ErrInvalidInput},
		{"zero room", func(r *Request) { r.RoomID = 0 }, ErrInvalidInput},
		{"zero start", func(r *Request) { r.Start = time.Time{} }, ErrInvalidInput},
		{"end before start", func(r *Request) { r.End = at(9, 0) }, ErrInvalidInterval},
		{"end equals start", func(r *Request) { r.End = r.Start }, ErrInvalidInterval},
		{"type too long", func(r *Request) { r.Type = strings.Repeat("x", 101) }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_UnknownDoctor(t *testing.T) {
	uc, _ := newFixture(t, &stubDirectory{doctorErr: directory.ErrDoctorNotFound})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_UnknownRoom(t *testing.T) {
	uc, _ := newFixture(t, &stubDirectory{roomErr: directory.ErrRoomNotFound})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecute_DegradedDirectorySkipsChecks(t *testing.T) {
	// Справочник недоступен с холодным кешем: создание не блокируется
	uc, _ := newFixture(t, &stubDirectory{
		doctorErr: directory.ErrServiceDegraded,
		roomErr:   directory.ErrServiceDegraded,
	})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
}

func TestExecute_ConflictPassedThrough(t *testing.T) {
	uc, b := newFixture(t, &stubDirectory{})

	first, err := b.Create(&domain.AppointmentDraft{
		PatientID: 9, DoctorID: 10, RoomID: 200,
		Start: at(10, 30), End: at(11, 30), Type: "surgery",
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, domain.ErrConflict)

	var conflictErr *domain.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, first.ID, conflictErr.ColliderID)
	assert.Equal(t, domain.ResourceDoctor, conflictErr.Resource)
}
