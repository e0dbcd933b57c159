package move_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/scheduler/board"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func at(hour, minutes int) time.Time {
	return time.Date(2026, 3, 2, hour, minutes, 0, 0, time.UTC)
}

func seedAppointment(t *testing.T, b *board.Board, patientID, doctorID, roomID int64, start, end time.Time) *domain.Appointment {
	t.Helper()
	appt, err := b.Create(&domain.AppointmentDraft{
		PatientID: patientID,
		DoctorID:  doctorID,
		RoomID:    roomID,
		Start:     start,
		End:       end,
		Type:      "consultation",
	})
	require.NoError(t, err)
	return appt
}

func newFixture(t *testing.T) (*UseCase, *board.Board) {
	t.Helper()
	b := board.New(nopLogger{}, nil, nil)
	return NewUseCase(b, nopLogger{}), b
}

func TestExecute_MoveAlongDoctorAxis(t *testing.T) {
	uc, b := newFixture(t)
	appt := seedAppointment(t, b, 1, 10, 100, at(10, 0), at(11, 30))

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID:    appt.ID,
		Axis:             domain.AxisDoctor,
		TargetResourceID: 20,
		TargetStart:      at(14, 0),
	})
	require.NoError(t, err)

	// Доктор сменился, кабинет прежний, длительность сохранена
	assert.Equal(t, int64(20), resp.DoctorID)
	assert.Equal(t, int64(100), resp.RoomID)
	assert.Equal(t, at(14, 0), resp.Start)
	assert.Equal(t, at(15, 30), resp.End)
}

func TestExecute_MoveAlongRoomAxis(t *testing.T) {
	uc, b := newFixture(t)
	appt := seedAppointment(t, b, 1, 10, 100, at(10, 0), at(11, 0))

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID:    appt.ID,
		Axis:             domain.AxisRoom,
		TargetResourceID: 200,
		TargetStart:      at(10, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.DoctorID)
	assert.Equal(t, int64(200), resp.RoomID)
}

func TestExecute_ConflictPassedThroughWithCollider(t *testing.T) {
	uc, b := newFixture(t)
	blocker := seedAppointment(t, b, 1, 20, 200, at(14, 0), at(15, 0))
	appt := seedAppointment(t, b, 2, 10, 100, at(10, 0), at(11, 0))

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID:    appt.ID,
		Axis:             domain.AxisDoctor,
		TargetResourceID: 20,
		TargetStart:      at(14, 30),
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	var conflictErr *domain.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, blocker.ID, conflictErr.ColliderID)
	assert.Equal(t, domain.ResourceDoctor, conflictErr.Resource)

	// Встреча осталась на месте
	unchanged, getErr := b.Get(appt.ID)
	require.NoError(t, getErr)
	assert.Equal(t, at(10, 0), unchanged.Start)
	assert.Equal(t, int64(10), unchanged.DoctorID)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _ := newFixture(t)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID:    42,
		Axis:             domain.AxisDoctor,
		TargetResourceID: 20,
		TargetStart:      at(14, 0),
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_CancelledAppointmentCannotBeMoved(t *testing.T) {
	uc, b := newFixture(t)
	appt := seedAppointment(t, b, 1, 10, 100, at(10, 0), at(11, 0))
	_, err := b.Cancel(appt.ID, nil)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{
		AppointmentID:    appt.ID,
		Axis:             domain.AxisDoctor,
		TargetResourceID: 20,
		TargetStart:      at(14, 0),
	})
	assert.ErrorIs(t, err, ErrCannotMove)
}

func TestExecute_Validation(t *testing.T) {
	uc, _ := newFixture(t)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero appointment id", &Request{Axis: domain.AxisDoctor, TargetResourceID: 1, TargetStart: at(14, 0)}},
		{"unknown axis", &Request{AppointmentID: 1, Axis: "lane", TargetResourceID: 1, TargetStart: at(14, 0)}},
		{"zero resource id", &Request{AppointmentID: 1, Axis: domain.AxisRoom, TargetStart: at(14, 0)}},
		{"zero target start", &Request{AppointmentID: 1, Axis: domain.AxisRoom, TargetResourceID: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_MoveWithinOwnSlot(t *testing.T) {
	uc, b := newFixture(t)
	appt := seedAppointment(t, b, 1, 10, 100, at(10, 0), at(11, 0))

	// Сдвиг на полчаса внутри собственного интервала не конфликтует сам с собой
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID:    appt.ID,
		Axis:             domain.AxisDoctor,
		TargetResourceID: 10,
		TargetStart:      at(10, 30),
	})
	require.NoError(t, err)
	assert.Equal(t, at(10, 30), resp.Start)
	assert.Equal(t, at(11, 30), resp.End)
}
