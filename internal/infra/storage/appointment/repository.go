package appointment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulerService/pkg/psqlbuilder"
)

// Repository репозиторий-журнал записей на приём.
// Доска в памяти является источником истины, репозиторий хранит
// её копию в PostgreSQL: полная загрузка при старте и асинхронная
// запись изменений через journal worker.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LoadAll загружает все записи из журнала для восстановления доски при старте
func (r *Repository) LoadAll(ctx context.Context) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"patient_id",
		"doctor_id",
		"room_id",
		"start_at",
		"end_at",
		"appointment_type",
		"status",
		"notes",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("appointments").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: LoadAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: LoadAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// Upsert сохраняет текущее состояние записи в журнале.
// Доска присваивает идентификаторы сама, поэтому id вставляется явно,
// а повторная запись того же id перезаписывает строку целиком.
func (r *Repository) Upsert(ctx context.Context, appt *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"patient_id",
			"doctor_id",
			"room_id",
			"start_at",
			"end_at",
			"appointment_type",
			"status",
			"notes",
			"cancellation_reason",
			"cancelled_at",
			"created_at",
			"updated_at",
		).
		Values(
			appt.ID,
			appt.PatientID,
			appt.DoctorID,
			appt.RoomID,
			appt.Start,
			appt.End,
			appt.Type,
			appt.Status,
			appt.Notes,
			appt.CancellationReason,
			appt.CancelledAt,
			appt.CreatedAt,
			appt.UpdatedAt,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			patient_id = EXCLUDED.patient_id,
			doctor_id = EXCLUDED.doctor_id,
			room_id = EXCLUDED.room_id,
			start_at = EXCLUDED.start_at,
			end_at = EXCLUDED.end_at,
			appointment_type = EXCLUDED.appointment_type,
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			cancellation_reason = EXCLUDED.cancellation_reason,
			cancelled_at = EXCLUDED.cancelled_at,
			updated_at = EXCLUDED.updated_at`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет запись из журнала
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.PatientID,
			&appt.DoctorID,
			&appt.RoomID,
			&appt.Start,
			&appt.End,
			&appt.Type,
			&appt.Status,
			&appt.Notes,
			&appt.CancellationReason,
			&appt.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
