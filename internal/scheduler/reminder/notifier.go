package reminder

// LogNotifier пишет напоминания в лог сервиса.
// Канал доставки пациенту (SMS, push) живет за пределами сервиса,
// интеграция подключается заменой Notifier.
type LogNotifier struct {
	log Logger
}

// NewLogNotifier создает нотификатор, пишущий в лог
func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify логирует напоминание о предстоящей встрече
func (n *LogNotifier) Notify(event Event) {
	n.log.Info("Reminder: appointment_id=%d, patient_id=%d, doctor_id=%d, room_id=%d, start=%s",
		event.Appointment.ID,
		event.Appointment.PatientID,
		event.Appointment.DoctorID,
		event.Appointment.RoomID,
		event.Appointment.Start.Format("2006-01-02 15:04"),
	)
}
