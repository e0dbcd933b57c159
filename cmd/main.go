package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/get_appointment"
	getBoardHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/get_board"
	getDoctorsHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/get_doctors"
	getRoomsHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/get_rooms"
	moveAppointmentHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/move_appointment"
	updateAppointmentHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/update_appointment"
	"github.com/m04kA/SMC-SchedulerService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulerService/internal/config"
	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/appointment"
	directoryClient "github.com/m04kA/SMC-SchedulerService/internal/integrations/directory"
	"github.com/m04kA/SMC-SchedulerService/internal/scheduler/board"
	"github.com/m04kA/SMC-SchedulerService/internal/scheduler/reminder"
	"github.com/m04kA/SMC-SchedulerService/internal/scheduler/timegrid"
	appointmentsService "github.com/m04kA/SMC-SchedulerService/internal/service/appointments"
	createAppointmentUC "github.com/m04kA/SMC-SchedulerService/internal/usecase/create_appointment"
	moveAppointmentUC "github.com/m04kA/SMC-SchedulerService/internal/usecase/move_appointment"
	"github.com/m04kA/SMC-SchedulerService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulerService/pkg/logger"
	"github.com/m04kA/SMC-SchedulerService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulerService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SchedulerService/pkg/txmanager"
)

// journalBufferSize размер буфера событий доски перед записью в журнал
const journalBufferSize = 1024

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SchedulerService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Фоновые компоненты (журнал, напоминания) живут до остановки сервиса
	backgroundCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// Доска расписания: единственный источник истины, живет в памяти.
	// События изменений уходят в журнал PostgreSQL, если он включен.
	var events chan domain.ChangeEvent
	var journalDone <-chan struct{}
	if cfg.Database.Enabled {
		events = make(chan domain.ChangeEvent, journalBufferSize)
	}

	var conflictRecorder board.ConflictRecorder
	if cfg.Metrics.Enabled {
		conflictRecorder = metricsCollector
	}

	schedulerBoard := board.New(log, conflictRecorder, events)

	// Подключаем журнал PostgreSQL и восстанавливаем доску
	if cfg.Database.Enabled {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var (
			repository *appointmentRepo.Repository
			txMgr      appointmentRepo.TransactionManager
		)

		if cfg.Metrics.Enabled {
			wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")

			repository = appointmentRepo.NewRepository(wrappedDB)
			txMgr = txmanager.NewTransactionManager(wrappedDB)
		} else {
			repository = appointmentRepo.NewRepository(db)
			txMgr = simpletxmanager.NewTransactionManager(db)
		}

		// Восстанавливаем состояние доски из журнала
		appointments, err := repository.LoadAll(backgroundCtx)
		if err != nil {
			log.Fatal("Failed to load appointments from journal: %v", err)
		}
		if err := schedulerBoard.Load(appointments); err != nil {
			log.Fatal("Failed to seed board from journal: %v", err)
		}
		log.Info("Board restored from journal: %d appointments", len(appointments))

		// Запускаем журнал изменений
		journal := appointmentRepo.NewJournal(repository, txMgr, events, log)
		journalDone = journal.Done()
		go journal.Run(backgroundCtx)
		log.Info("Board change journal started")
	} else {
		log.Warn("Database disabled, board state is in-memory only and will be lost on restart")
	}

	// Инициализируем клиент справочника клиники
	directory := directoryClient.NewClient(
		cfg.Directory.URL,
		time.Duration(cfg.Directory.Timeout)*time.Second,
		log,
	)
	log.Info("Directory client initialized (url=%s, timeout=%ds)", cfg.Directory.URL, cfg.Directory.Timeout)

	// Сетка доски для раскладки встреч по слотам
	grid, err := timegrid.New(cfg.Board.DayStart, cfg.Board.DayEnd, cfg.Board.SlotMinutes)
	if err != nil {
		log.Fatal("Failed to build time grid: %v", err)
	}

	// Планировщик напоминаний
	var fireRecorder reminder.FireRecorder
	if cfg.Metrics.Enabled {
		fireRecorder = metricsCollector
	}

	reminderScheduler := reminder.New(
		schedulerBoard,
		reminder.NewLogNotifier(log),
		time.Duration(cfg.Board.ReminderLeadMinutes)*time.Minute,
		time.Duration(cfg.Board.ReminderPollSeconds)*time.Second,
		log,
		fireRecorder,
	)
	go reminderScheduler.Run(backgroundCtx)
	log.Info("Reminder scheduler started (lead=%dm, poll=%ds)",
		cfg.Board.ReminderLeadMinutes, cfg.Board.ReminderPollSeconds)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		schedulerBoard,
		grid,
		directory,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		schedulerBoard,
		directory,
		log,
	)
	moveAppointmentUseCase := moveAppointmentUC.NewUseCase(
		schedulerBoard,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	moveAppointment := moveAppointmentHandler.NewHandler(moveAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getBoard := getBoardHandler.NewHandler(appointmentsSvc, log)
	getDoctors := getDoctorsHandler.NewHandler(appointmentsSvc, log)
	getRooms := getRoomsHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Справочник клиники
	api.HandleFunc("/doctors", getDoctors.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms", getRooms.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Встречи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id}", deleteAppointment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/appointments/{id}/move", moveAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)

	// --- Доска расписания ---
	protected.HandleFunc("/board", getBoard.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновые компоненты и ждем, пока журнал дочитает
	// буфер событий - иначе накопленные изменения потеряются
	stopBackground()
	if journalDone != nil {
		<-journalDone
		log.Info("Board change journal drained")
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
