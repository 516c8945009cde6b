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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	acceptJobHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/accept_job"
	assignCalendarsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/assign_calendars"
	assignFormsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/assign_forms"
	cancelJobHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_job"
	checkAvailabilityHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/check_availability"
	createAppointmentTypeHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_appointment_type"
	createCalendarHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_calendar"
	createJobHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_job"
	getAppointmentTypeHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_appointment_type"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getCalendarHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_calendar"
	getJobHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_job"
	listAppointmentTypesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_appointment_types"
	listCalendarsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_calendars"
	listJobsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_jobs"
	toggleAppointmentTypeHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/toggle_appointment_type"
	toggleCalendarHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/toggle_calendar"
	transitionJobHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/transition_job"
	updateAppointmentTypeHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_appointment_type"
	updateCalendarHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_calendar"
	updateJobHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_job"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	appointmentTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment_type"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
	jobRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/job"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	formServiceClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/formservice"
	appointmentTypesService "github.com/m04kA/SMC-SchedulingService/internal/service/appointment_types"
	calendarsService "github.com/m04kA/SMC-SchedulingService/internal/service/calendars"
	jobsService "github.com/m04kA/SMC-SchedulingService/internal/service/jobs"
	acceptJobUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/accept_job"
	createJobUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_job"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/telemetry"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// jobRepository объединяет требования сервиса заказов и use cases
type jobRepository interface {
	jobsService.JobRepository
	createJobUC.JobRepository
	acceptJobUC.JobRepository
}

// txManager реализуется и txmanager.TransactionManager, и memory.Store
type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type repositories struct {
	calendars        calendarsService.CalendarRepository
	appointmentTypes appointmentTypesService.AppointmentTypeRepository
	jobs             jobRepository
	txManager        txManager
	close            func()
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(config.DefaultPath)
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

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded (storage=%s)", cfg.Storage.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем трейсинг
	shutdownTracing, err := telemetry.Setup(context.Background(), telemetry.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.Endpoint)
	}

	// Инициализируем хранилище
	repos, err := openStorage(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer repos.close()

	// Инициализируем интеграционных клиентов
	formClient := formServiceClient.NewClient(
		cfg.FormService.URL,
		time.Duration(cfg.FormService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (FormService=%s timeout=%ds)",
		cfg.FormService.URL, cfg.FormService.Timeout)

	// Инициализируем сервисы
	calendarSvc := calendarsService.NewService(repos.calendars, log)
	appointmentTypeSvc := appointmentTypesService.NewService(repos.appointmentTypes, repos.calendars, log)
	jobSvc := jobsService.NewService(repos.jobs, repos.txManager, log)

	// Инициализируем use cases
	var ucMetrics interface {
		ObserveJobCreated(status string)
		ObserveJobAccept(outcome string)
	}
	if metricsCollector != nil {
		ucMetrics = metricsCollector
	}

	createJobUseCase := createJobUC.NewUseCase(
		repos.calendars,
		repos.appointmentTypes,
		repos.jobs,
		formClient,
		repos.txManager,
		ucMetrics,
		log,
	)

	acceptJobUseCase := acceptJobUC.NewUseCase(
		repos.jobs,
		repos.txManager,
		ucMetrics,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		repos.calendars,
		repos.jobs,
		log,
	)

	// Инициализируем handlers
	createCalendar := createCalendarHandler.NewHandler(calendarSvc, log)
	listCalendars := listCalendarsHandler.NewHandler(calendarSvc, log)
	getCalendar := getCalendarHandler.NewHandler(calendarSvc, log)
	updateCalendar := updateCalendarHandler.NewHandler(calendarSvc, log)
	toggleCalendar := toggleCalendarHandler.NewHandler(calendarSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(calendarSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)

	createAppointmentType := createAppointmentTypeHandler.NewHandler(appointmentTypeSvc, log)
	listAppointmentTypes := listAppointmentTypesHandler.NewHandler(appointmentTypeSvc, log)
	getAppointmentType := getAppointmentTypeHandler.NewHandler(appointmentTypeSvc, log)
	updateAppointmentType := updateAppointmentTypeHandler.NewHandler(appointmentTypeSvc, log)
	toggleAppointmentType := toggleAppointmentTypeHandler.NewHandler(appointmentTypeSvc, log)
	assignCalendars := assignCalendarsHandler.NewHandler(appointmentTypeSvc, log)
	assignForms := assignFormsHandler.NewHandler(appointmentTypeSvc, log)

	createJob := createJobHandler.NewHandler(createJobUseCase, log)
	acceptJob := acceptJobHandler.NewHandler(acceptJobUseCase, log)
	listJobs := listJobsHandler.NewHandler(jobSvc, log)
	getJob := getJobHandler.NewHandler(jobSvc, log)
	updateJob := updateJobHandler.NewHandler(jobSvc, log)
	transitionJob := transitionJobHandler.NewHandler(jobSvc, log)
	cancelJob := cancelJobHandler.NewHandler(jobSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// PROTECTED ROUTES (требуют X-Company-ID и X-User-ID)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Календари ---
	api.HandleFunc("/calendars", createCalendar.Handle).Methods(http.MethodPost)
	api.HandleFunc("/calendars", listCalendars.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendars/{calendarId}", getCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendars/{calendarId}", updateCalendar.Handle).Methods(http.MethodPut)
	api.HandleFunc("/calendars/{calendarId}/toggle", toggleCalendar.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/calendars/{calendarId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendars/{calendarId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Типы услуг ---
	api.HandleFunc("/appointment-types", createAppointmentType.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointment-types", listAppointmentTypes.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointment-types/{typeId}", getAppointmentType.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointment-types/{typeId}", updateAppointmentType.Handle).Methods(http.MethodPut)
	api.HandleFunc("/appointment-types/{typeId}/toggle", toggleAppointmentType.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointment-types/{typeId}/calendars", assignCalendars.Handle).Methods(http.MethodPut)
	api.HandleFunc("/appointment-types/{typeId}/forms", assignForms.Handle).Methods(http.MethodPut)

	// --- Заказы ---
	api.HandleFunc("/jobs", createJob.Handle).Methods(http.MethodPost)
	api.HandleFunc("/jobs", listJobs.Handle).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{jobId}", getJob.Handle).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{jobId}", updateJob.Handle).Methods(http.MethodPut)
	api.HandleFunc("/jobs/{jobId}/accept", acceptJob.Handle).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{jobId}/status", transitionJob.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/jobs/{jobId}/cancel", cancelJob.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.Tracing.ServiceName),
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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// openStorage создает репозитории выбранного драйвера.
// Для postgres запросы идут через обёртку с метриками, если они включены.
func openStorage(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*repositories, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		store := memory.NewStore()
		log.Info("Using in-memory storage, data is lost on restart")
		return &repositories{
			calendars:        memory.NewCalendarRepository(store),
			appointmentTypes: memory.NewAppointmentTypeRepository(store),
			jobs:             memory.NewJobRepository(store),
			txManager:        store,
			close:            func() {},
		}, nil
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var (
		executor dbmetrics.DBExecutor
		beginner dbmetrics.TxBeginner
	)
	if m != nil {
		wrapped := dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopCh)
		executor, beginner = wrapped, wrapped
		log.Info("Database metrics collection started")
	} else {
		wrapped := dbmetrics.NewSqlDBWrapper(db)
		executor, beginner = wrapped, wrapped
	}

	return &repositories{
		calendars:        calendarRepo.NewRepository(executor),
		appointmentTypes: appointmentTypeRepo.NewRepository(executor),
		jobs:             jobRepo.NewRepository(executor),
		txManager:        txmanager.NewTransactionManager(beginner),
		close:            func() { _ = db.Close() },
	}, nil
}
