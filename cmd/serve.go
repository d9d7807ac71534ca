package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	cancelInterviewHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/cancel_interview"
	createInterviewHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/create_interview"
	exportCalendarHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/export_calendar_ical"
	getCalendarHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/get_calendar"
	getInterviewHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/get_interview"
	healthHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/health"
	listCalendarsHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/list_calendars"
	listInterviewsHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/list_interviews"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-InterviewScheduler/internal/availability"
	calendarRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/calendar"
	conflictRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/conflict"
	interviewRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/interview"
	"github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/migrations"
	slotRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/slot"
	interviewsService "github.com/m04kA/SMC-InterviewScheduler/internal/service/interviews"
	createInterviewUC "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/create_interview"
	listSlotsUC "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/list_available_slots"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/txmanager"
)

func newServeCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath, migrateUp)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply database migrations before start")
	return cmd
}

// newValidator валидатор доступности с политикой мест из конфига
func newValidator(a *app, interviews availability.InterviewCounter, conflicts availability.ConflictLister) *availability.Validator {
	policy := availability.CapacityInclusive
	if a.cfg.Scheduling.StrictCapacity {
		policy = availability.CapacityStrict
	}

	opts := []availability.Option{availability.WithCapacityPolicy(policy)}
	if a.metrics != nil {
		opts = append(opts, availability.WithVerdictRecorder(a.metrics))
	}
	return availability.NewValidator(interviews, conflicts, a.log, opts...)
}

func runServe(ctx context.Context, configPath string, migrateUp bool) error {
	a, err := bootstrap(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.close()

	cfg := a.cfg
	a.log.Info("Starting SMC-InterviewScheduler...")

	if migrateUp {
		applied, err := migrations.Up(ctx, a.db, a.log)
		if err != nil {
			return err
		}
		a.log.Info("Migrations applied on startup: %d", applied)
	}

	// Инициализируем репозитории
	calendarRepository := calendarRepo.NewRepository(a.db)
	slotRepository := slotRepo.NewRepository(a.db)
	conflictRepository := conflictRepo.NewRepository(a.db)
	interviewRepository := interviewRepo.NewRepository(a.db)

	txMgr := txmanager.NewTransactionManager(a.db,
		txmanager.WithMaxRetries(cfg.Scheduling.TxRetries),
		txmanager.WithLogger(a.log),
	)

	validator := newValidator(a, interviewRepository, conflictRepository)
	a.log.Info("Availability validator initialized (strict_capacity=%t)", cfg.Scheduling.StrictCapacity)

	// Инициализируем сервисы и use cases
	interviewsSvc := interviewsService.NewService(interviewRepository, txMgr, a.log)

	listSlotsUseCase := listSlotsUC.NewUseCase(
		calendarRepository,
		slotRepository,
		validator,
		cfg.Scheduling.MaxRangeDays,
		a.log,
	)

	createInterviewUseCase := createInterviewUC.NewUseCase(
		slotRepository,
		interviewRepository,
		validator,
		txMgr,
		a.log,
	)
	if a.metrics != nil {
		createInterviewUseCase.WithRecorder(a.metrics)
	}

	// Инициализируем handlers
	listCalendars := listCalendarsHandler.NewHandler(listSlotsUseCase, a.log)
	getCalendar := getCalendarHandler.NewHandler(listSlotsUseCase, a.log)
	exportCalendar := exportCalendarHandler.NewHandler(listSlotsUseCase, a.log)
	createInterview := createInterviewHandler.NewHandler(createInterviewUseCase, a.log)
	getInterview := getInterviewHandler.NewHandler(interviewsSvc, a.log)
	listInterviews := listInterviewsHandler.NewHandler(interviewsSvc, a.log)
	cancelInterview := cancelInterviewHandler.NewHandler(interviewsSvc, a.log)
	health := healthHandler.NewHandler(a.db, a.log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(a.log))

	if a.metrics != nil {
		r.Use(middleware.MetricsMiddleware(a.metrics, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, a.metrics.Handler()).Methods(http.MethodGet)
		a.log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Ready).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Календари и доступные слоты ---
	api.HandleFunc("/calendars", listCalendars.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendars/{calendarId}", getCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendars/{calendarId}/slots.ics", exportCalendar.Handle).Methods(http.MethodGet)

	// --- Интервью ---
	var createHandler http.Handler = http.HandlerFunc(createInterview.Handle)
	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			a.log.Warn("Redis is not reachable at %s: %v (fail_open=%t)", cfg.RateLimit.RedisAddr, err, cfg.RateLimit.FailOpen)
		}

		limiter := middleware.NewRateLimiter(
			middleware.NewRedisCounter(rdb),
			cfg.RateLimit.Limit,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			cfg.RateLimit.FailOpen,
			a.log,
		).WithTrustForwardedFor(cfg.RateLimit.TrustForwardedFor)
		if a.metrics != nil {
			limiter.WithRecorder(a.metrics)
		}
		createHandler = limiter.Middleware(createHandler)
		a.log.Info("Rate limit enabled for POST /interviews: %d per %ds", cfg.RateLimit.Limit, cfg.RateLimit.WindowSeconds)
	}

	api.Handle("/interviews", createHandler).Methods(http.MethodPost)
	api.HandleFunc("/interviews", listInterviews.Handle).Methods(http.MethodGet)
	api.HandleFunc("/interviews/{interviewId}", getInterview.Handle).Methods(http.MethodGet)
	api.HandleFunc("/interviews/{interviewId}/cancel", cancelInterview.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидаем сигнал завершения
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
	}

	a.log.Info("Server stopped gracefully")
	return nil
}
