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

	cancelBookingHandler "github.com/roccadavide/beauty-room-sub000/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/roccadavide/beauty-room-sub000/internal/api/handlers/create_booking"
	createClosureHandler "github.com/roccadavide/beauty-room-sub000/internal/api/handlers/create_closure"
	deleteClosureHandler "github.com/roccadavide/beauty-room-sub000/internal/api/handlers/delete_closure"
	getAgendaHandler "github.com/roccadavide/beauty-room-sub000/internal/api/handlers/get_agenda"
	getAvailabilityHandler "github.com/roccadavide/beauty-room-sub000/internal/api/handlers/get_availability"
	getBookingHandler "github.com/roccadavide/beauty-room-sub000/internal/api/handlers/get_booking"
	getScheduleHandler "github.com/roccadavide/beauty-room-sub000/internal/api/handlers/get_schedule"
	getUserBookingsHandler "github.com/roccadavide/beauty-room-sub000/internal/api/handlers/get_user_bookings"
	paymentWebhookHandler "github.com/roccadavide/beauty-room-sub000/internal/api/handlers/payment_webhook"
	rescheduleBookingHandler "github.com/roccadavide/beauty-room-sub000/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/roccadavide/beauty-room-sub000/internal/api/handlers/update_booking_status"
	updateScheduleHandler "github.com/roccadavide/beauty-room-sub000/internal/api/handlers/update_schedule"
	"github.com/roccadavide/beauty-room-sub000/internal/api/middleware"
	"github.com/roccadavide/beauty-room-sub000/internal/config"
	bookingRepo "github.com/roccadavide/beauty-room-sub000/internal/infra/storage/booking"
	scheduleRepo "github.com/roccadavide/beauty-room-sub000/internal/infra/storage/schedule"
	catalogServiceClient "github.com/roccadavide/beauty-room-sub000/internal/integrations/catalogservice"
	"github.com/roccadavide/beauty-room-sub000/internal/integrations/notifyqueue"
	bookingsService "github.com/roccadavide/beauty-room-sub000/internal/service/bookings"
	scheduleService "github.com/roccadavide/beauty-room-sub000/internal/service/schedule"
	confirmPaymentUC "github.com/roccadavide/beauty-room-sub000/internal/usecase/confirm_payment"
	createHoldUC "github.com/roccadavide/beauty-room-sub000/internal/usecase/create_hold"
	getAvailabilityUC "github.com/roccadavide/beauty-room-sub000/internal/usecase/get_availability"
	rescheduleBookingUC "github.com/roccadavide/beauty-room-sub000/internal/usecase/reschedule_booking"
	"github.com/roccadavide/beauty-room-sub000/internal/worker/expirer"
	"github.com/roccadavide/beauty-room-sub000/pkg/dbmetrics"
	"github.com/roccadavide/beauty-room-sub000/pkg/logger"
	"github.com/roccadavide/beauty-room-sub000/pkg/metrics"
	"github.com/roccadavide/beauty-room-sub000/pkg/simpletxmanager"
	"github.com/roccadavide/beauty-room-sub000/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting beauty-room booking engine...")

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog client initialized (url=%s, timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Notification sink: RabbitMQ when enabled, a no-op drop otherwise
	var notifier interface {
		Publish(ctx context.Context, event notifyqueue.Event) error
	}
	if cfg.Notifications.Enabled {
		publisher, err := notifyqueue.NewPublisher(cfg.Notifications.AMQPURL, cfg.Notifications.Queue, metricsCollector, log)
		if err != nil {
			log.Fatal("Failed to connect to notification broker: %v", err)
		}
		defer publisher.Close()
		notifier = publisher
		log.Info("Notification publisher connected (queue=%s)", cfg.Notifications.Queue)
	} else {
		notifier = notifyqueue.Noop{}
		log.Info("Notifications disabled, events will be dropped")
	}

	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		cfg.Booking.CancellationLeadTimeHours,
		log,
	)
	scheduleSvc := scheduleService.NewService(scheduleRepository, log)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		log,
	)
	createHoldUseCase := createHoldUC.NewUseCase(
		bookingRepository,
		catalogClient,
		txMgr,
		cfg.Booking.HoldMinutes,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		notifier,
		txMgr,
		log,
	)
	rescheduleUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		catalogClient,
		txMgr,
		log,
	)

	// Background sweeper: hold expiry + reminders
	sweeper := expirer.New(
		bookingRepository,
		notifier,
		txMgr,
		cfg.Booking.SweepIntervalSeconds,
		cfg.Booking.ReminderLeadTimeHours,
		metricsCollector,
		log,
	)
	sweeper.Start()
	defer sweeper.Stop()

	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createHoldUseCase, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(confirmPaymentUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getAgenda := getAgendaHandler.NewHandler(bookingSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	createClosure := createClosureHandler.NewHandler(scheduleSvc, log)
	deleteClosure := deleteClosureHandler.NewHandler(scheduleSvc, log)

	r := mux.NewRouter()
	r.Use(middleware.Identify)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/code/{code}", getBooking.HandleByCode).Methods(http.MethodGet)
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// Routes for identified users
	protected := api.PathPrefix("").Subrouter()
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", middleware.RequireUser(getBooking.Handle)).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", middleware.RequireUser(cancelBooking.Handle)).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/reschedule", middleware.RequireUser(rescheduleBooking.Handle)).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId:[0-9]+}/bookings", middleware.RequireUser(getUserBookings.Handle)).Methods(http.MethodGet)

	// Admin routes
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/status", middleware.RequireAdmin(updateBookingStatus.Handle)).Methods(http.MethodPatch)
	protected.HandleFunc("/agenda", middleware.RequireAdmin(getAgenda.Handle)).Methods(http.MethodGet)
	protected.HandleFunc("/schedule/{dayOfWeek:[0-6]}", middleware.RequireAdmin(updateSchedule.Handle)).Methods(http.MethodPut)
	protected.HandleFunc("/closures", middleware.RequireAdmin(createClosure.Handle)).Methods(http.MethodPost)
	protected.HandleFunc("/closures/{closureId:[0-9]+}", middleware.RequireAdmin(deleteClosure.Handle)).Methods(http.MethodDelete)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
