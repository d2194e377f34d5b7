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

	cancelBookingHandler "github.com/m04kA/SMC-GameBookingService/internal/api/handlers/cancel_booking"
	cancelSlotsHandler "github.com/m04kA/SMC-GameBookingService/internal/api/handlers/cancel_slots"
	checkInHandler "github.com/m04kA/SMC-GameBookingService/internal/api/handlers/check_in"
	createBookingHandler "github.com/m04kA/SMC-GameBookingService/internal/api/handlers/create_booking"
	createGameHandler "github.com/m04kA/SMC-GameBookingService/internal/api/handlers/create_game"
	generateSlotsHandler "github.com/m04kA/SMC-GameBookingService/internal/api/handlers/generate_slots"
	getAvailableSlotsHandler "github.com/m04kA/SMC-GameBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-GameBookingService/internal/api/handlers/get_booking"
	getGameSlotsHandler "github.com/m04kA/SMC-GameBookingService/internal/api/handlers/get_game_slots"
	getSlotHandler "github.com/m04kA/SMC-GameBookingService/internal/api/handlers/get_slot"
	getUserBookingsHandler "github.com/m04kA/SMC-GameBookingService/internal/api/handlers/get_user_bookings"
	listGamesHandler "github.com/m04kA/SMC-GameBookingService/internal/api/handlers/list_games"
	updateGameStatusHandler "github.com/m04kA/SMC-GameBookingService/internal/api/handlers/update_game_status"
	"github.com/m04kA/SMC-GameBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GameBookingService/internal/config"
	"github.com/m04kA/SMC-GameBookingService/internal/infra/migrations"
	bookingRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/booking"
	gameRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/game"
	slotRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-GameBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-GameBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-GameBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-GameBookingService/internal/service/cascade"
	gamesService "github.com/m04kA/SMC-GameBookingService/internal/service/games"
	"github.com/m04kA/SMC-GameBookingService/internal/service/notifications"
	cancelBookingUC "github.com/m04kA/SMC-GameBookingService/internal/usecase/cancel_booking"
	cancelSlotsUC "github.com/m04kA/SMC-GameBookingService/internal/usecase/cancel_slots"
	checkInUC "github.com/m04kA/SMC-GameBookingService/internal/usecase/check_in"
	createBookingUC "github.com/m04kA/SMC-GameBookingService/internal/usecase/create_booking"
	generateSlotsUC "github.com/m04kA/SMC-GameBookingService/internal/usecase/generate_slots"
	getAvailableSlotsUC "github.com/m04kA/SMC-GameBookingService/internal/usecase/get_available_slots"
	reclaimBookingsUC "github.com/m04kA/SMC-GameBookingService/internal/usecase/reclaim_bookings"
	updateGameStatusUC "github.com/m04kA/SMC-GameBookingService/internal/usecase/update_game_status"
	"github.com/m04kA/SMC-GameBookingService/internal/worker/reclaimer"
	"github.com/m04kA/SMC-GameBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GameBookingService/pkg/logger"
	"github.com/m04kA/SMC-GameBookingService/pkg/metrics"
	"github.com/m04kA/SMC-GameBookingService/pkg/txmanager"
)

// database то, что нужно репозиториям и менеджеру транзакций
// Реализуется *dbmetrics.DB (с метриками) и *dbmetrics.SqlDBWrapper
type database interface {
	dbmetrics.DBExecutor
	dbmetrics.TxBeginner
}

// notificationSender отправитель уведомлений, закрывается при остановке
type notificationSender interface {
	notifications.Sender
	Close() error
}

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

	log.Info("Starting SMC-GameBookingService...")

	policy, err := cfg.Booking.Policy()
	if err != nil {
		log.Fatal("Invalid booking policy: %v", err)
	}
	log.Info("Booking policy: open=%s close=%s slot=%s quota=%d timezone=%s",
		cfg.Booking.OpenTime, cfg.Booking.CloseTime, policy.SlotDuration, policy.DailyQuotaPerType, cfg.Booking.Timezone)

	// Метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
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
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	var conn database
	if cfg.Metrics.Enabled {
		conn = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		conn = dbmetrics.Wrap(db)
	}
	txMgr := txmanager.NewTransactionManager(conn)

	// Репозитории
	games := gameRepo.NewRepository(conn)
	slots := slotRepo.NewRepository(conn)
	bookings := bookingRepo.NewRepository(conn)
	users := userRepo.NewRepository(conn)

	// Уведомления: RabbitMQ или лог
	var sender notificationSender
	if cfg.Notifications.Enabled {
		publisher, err := notifier.Dial(
			cfg.Notifications.AMQPURL,
			cfg.Notifications.Exchange,
			time.Duration(cfg.Notifications.PublishTimeout)*time.Second,
			log,
		)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		sender = publisher
		log.Info("Notifications are published to exchange=%s", cfg.Notifications.Exchange)
	} else {
		sender = notifier.NewLogSender(log)
		log.Info("Notifications are disabled, messages are written to log")
	}
	defer sender.Close()

	// Сервисы
	ledger := availability.NewLedger(slots, log)
	coordinator := cascade.NewCoordinator(ledger, bookings, log)
	notificationSvc := notifications.NewService(users, sender, log)
	gameSvc := gamesService.NewService(games, slots, policy, log)
	bookingSvc := bookingsService.NewService(bookings, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(bookings, games, users, ledger, txMgr, policy, log)
	checkInUseCase := checkInUC.NewUseCase(bookings, ledger, txMgr, policy, log)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(bookings, ledger, notificationSvc, txMgr, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(games, slots, policy, log)
	generateSlotsUseCase := generateSlotsUC.NewUseCase(games, slots, txMgr, policy, log)
	updateGameStatusUseCase := updateGameStatusUC.NewUseCase(games, slots, coordinator, notificationSvc, txMgr, log)
	cancelSlotsUseCase := cancelSlotsUC.NewUseCase(games, slots, coordinator, notificationSvc, txMgr, policy, log)
	reclaimUseCase := reclaimBookingsUC.NewUseCase(bookings, notificationSvc, policy, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	checkIn := checkInHandler.NewHandler(checkInUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	listGames := listGamesHandler.NewHandler(gameSvc, log)
	getGameSlots := getGameSlotsHandler.NewHandler(gameSvc, log)
	getSlot := getSlotHandler.NewHandler(ledger, log)
	createGame := createGameHandler.NewHandler(gameSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	updateGameStatus := updateGameStatusHandler.NewHandler(updateGameStatusUseCase, log)
	cancelSlots := cancelSlotsHandler.NewHandler(cancelSlotsUseCase, log)

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/games", listGames.Handle).Methods(http.MethodGet)
	api.HandleFunc("/games/{gameId}/slots", getGameSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/available", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/{slotId:[0-9]+}", getSlot.Handle).Methods(http.MethodGet)

	// ============================================================
	// USER ROUTES (Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Middleware)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/check-in", checkIn.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (Bearer JWT с ролью admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(auth.Middleware, middleware.RequireAdmin)

	admin.HandleFunc("/games", createGame.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/games/{gameId}/status", updateGameStatus.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/games/{gameId}/slots/cancel", cancelSlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/generate", generateSlots.Handle).Methods(http.MethodPost)

	// Фоновое освобождение неподтверждённых бронирований
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	if cfg.Reclaimer.Enabled {
		worker := reclaimer.New(reclaimUseCase, cfg.Reclaimer.Interval(), metricsCollector, log)
		go func() {
			defer close(workerDone)
			worker.Start(workerCtx)
		}()
	} else {
		close(workerDone)
		log.Warn("Reclaimer is disabled, unconfirmed bookings will not be released")
	}

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

	// Воркер останавливается после сервера
	stopWorker()
	<-workerDone

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
