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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/create_booking"
	createWaitlistEntryHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/create_waitlist_entry"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/get_booking"
	getShopSettingsHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/get_shop_settings"
	getWaitlistEntryHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/get_waitlist_entry"
	previewRecurringSeriesHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/preview_recurring_series"
	rescheduleBookingHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/update_booking_status"
	updateShopSettingsHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/update_shop_settings"
	"github.com/m04kA/SMC-ShopBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ShopBooking/internal/config"
	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	slotsCache "github.com/m04kA/SMC-ShopBooking/internal/infra/cache/slots"
	"github.com/m04kA/SMC-ShopBooking/internal/infra/events"
	availabilityRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ShopBooking/internal/infra/storage/pgerr"
	settingsRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/settings"
	staffRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/staff"
	waitlistRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-ShopBooking/internal/integrations/payments"
	"github.com/m04kA/SMC-ShopBooking/internal/lifecycle"
	"github.com/m04kA/SMC-ShopBooking/internal/recurring"
	bookingsService "github.com/m04kA/SMC-ShopBooking/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-ShopBooking/internal/service/settings"
	waitlistService "github.com/m04kA/SMC-ShopBooking/internal/service/waitlist"
	cancelBookingUC "github.com/m04kA/SMC-ShopBooking/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-ShopBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ShopBooking/internal/usecase/get_available_slots"
	previewRecurringSeriesUC "github.com/m04kA/SMC-ShopBooking/internal/usecase/preview_recurring_series"
	rescheduleBookingUC "github.com/m04kA/SMC-ShopBooking/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-ShopBooking/internal/usecase/snapshot"
	"github.com/m04kA/SMC-ShopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShopBooking/pkg/ids"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
	"github.com/m04kA/SMC-ShopBooking/pkg/metrics"
	"github.com/m04kA/SMC-ShopBooking/pkg/refcode"
	"github.com/m04kA/SMC-ShopBooking/pkg/txmanager"
)

// slotCache остается nil-интерфейсом, если Redis выключен
type slotCache interface {
	Versioned(ctx context.Context, key slotsCache.Key) (slotsCache.VersionedKey, error)
	Get(ctx context.Context, key slotsCache.VersionedKey) ([]domain.Slot, bool, error)
	Set(ctx context.Context, key slotsCache.VersionedKey, slots []domain.Slot) error
	Invalidate(ctx context.Context, shopID string) error
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("SHOP_BOOKING_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-ShopBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены). Методы *metrics.Metrics безопасны для nil.
	var metricsCollector *metrics.Metrics
	var dbCollector dbmetrics.Collector
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbCollector = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, dbCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB,
		txmanager.WithConflictRetry(cfg.Database.TxRetries, pgerr.IsSerializationFailure))

	// Кеш слотов в Redis (опционально)
	var cache slotCache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn("Redis %s unavailable, slot cache disabled: %v", cfg.Redis.Address, err)
		} else {
			cache = slotsCache.NewCache(rdb, cfg.Booking.SlotCacheTTL())
			log.Info("Slot cache enabled (redis=%s, ttl=%s)", cfg.Redis.Address, cfg.Booking.SlotCacheTTL())
		}
	}

	// События жизненного цикла в Kafka (без брокеров - no-op)
	publisher := events.NewPublisher(cfg.Kafka.BrokerList(), cfg.Kafka.Topic)
	defer publisher.Close()
	log.Info("Booking events: enabled=%t, topic=%s", publisher.Enabled(), cfg.Kafka.Topic)

	// Депозиты через Stripe (без ключа - выключены)
	paymentsClient := payments.NewClient(cfg.Payments.StripeSecretKey, cfg.Payments.Currency, log)
	log.Info("Deposits: enabled=%t, currency=%s", paymentsClient.Enabled(), cfg.Payments.Currency)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	staffRepository := staffRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	waitlistRepository := waitlistRepo.NewRepository(wrappedDB)

	// Сервисы
	settingsSvc := settingsService.NewService(settingsRepository, cache, settingsService.Defaults{
		BufferMinutes: cfg.Booking.DefaultBufferMinutes,
		HorizonWeeks:  cfg.Booking.DefaultHorizonWeeks,
	}, log)
	bookingSvc := bookingsService.NewService(bookingRepository, availabilityRepository, cache, publisher, txMgr, log)
	waitlistSvc := waitlistService.NewService(waitlistRepository, catalogRepository, ids.UUID{}, refcode.NewGenerator(),
		cfg.Booking.RefCodeAttempts, log)

	// Ядро: загрузка снимка, планировщик серий, координатор и исполнитель записей
	loader := snapshot.NewLoader(settingsSvc, catalogRepository, staffRepository, availabilityRepository, bookingRepository)
	planner := recurring.NewPlanner(cfg.Booking.RecurringHorizonMonths)
	codes := refcode.NewGenerator()
	coordinator := lifecycle.NewCoordinator(ids.UUID{}, codes, planner, time.Now)
	applier := lifecycle.NewApplier(bookingRepository, availabilityRepository, codes, cfg.Booking.RefCodeAttempts)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(loader, cache, metricsCollector, log)
	previewRecurringSeriesUseCase := previewRecurringSeriesUC.NewUseCase(loader, planner, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		loader,
		coordinator,
		applier,
		paymentsClient,
		cache,
		publisher,
		metricsCollector,
		txMgr,
		cfg.Booking.RefCodeAttempts,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		loader,
		coordinator,
		applier,
		cache,
		publisher,
		metricsCollector,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		coordinator,
		applier,
		cache,
		publisher,
		metricsCollector,
		txMgr,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	previewRecurringSeries := previewRecurringSeriesHandler.NewHandler(previewRecurringSeriesUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getShopSettings := getShopSettingsHandler.NewHandler(settingsSvc, log)
	updateShopSettings := updateShopSettingsHandler.NewHandler(settingsSvc, log)
	createWaitlistEntry := createWaitlistEntryHandler.NewHandler(waitlistSvc, log)
	getWaitlistEntry := getWaitlistEntryHandler.NewHandler(waitlistSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1/shops/{shopId}").Subrouter()
	api.Use(middleware.Logging(log))

	// --- Слоты ---
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/recurring-preview", previewRecurringSeries.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/ref/{refCode}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Настройки магазина ---
	api.HandleFunc("/settings", getShopSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/settings", updateShopSettings.Handle).Methods(http.MethodPut)

	// --- Лист ожидания ---
	api.HandleFunc("/waitlist", createWaitlistEntry.Handle).Methods(http.MethodPost)
	api.HandleFunc("/waitlist/ref/{refCode}", getWaitlistEntry.Handle).Methods(http.MethodGet)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	close(stopMetricsCh)

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
