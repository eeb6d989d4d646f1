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

	blockRoomDatesHandler "github.com/m04kA/TP-StayService/internal/api/handlers/block_room_dates"
	cancelBookingHandler "github.com/m04kA/TP-StayService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/TP-StayService/internal/api/handlers/create_booking"
	createRoomHandler "github.com/m04kA/TP-StayService/internal/api/handlers/create_room"
	deleteRoomHandler "github.com/m04kA/TP-StayService/internal/api/handlers/delete_room"
	getAvailableRoomsHandler "github.com/m04kA/TP-StayService/internal/api/handlers/get_available_rooms"
	getBookingHandler "github.com/m04kA/TP-StayService/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/m04kA/TP-StayService/internal/api/handlers/get_business_bookings"
	getRoomPricingHandler "github.com/m04kA/TP-StayService/internal/api/handlers/get_room_pricing"
	getUserBookingsHandler "github.com/m04kA/TP-StayService/internal/api/handlers/get_user_bookings"
	listRoomsHandler "github.com/m04kA/TP-StayService/internal/api/handlers/list_rooms"
	quoteStayHandler "github.com/m04kA/TP-StayService/internal/api/handlers/quote_stay"
	unblockRoomDatesHandler "github.com/m04kA/TP-StayService/internal/api/handlers/unblock_room_dates"
	updateBookingStatusHandler "github.com/m04kA/TP-StayService/internal/api/handlers/update_booking_status"
	updateRoomHandler "github.com/m04kA/TP-StayService/internal/api/handlers/update_room"
	updateRoomPricingHandler "github.com/m04kA/TP-StayService/internal/api/handlers/update_room_pricing"
	"github.com/m04kA/TP-StayService/internal/api/middleware"
	"github.com/m04kA/TP-StayService/internal/config"
	"github.com/m04kA/TP-StayService/internal/infra/cache"
	blockedRepo "github.com/m04kA/TP-StayService/internal/infra/storage/blocked"
	bookingRepo "github.com/m04kA/TP-StayService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/TP-StayService/internal/infra/storage/room"
	rulesetRepo "github.com/m04kA/TP-StayService/internal/infra/storage/ruleset"
	businessServiceClient "github.com/m04kA/TP-StayService/internal/integrations/businessservice"
	userServiceClient "github.com/m04kA/TP-StayService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/TP-StayService/internal/service/bookings"
	pricingService "github.com/m04kA/TP-StayService/internal/service/pricing"
	roomsService "github.com/m04kA/TP-StayService/internal/service/rooms"
	createBookingUC "github.com/m04kA/TP-StayService/internal/usecase/create_booking"
	getAvailableRoomsUC "github.com/m04kA/TP-StayService/internal/usecase/get_available_rooms"
	quoteStayUC "github.com/m04kA/TP-StayService/internal/usecase/quote_stay"
	"github.com/m04kA/TP-StayService/pkg/dbmetrics"
	"github.com/m04kA/TP-StayService/pkg/logger"
	"github.com/m04kA/TP-StayService/pkg/metrics"
	"github.com/m04kA/TP-StayService/pkg/simpletxmanager"
	"github.com/m04kA/TP-StayService/pkg/txmanager"
)

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

	log.Info("Starting TP-StayService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Подключаемся к Redis для кеша доступности
	// Недоступность Redis не фатальна: кеш деградирует до прямых запросов в БД
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, availability cache degraded: %v", err)
	} else {
		log.Info("Successfully connected to Redis (addr=%s)", cfg.Redis.Addr)
	}
	pingCancel()

	availabilityCache := cache.NewAvailabilityCache(
		redisClient,
		time.Duration(cfg.Redis.AvailabilityTTLSecond)*time.Second,
	)

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	businessClient := businessServiceClient.NewClient(
		cfg.BusinessService.URL,
		time.Duration(cfg.BusinessService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (BusinessService=%s timeout=%ds, UserService=%s timeout=%ds)",
		cfg.BusinessService.URL, cfg.BusinessService.Timeout, cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		roomRepository    *roomRepo.Repository
		rulesetRepository *rulesetRepo.Repository
		blockedRepository *blockedRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		roomRepository = roomRepo.NewRepository(wrappedDB)
		rulesetRepository = rulesetRepo.NewRepository(wrappedDB)
		blockedRepository = blockedRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		roomRepository = roomRepo.NewRepository(db)
		rulesetRepository = rulesetRepo.NewRepository(db)
		blockedRepository = blockedRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		businessClient,
		availabilityCache,
		log,
	)
	pricingSvc := pricingService.NewService(
		rulesetRepository,
		roomRepository,
		businessClient,
		txMgr,
		availabilityCache,
		log,
	)
	roomsSvc := roomsService.NewService(
		roomRepository,
		blockedRepository,
		bookingRepository,
		businessClient,
		availabilityCache,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		rulesetRepository,
		blockedRepository,
		businessClient,
		userClient,
		txMgr,
		availabilityCache,
		log,
	)

	getAvailableRoomsUseCase := getAvailableRoomsUC.NewUseCase(
		roomRepository,
		rulesetRepository,
		bookingRepository,
		blockedRepository,
		businessClient,
		availabilityCache,
		log,
	)

	quoteStayUseCase := quoteStayUC.NewUseCase(
		roomRepository,
		rulesetRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableRooms := getAvailableRoomsHandler.NewHandler(getAvailableRoomsUseCase, log)
	quoteStay := quoteStayHandler.NewHandler(quoteStayUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getRoomPricing := getRoomPricingHandler.NewHandler(pricingSvc, log)
	updateRoomPricing := updateRoomPricingHandler.NewHandler(pricingSvc, log)
	createRoom := createRoomHandler.NewHandler(roomsSvc, log)
	updateRoom := updateRoomHandler.NewHandler(roomsSvc, log)
	deleteRoom := deleteRoomHandler.NewHandler(roomsSvc, log)
	listRooms := listRoomsHandler.NewHandler(roomsSvc, log)
	blockRoomDates := blockRoomDatesHandler.NewHandler(roomsSvc, log)
	unblockRoomDates := unblockRoomDatesHandler.NewHandler(roomsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Подбор доступных комнат бизнеса на интервал дат
	api.HandleFunc("/businesses/{businessId}/available-rooms",
		getAvailableRooms.Handle).Methods(http.MethodGet)

	// Расчёт стоимости проживания без создания бронирования
	api.HandleFunc("/rooms/{roomId}/quote", quoteStay.Handle).Methods(http.MethodGet)

	// Получение тарификации комнаты
	api.HandleFunc("/rooms/{roomId}/pricing", getRoomPricing.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования (для менеджеров)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление бизнесом (для менеджеров) ---
	// Список бронирований бизнеса
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)

	// Управление комнатами
	protected.HandleFunc("/businesses/{businessId}/rooms", createRoom.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/rooms", listRooms.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rooms/{roomId}", updateRoom.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/rooms/{roomId}", deleteRoom.Handle).Methods(http.MethodDelete)

	// Обновление тарификации комнаты
	protected.HandleFunc("/rooms/{roomId}/pricing", updateRoomPricing.Handle).Methods(http.MethodPut)

	// Блокировки дат комнаты
	protected.HandleFunc("/rooms/{roomId}/blocks", blockRoomDates.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/rooms/{roomId}/blocks/{blockId}", unblockRoomDates.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор метрик connection pool
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
