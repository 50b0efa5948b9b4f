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

	confirmReservationHandler "github.com/m04kA/FoodMap-ReservationService/internal/api/handlers/confirm_reservation"
	createReservationHandler "github.com/m04kA/FoodMap-ReservationService/internal/api/handlers/create_reservation"
	getReservationHandler "github.com/m04kA/FoodMap-ReservationService/internal/api/handlers/get_reservation"
	listRestaurantReservationsHandler "github.com/m04kA/FoodMap-ReservationService/internal/api/handlers/list_restaurant_reservations"
	markDepositPaidHandler "github.com/m04kA/FoodMap-ReservationService/internal/api/handlers/mark_deposit_paid"
	requestDepositHandler "github.com/m04kA/FoodMap-ReservationService/internal/api/handlers/request_deposit"
	updateReservationStatusHandler "github.com/m04kA/FoodMap-ReservationService/internal/api/handlers/update_reservation_status"
	"github.com/m04kA/FoodMap-ReservationService/internal/api/middleware"
	"github.com/m04kA/FoodMap-ReservationService/internal/config"
	reservationRepo "github.com/m04kA/FoodMap-ReservationService/internal/infra/storage/reservation"
	menuServiceClient "github.com/m04kA/FoodMap-ReservationService/internal/integrations/menuservice"
	"github.com/m04kA/FoodMap-ReservationService/internal/integrations/notifyqueue"
	reservationsService "github.com/m04kA/FoodMap-ReservationService/internal/service/reservations"
	createReservationUC "github.com/m04kA/FoodMap-ReservationService/internal/usecase/create_reservation"
	requestDepositUC "github.com/m04kA/FoodMap-ReservationService/internal/usecase/request_deposit"
	"github.com/m04kA/FoodMap-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/FoodMap-ReservationService/pkg/logger"
	"github.com/m04kA/FoodMap-ReservationService/pkg/metrics"
	"github.com/m04kA/FoodMap-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/FoodMap-ReservationService/pkg/txmanager"
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

	log.Info("Starting FoodMap-ReservationService...")
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

	// Инициализируем клиента MenuService
	menuClient := menuServiceClient.NewClient(
		cfg.MenuService.URL,
		time.Duration(cfg.MenuService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (MenuService=%s timeout=%ds)",
		cfg.MenuService.URL, cfg.MenuService.Timeout)

	// Инициализируем издателя уведомлений (если включен)
	var depositPublisher requestDepositUC.NotificationPublisher
	if cfg.Notifications.Enabled {
		publisher, err := notifyqueue.NewPublisher(cfg.Notifications.URL, cfg.Notifications.Queue, log)
		if err != nil {
			log.Fatal("Failed to connect to notification queue: %v", err)
		}
		defer publisher.Close()
		depositPublisher = publisher
		log.Info("Notification publisher connected (queue=%s)", cfg.Notifications.Queue)
	} else {
		log.Info("Notifications disabled, deposit events will not be published")
	}

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		menuClient,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		menuClient,
		txMgr,
		log,
	)

	requestDepositUseCase := requestDepositUC.NewUseCase(
		reservationRepository,
		menuClient,
		depositPublisher,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	requestDeposit := requestDepositHandler.NewHandler(requestDepositUseCase, log)
	markDepositPaid := markDepositPaidHandler.NewHandler(reservationSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(reservationSvc, log)
	listRestaurantReservations := listRestaurantReservationsHandler.NewHandler(reservationSvc, log)

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

	// API prefix: все маршруты требуют X-User-ID header
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Бронирования (клиент) ---
	// Создание бронирования
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Смена статуса: подтверждение, отказ, отмена
	api.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// --- Депозит (персонал ресторана) ---
	// Запрос депозита
	api.HandleFunc("/reservations/{reservationId}/deposit", requestDeposit.Handle).Methods(http.MethodPost)

	// Фиксация оплаты депозита
	api.HandleFunc("/reservations/{reservationId}/deposit/paid", markDepositPaid.Handle).Methods(http.MethodPatch)

	// Завершение бронирования (итоговый расчёт)
	api.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPatch)

	// --- Дашборд ресторана ---
	// Список бронирований ресторана
	api.HandleFunc("/restaurants/{restaurantId}/reservations", listRestaurantReservations.Handle).Methods(http.MethodGet)

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
