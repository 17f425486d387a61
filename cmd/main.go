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

	callCustomerHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/call_customer"
	completeEntryHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/complete_entry"
	getBarberQueueHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/get_barber_queue"
	getBarberStatusHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/get_barber_status"
	getEntryStatusHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/get_entry_status"
	getQueueHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/get_queue"
	getQueueStatsHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/get_queue_stats"
	getWaitTimesHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/get_wait_times"
	joinQueueHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/join_queue"
	lookupByPhoneHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/lookup_by_phone"
	notifyCustomerHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/notify_customer"
	removeEntryHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/remove_entry"
	startServiceHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/start_service"
	"github.com/m04kA/SMC-QueueService/internal/api/middleware"
	"github.com/m04kA/SMC-QueueService/internal/config"
	barberRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/barber"
	orderRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/order"
	queueRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/queue"
	notificationsService "github.com/m04kA/SMC-QueueService/internal/service/notifications"
	queueService "github.com/m04kA/SMC-QueueService/internal/service/queue"
	waittimeService "github.com/m04kA/SMC-QueueService/internal/service/waittime"
	getWaitTimesUC "github.com/m04kA/SMC-QueueService/internal/usecase/get_wait_times"
	joinQueueUC "github.com/m04kA/SMC-QueueService/internal/usecase/join_queue"
	"github.com/m04kA/SMC-QueueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-QueueService/pkg/logger"
	"github.com/m04kA/SMC-QueueService/pkg/metrics"
	"github.com/m04kA/SMC-QueueService/pkg/rabbitmq"
	"github.com/m04kA/SMC-QueueService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-QueueService/pkg/txmanager"
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

	log.Info("Starting SMC-QueueService...")
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

	// Подключаемся к брокеру уведомлений (если включен)
	var publisher *rabbitmq.Publisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		log.Info("Notification publisher connected (exchange=%s)", cfg.RabbitMQ.Exchange)
	} else {
		log.Info("Notification publisher disabled, notifications are prepared only")
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		queueRepository  *queueRepo.Repository
		barberRepository *barberRepo.Repository
		orderRepository  *orderRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		queueRepository = queueRepo.NewRepository(wrappedDB)
		barberRepository = barberRepo.NewRepository(wrappedDB)
		orderRepository = orderRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		queueRepository = queueRepo.NewRepository(db)
		barberRepository = barberRepo.NewRepository(db)
		orderRepository = orderRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	queueSvc := queueService.NewService(
		queueRepository,
		barberRepository,
		orderRepository,
		txMgr,
		log,
	)
	waittimeSvc := waittimeService.NewService(
		queueRepository,
		barberRepository,
		orderRepository,
		log,
	)

	var notifPublisher notificationsService.Publisher
	if publisher != nil {
		notifPublisher = publisher
	}
	notificationsSvc := notificationsService.NewService(queueRepository, notifPublisher, log)

	// Инициализируем use cases
	joinQueueUseCase := joinQueueUC.NewUseCase(
		queueRepository,
		barberRepository,
		txMgr,
		log,
	)
	getWaitTimesUseCase := getWaitTimesUC.NewUseCase(
		waittimeSvc,
		queueRepository,
		getWaitTimesUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	getQueue := getQueueHandler.NewHandler(queueSvc, log)
	joinQueue := joinQueueHandler.NewHandler(joinQueueUseCase, log)
	callCustomer := callCustomerHandler.NewHandler(queueSvc, log)
	startService := startServiceHandler.NewHandler(queueSvc, log)
	completeEntry := completeEntryHandler.NewHandler(queueSvc, log)
	removeEntry := removeEntryHandler.NewHandler(queueSvc, log)
	getEntryStatus := getEntryStatusHandler.NewHandler(queueSvc, log)
	getQueueStats := getQueueStatsHandler.NewHandler(queueSvc, log)
	getWaitTimes := getWaitTimesHandler.NewHandler(getWaitTimesUseCase, log)
	lookupByPhone := lookupByPhoneHandler.NewHandler(queueSvc, log)
	getBarberQueue := getBarberQueueHandler.NewHandler(queueSvc, log)
	getBarberStatus := getBarberStatusHandler.NewHandler(queueSvc, log)
	notifyCustomer := notifyCustomerHandler.NewHandler(notificationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Очередь ---
	// Текущая очередь и постановка в нее
	api.HandleFunc("/queue", getQueue.Handle).Methods(http.MethodGet)
	api.HandleFunc("/queue", joinQueue.Handle).Methods(http.MethodPost)

	// Статистика и сводка ожидания (регистрируются до маршрутов с {entryId})
	api.HandleFunc("/queue/stats", getQueueStats.Handle).Methods(http.MethodGet)
	api.HandleFunc("/queue/wait-times", getWaitTimes.Handle).Methods(http.MethodGet)

	// Поиск своей записи по номеру телефона
	api.HandleFunc("/queue/lookup/{phone}", lookupByPhone.Handle).Methods(http.MethodGet)

	// Очередь к конкретному мастеру
	api.HandleFunc("/queue/barbers/{barberId}", getBarberQueue.Handle).Methods(http.MethodGet)

	// Жизненный цикл записи очереди
	api.HandleFunc("/queue/{entryId}/call", callCustomer.Handle).Methods(http.MethodPost)
	api.HandleFunc("/queue/{entryId}/start", startService.Handle).Methods(http.MethodPost)
	api.HandleFunc("/queue/{entryId}/complete", completeEntry.Handle).Methods(http.MethodPost)
	api.HandleFunc("/queue/{entryId}/remove", removeEntry.Handle).Methods(http.MethodPost)
	api.HandleFunc("/queue/{entryId}/status", getEntryStatus.Handle).Methods(http.MethodGet)

	// Уведомления клиентам
	api.HandleFunc("/queue/{entryId}/notify-ready", notifyCustomer.HandleReady).Methods(http.MethodPost)
	api.HandleFunc("/queue/{entryId}/notify-soon", notifyCustomer.HandleSoon).Methods(http.MethodPost)

	// Производный статус мастера
	api.HandleFunc("/barbers/{barberId}/status", getBarberStatus.Handle).Methods(http.MethodGet)

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
