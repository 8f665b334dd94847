package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"

	"github.com/vacation-shop/go-backend/internal/auth"
	config "github.com/vacation-shop/go-backend/internal/cfg"
	v1Http "github.com/vacation-shop/go-backend/internal/delivery/v1/http"
	emailInfra "github.com/vacation-shop/go-backend/internal/infrastructure/email"
	"github.com/vacation-shop/go-backend/internal/infrastructure/kafka"
	minioInfra "github.com/vacation-shop/go-backend/internal/infrastructure/minio"
	"github.com/vacation-shop/go-backend/internal/infrastructure/sweeper"
	s3Repo "github.com/vacation-shop/go-backend/internal/repository/minio"
	"github.com/vacation-shop/go-backend/internal/repository/pgdb"
	pgdbConv "github.com/vacation-shop/go-backend/internal/repository/pgdb/converter"
	"github.com/vacation-shop/go-backend/internal/repository/redis"
	redisConv "github.com/vacation-shop/go-backend/internal/repository/redis/converter"
	"github.com/vacation-shop/go-backend/internal/usecase"
	"github.com/vacation-shop/go-backend/pkg/clients"
	"github.com/vacation-shop/go-backend/pkg/closer"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/logger"
	"github.com/vacation-shop/go-backend/pkg/postgres"
)

const (
	kafkaEnsureTopicTimeout = 10 * time.Second
	shutdownTimeout         = 10 * time.Second
	forcedCloseTimeout      = 5 * time.Second
)

// App собирает все зависимости приложения и управляет их жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger

	httpSrv      *v1Http.Server
	outboxWorker *kafka.OutboxWorker
	sweep        *sweeper.Sweeper
	imagesInfra  *minioInfra.MinioInfrastructure

	closer *closer.Closer

	// baseCtx живёт всё время работы приложения, cancel дергается при shutdown
	baseCtx context.Context
	cancel  context.CancelFunc
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	baseCtx, cancel := context.WithCancel(context.Background())

	a := &App{
		cfg:     cfg,
		logger:  log,
		closer:  closer.NewCloser(forcedCloseTimeout),
		baseCtx: baseCtx,
		cancel:  cancel,
	}

	if err := a.init(); err != nil {
		cancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

func (a *App) init() error {
	db, err := a.initPGDB()
	if err != nil {
		return err
	}
	a.closer.Add(func(ctx context.Context) error {
		db.Close()
		a.logger.Infof("PostgreSQL pool closed")
		return nil
	})

	redisClient, err := a.initRedis()
	if err != nil {
		return err
	}

	minioClient, err := a.initMinio()
	if err != nil {
		return err
	}

	producer, err := kafka.NewProducer(a.logger, a.cfg.Kafka)
	if err != nil {
		return err
	}
	if err := producer.EnsureTopic(kafkaEnsureTopicTimeout); err != nil {
		return err
	}
	a.closer.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverter())
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, pgdbConv.NewCategoryConverter())
	userRepo := pgdb.NewUserRepo(db.Pool, pgdbConv.NewUserConverter())
	orderRepo := pgdb.NewOrderRepo(db.Pool, pgdbConv.NewOrderConverter())
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverter())

	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.NewProductConverter(), a.cfg.Redis, a.logger)
	imageRepo := s3Repo.NewImageRepo(minioClient, a.cfg.Minio)

	a.imagesInfra = minioInfra.NewMinioInfrastructure(imageRepo, a.cfg.Minio, a.logger, a.baseCtx)
	emailInfrastructure := emailInfra.NewEmailInfrastructure(a.cfg.Smtp, a.logger)

	tokens := auth.NewTokenManager(a.cfg.Jwt)

	productUC := usecase.NewProductUC(productRepo, categoryRepo, db.Pool, cacheRepo, a.logger)
	categoryUC := usecase.NewCategoryUC(categoryRepo, a.logger)
	userUC := usecase.NewUserUC(userRepo, tokens, a.logger)
	orderUC := usecase.NewOrderUC(orderRepo, productRepo, outboxRepo, db.Pool, a.cfg.Sweep.BatchSize, a.logger)
	emailUC := usecase.NewEmailUC(emailInfrastructure, a.logger)

	a.outboxWorker = kafka.NewOutboxWorker(outboxRepo, a.logger, producer, db.Dsn)
	a.closer.Add(func(ctx context.Context) error {
		a.outboxWorker.Stop()
		a.logger.Infof("Outbox worker stopped")
		return nil
	})

	a.sweep = sweeper.NewSweeper(orderUC, a.cfg.Sweep, a.logger)
	a.closer.Add(func(ctx context.Context) error {
		a.sweep.Stop()
		a.logger.Infof("Status sweeper stopped")
		return nil
	})

	mux := chi.NewRouter()
	router := v1Http.NewRouter(mux, v1Http.NewAuthMiddleware(tokens, a.logger), a.logger)
	router.Init(&v1Http.Deps{
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		UserUC:      userUC,
		OrderUC:     orderUC,
		EmailUC:     emailUC,
		ImagesInfra: a.imagesInfra,
	})

	a.httpSrv = v1Http.NewServer(mux, a.cfg.Http)

	return nil
}

// Run стартует фоновые воркеры и HTTP-сервер и блокируется до сигнала
// завершения либо фатальной ошибки сервера.
func (a *App) Run() error {
	a.outboxWorker.Start(a.baseCtx)

	if err := a.sweep.Start(a.baseCtx); err != nil {
		a.logger.Errorf(err, "failed to start status sweeper")
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.stop()
	return appErr
}

func (a *App) stop() {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	// Дожидаемся фоновой очистки недозагруженных объектов MinIO
	if err := a.imagesInfra.WaitForCleanup(shutdownCtx); err != nil {
		a.logger.Warnf("MinIO cleanup error: %v", err)
	}

	a.cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("Resource close error: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
}

func (a *App) initPGDB() (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(a.cfg.Db)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(a.logger); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

func (a *App) initRedis() (*clients.RedisClient, error) {
	redisClient := clients.NewRedisClient(a.cfg.Redis)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	a.closer.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	return redisClient, nil
}

func (a *App) initMinio() (*minio.Client, error) {
	minioClient, err := clients.NewMinIOClient(a.cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := clients.EnsureBucket(ctx, minioClient, a.cfg.Minio.BucketName); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return minioClient, nil
}
