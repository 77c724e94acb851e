package appcontext

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/foodorder/internal/config"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/payment"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/producer"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/foodorder/internal/logger"
	"github.com/RoyceAzure/lab/foodorder/internal/pkg/token"
	"github.com/RoyceAzure/lab/foodorder/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const serviceName = "foodorder"

type ApplicationContext struct {
	Cf                  *config.Config
	Logger              *zerolog.Logger
	logWriter           *logger.KafkaLogWriter
	DbDao               *db.UnifiedDBImpl
	RedisClient         *redis.Client
	EventLedger         redis_repo.IEventLedger
	CheckoutLimiter     ratelimit.ILimiter
	OrderProducer       producer.Producer
	OrderEventPublisher producer.IOrderEventPublisher
	PaymentGateway      payment.Gateway
	EventVerifier       payment.EventVerifier
	TokenMaker          token.Maker
	CatalogService      service.ICatalogService
	CheckoutService     service.ICheckoutService
	WebhookService      service.IWebhookService
	OrderService        service.IOrderService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}

	if err := app.Init(); err != nil {
		// 已建立的連線要釋放
		app.Shutdown(context.Background())
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"logger", app.setUpLogger},
		{"database connection", app.setUpDbConn},
		{"database migration", app.setUpDbMigration},
		{"redis", app.setUpRedis},
		{"event ledger", app.setUpEventLedger},
		{"checkout rate limiter", app.setUpCheckoutLimiter},
		{"order event producer", app.setUpOrderProducer},
		{"payment gateway", app.setUpPaymentGateway},
		{"token maker", app.setUpTokenMaker},
		{"services", app.setUpServices},
		{"catalog seed", app.setUpCatalogSeed},
	}

	for _, step := range steps {
		if app.Logger != nil {
			app.Logger.Info().Msgf("Start setup %s", step.name)
		}
		if err := step.fn(); err != nil {
			return fmt.Errorf("setup %s: %w", step.name, err)
		}
		app.Logger.Info().Msgf("Finish setup %s", step.name)
	}
	return nil
}

// setUpLogger 有設定 LOG_KAFKA_TOPIC 時 log 同時寫入 kafka
func (app *ApplicationContext) setUpLogger() error {
	opts := []logger.Option{
		logger.WithLevel(app.Cf.LogLevel),
		logger.WithConsole(app.Cf.IsDevelopment()),
	}

	if app.Cf.LogKafkaTopic != "" && len(app.Cf.Brokers()) > 0 {
		p, err := producer.New(producer.DefaultConfig(app.Cf.Brokers(), app.Cf.LogKafkaTopic))
		if err != nil {
			return err
		}
		app.logWriter = logger.NewKafkaLogWriter(p)
		opts = append(opts, logger.WithSink(app.logWriter))
	}

	app.Logger = logger.New(serviceName, opts...)
	zerolog.DefaultContextLogger = app.Logger
	return nil
}

func (app *ApplicationContext) setUpDbConn() error {
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbDao = db.NewUnifiedDB(conn)
	return app.DbDao.Ping(context.Background())
}

func (app *ApplicationContext) setUpDbMigration() error {
	if app.Cf.MigrationURL == "" {
		app.Logger.Warn().Msg("MIGRATION_URL is empty, skip migration")
		return nil
	}
	return db.RunDBMigration(
		app.Cf.MigrationURL,
		db.MigrateURL(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas),
	)
}

func (app *ApplicationContext) setUpRedis() error {
	if app.Cf.RedisAddr == "" {
		app.Logger.Warn().Msg("REDIS_ADDR is empty, using in-memory ledger and limiter")
		return nil
	}
	client, err := redis_repo.GetRedisClient(
		context.Background(),
		app.Cf.RedisAddr,
		redis_repo.WithPassword(app.Cf.RedisPassword),
		redis_repo.WithDB(app.Cf.RedisDB),
	)
	if err != nil {
		return err
	}
	app.RedisClient = client
	return nil
}

func (app *ApplicationContext) setUpEventLedger() error {
	if app.RedisClient == nil {
		app.EventLedger = redis_repo.NewMemoryEventLedger(app.Cf.WebhookEventTTL)
		return nil
	}
	app.EventLedger = redis_repo.NewEventLedger(app.RedisClient, "webhook", app.Cf.WebhookEventTTL)
	return nil
}

func (app *ApplicationContext) setUpCheckoutLimiter() error {
	cfg := &ratelimit.LimiterConfig{
		Key:      "ratelimit:checkout",
		Capacity: app.Cf.CheckoutRateCapacity,
		RatePS:   app.Cf.CheckoutRatePerSecond,
	}
	if app.RedisClient == nil {
		app.CheckoutLimiter = ratelimit.NewTokenBucket(cfg)
		return nil
	}
	app.CheckoutLimiter = ratelimit.NewRsBucketToken(app.RedisClient, cfg)
	return nil
}

func (app *ApplicationContext) setUpOrderProducer() error {
	brokers := app.Cf.Brokers()
	if len(brokers) == 0 {
		app.Logger.Warn().Msg("KAFKA_BROKERS is empty, order events will not be published")
		app.OrderEventPublisher = producer.NopPublisher{}
		return nil
	}
	p, err := producer.New(producer.DefaultConfig(brokers, app.Cf.KafkaOrderTopic))
	if err != nil {
		return err
	}
	app.OrderProducer = p
	app.OrderEventPublisher = producer.NewOrderEventPublisher(p)
	return nil
}

func (app *ApplicationContext) setUpPaymentGateway() error {
	if app.Cf.StripeSecretKey == "" {
		return errors.New("STRIPE_SECRET_KEY is required")
	}
	if app.Cf.StripeWebhookSecret == "" {
		return errors.New("STRIPE_WEBHOOK_SECRET is required")
	}
	app.PaymentGateway = payment.NewStripeGateway(app.Cf.StripeSecretKey, nil)
	app.EventVerifier = payment.NewStripeEventVerifier(app.Cf.StripeWebhookSecret)
	return nil
}

func (app *ApplicationContext) setUpTokenMaker() error {
	tokenMaker, err := token.NewJWTMaker(app.Cf.AuthTokenKey)
	if err != nil {
		return err
	}
	app.TokenMaker = tokenMaker
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	app.CatalogService = service.NewCatalogService(app.DbDao)
	app.CheckoutService = service.NewCheckoutService(
		app.DbDao,
		app.DbDao,
		app.PaymentGateway,
		app.OrderEventPublisher,
		service.CheckoutOptions{
			Currency:       app.Cf.PaymentCurrency,
			FrontendURL:    app.Cf.FrontendURL,
			GatewayTimeout: app.Cf.GatewayTimeout,
		},
	)
	app.WebhookService = service.NewWebhookService(app.EventVerifier, app.DbDao, app.EventLedger, app.OrderEventPublisher)
	app.OrderService = service.NewOrderService(app.DbDao, app.CatalogService, app.OrderEventPublisher)
	return nil
}

// setUpCatalogSeed 餐廳與菜單的初始資料, 重複執行結果相同
func (app *ApplicationContext) setUpCatalogSeed() error {
	if app.Cf.CatalogSeedPath == "" {
		return nil
	}
	seed, err := config.LoadCatalogSeed(app.Cf.CatalogSeedPath)
	if err != nil {
		return err
	}
	return app.CatalogService.SeedCatalog(app.Logger.WithContext(context.Background()), seed)
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		var g errgroup.Group

		if app.OrderProducer != nil {
			g.Go(app.OrderProducer.Close)
		}
		if app.RedisClient != nil {
			g.Go(redis_repo.CloseAll)
		}
		if app.DbDao != nil {
			g.Go(app.DbDao.Close)
		}

		err := g.Wait()
		// logger 最後關, 前面的錯誤還要記錄
		if app.logWriter != nil {
			if closeErr := app.logWriter.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}
		done <- err
	}()

	select {
	case err := <-done:
		if app.Logger != nil {
			if err != nil {
				app.Logger.Error().Err(err).Msg("application shutdown with error")
			} else {
				app.Logger.Info().Msg("Application shutdown complete")
			}
		}
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
}
