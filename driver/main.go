package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go_trial/foodhub/config"
	"go_trial/foodhub/events"
	"go_trial/foodhub/handlers"
	"go_trial/foodhub/middleware"
	"go_trial/foodhub/middleware/logkafka"
	"go_trial/foodhub/notify"
	"go_trial/foodhub/server"
	"go_trial/foodhub/services"
	"go_trial/foodhub/store"
	"go_trial/foodhub/telem"
	"go_trial/foodhub/utils"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	serviceName     = "foodhub"
	connectTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
	qrSize          = 256
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("foodhub stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ConfigureLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownMetrics, err := telem.InitMetrics(serviceName, cfg.MetricsAddr, middleware.RegisterMetrics)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	shutdownTracing, err := telem.InitTracing(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	client, err := utils.InitMongoClient(connectCtx, cfg.MongoURI)
	cancel()
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	if err := store.Migrate(client, cfg.MongoDB); err != nil {
		return err
	}
	st := store.New(client.Database(cfg.MongoDB))

	// Hooks run last-registered first, so telemetry flushes after everything else.
	svr := server.New(nil)
	hook := svr.OnShutdown
	hook("tracing", shutdownTracing)
	hook("metrics", shutdownMetrics)
	hook("mongo", client.Disconnect)

	var sequencer services.Sequencer = st.Counters
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		sequencer = store.NewRedisSequencer(rdb)
		hook("redis", func(context.Context) error { return rdb.Close() })
		logrus.WithField("addr", cfg.RedisAddr).Info("using redis for order and reservation numbers")
	}

	var payments services.PaymentGateway
	if cfg.StripeSecretKey != "" {
		payments = services.NewStripeGateway(cfg.StripeSecretKey)
	} else {
		logrus.Warn("STRIPE_SECRET_KEY not set, online payment disabled")
	}

	var publisher services.EventPublisher = events.LogPublisher{}
	var logWriter logkafka.EntryWriter
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaEventTopic))
		publisher = kp
		hook("events", func(context.Context) error { return kp.Close() })
		logWriter = logkafka.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaLogTopic)
	}
	requestLogger := logkafka.NewRequestLogger(logWriter, cfg.AppEnv)
	hook("request-log", func(context.Context) error { return requestLogger.Close() })

	var mailer notify.Mailer = notify.LogMailer{}
	if cfg.SMTPHost != "" {
		mailer = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	}
	notifier := notify.NewNotifier(mailer)

	tokens := utils.NewTokenManager(string(cfg.JWTSecret), cfg.JWTTTL, cfg.RefreshTTL)
	authService := services.NewAuthService(st.Users, st.RefreshTokens, tokens, notifier, cfg.ResetURLBase, cfg.ResetTokenTTL)

	h := handlers.New(handlers.Handler{
		Auth:        authService,
		Restaurants: services.NewRestaurantService(st.Restaurants),
		Menu:        services.NewMenuService(st.MenuItems, st.Categories, st.Restaurants),
		Categories:  services.NewCategoryService(st.Categories),
		Orders: services.NewOrderService(services.OrderDeps{
			Orders:      st.Orders,
			Menu:        st.MenuItems,
			Restaurants: st.Restaurants,
			Users:       st.Users,
			Sequencer:   sequencer,
			Notifier:    notifier,
			Events:      publisher,
			Payments:    payments,
			Tickets:     utils.QREncoder{Size: qrSize},
			Currency:    cfg.PaymentCurrency,
		}),
		Reservations: services.NewReservationService(st.Reservations, st.Restaurants, sequencer, publisher),
		Reviews:      services.NewReviewService(st.Reviews, st.Restaurants, publisher),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
	})

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "token", logkafka.TraceHeader},
		ExposedHeaders: []string{logkafka.TraceHeader},
	})
	svr.Handler = requestLogger.Middleware(c.Handler(h.Routes(authService)))

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", cfg.HTTPAddr).Info("foodhub API listening")
		errCh <- svr.Run(cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = svr.Shutdown(shutdownTimeout)
			return err
		}
	case <-ctx.Done():
		logrus.Info("shutting down...")
	}
	if err := svr.Shutdown(shutdownTimeout); err != nil {
		return err
	}
	logrus.Info("foodhub is shut ..zzz")
	return nil
}
