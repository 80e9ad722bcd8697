package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"datatests/internal/datatest/events"
	"datatests/internal/datatest/metrics"
	"datatests/internal/datatest/registry"
	"datatests/internal/datatest/service"
	"datatests/internal/datatest/store/testmethod"
	"datatests/internal/datatest/store/testresult"
	"datatests/internal/platform/config"
	"datatests/internal/platform/database"
	redisclient "datatests/internal/platform/redis"
	"datatests/pkg/platform/circuit"
)

// app holds the wired dependencies of one CLI invocation.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	svc       *service.Service
	registry  *prometheus.Registry
	db        *sql.DB
	redis     *redisclient.Client
	publisher events.Publisher
}

// newApp wires stores, publisher and metrics from cfg. With no database URL
// results live in memory for the lifetime of the process.
func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger, models []registry.Model) (a *app, err error) {
	catalog, err := registry.New(models...)
	if err != nil {
		return nil, fmt.Errorf("register domain types: %w", err)
	}

	a = &app{cfg: cfg, logger: logger, registry: prometheus.NewRegistry()}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var (
		methods service.MethodStore
		results service.ResultStore
	)
	if cfg.Database.URL == "" {
		logger.WarnContext(ctx, "no database configured, results are kept in memory")
		methods, results = testmethod.NewInMemory(), testresult.NewInMemory()
	} else {
		if a.db, err = database.Open(ctx, cfg.Database); err != nil {
			return nil, err
		}
		if err = database.Migrate(ctx, a.db); err != nil {
			return nil, err
		}
		methods, results = testmethod.NewPostgres(a.db), testresult.NewPostgres(a.db)
	}

	if a.publisher, err = a.newPublisher(ctx); err != nil {
		return nil, err
	}

	a.svc = service.New(catalog, methods, results,
		service.WithLogger(logger),
		service.WithMetrics(metrics.NewWithRegistry(a.registry)),
		service.WithPublisher(a.publisher),
	)
	return a, nil
}

func (a *app) newPublisher(ctx context.Context) (events.Publisher, error) {
	var primary events.Publisher
	switch a.cfg.Events.Sink {
	case config.SinkRedis:
		client, err := redisclient.New(ctx, a.cfg.Redis)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, errors.New("redis event sink requires a redis url")
		}
		a.redis = client
		primary = events.NewRedisPublisher(client, a.cfg.Events.Channel)
	case config.SinkKafka:
		publisher, err := events.NewKafkaPublisher(ctx, a.cfg.Kafka.Brokers, a.cfg.Kafka.Topic, a.logger)
		if err != nil {
			return nil, err
		}
		primary = publisher
	default:
		return events.NewLogPublisher(a.logger), nil
	}
	breaker := circuit.New(a.cfg.Events.Sink, circuit.WithFailureThreshold(3), circuit.WithCooldown(time.Minute))
	return events.NewBreakerPublisher(primary, events.NewLogPublisher(a.logger), breaker, a.logger), nil
}

// Health pings every configured backend.
func (a *app) Health(ctx context.Context) error {
	if a.db != nil {
		if err := a.db.PingContext(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Health(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// Close releases every backend; errors are joined.
func (a *app) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
