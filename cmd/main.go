package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/srimathim2003/Employee-Management/internal/api"
	"github.com/srimathim2003/Employee-Management/internal/config"
	"github.com/srimathim2003/Employee-Management/internal/exchange/consumer"
	"github.com/srimathim2003/Employee-Management/internal/exchange/producer"
	"github.com/srimathim2003/Employee-Management/internal/repository/employee"
	"github.com/srimathim2003/Employee-Management/internal/repository/events"
	sqliterepo "github.com/srimathim2003/Employee-Management/internal/repository/sqlite"
	"github.com/srimathim2003/Employee-Management/internal/service"
	"github.com/srimathim2003/Employee-Management/library/pg"
	"github.com/srimathim2003/Employee-Management/library/sqlite"
	"github.com/srimathim2003/Employee-Management/library/yamlreader"
)

const source = "employee-management"

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(rootCtx)
	defer cancel()

	cfg := MustNewConfig(parseFlags())

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLevel(cfg.Log.Level.Get()))

	log.Info().Str("driver", cfg.Driver()).Bool("kafka", cfg.Kafka.Enabled.Get()).Msg("конфигурация загружена")

	var (
		store      service.EmployeeStore
		eventsRepo *events.Repository
	)

	switch cfg.Driver() {
	case config.DriverSQLite:
		db, err := sqlite.Open(rootCtx, cfg.SQLite.Path.Get())
		if err != nil {
			log.Fatal().Err(err).Msg("sqlite init failed")
		}
		defer func() { _ = db.Close() }()

		store = sqliterepo.NewEmployeeRepo(db)
	default:
		pgClient, err := pg.NewPG(rootCtx, cfg.Postgres, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("postgres init failed")
		}
		defer pgClient.Close()

		store = employee.NewRepository(pgClient.Pool())
		eventsRepo = events.NewRepository(pgClient.Pool())
	}

	var publisher service.EventPublisher
	if cfg.Kafka.Enabled.Get() {
		empProducer, err := initEmployeeProducer(cfg.Kafka)
		if err != nil {
			log.Fatal().Err(err).Msg("kafka producer init failed")
		}
		defer func() { _ = empProducer.Close() }()

		publisher = empProducer
	}

	employees := service.NewEmployeeService(store, publisher, log.Logger)

	deps := api.ServiceDeps{
		Port:      cfg.UserAPI.Port.Get(),
		Employees: employees,
	}

	// импорт читает kafka_events/kafka_dlq, которые есть только в postgres
	var importRunner *consumer.Runner
	if cfg.Kafka.Enabled.Get() && eventsRepo != nil && cfg.Kafka.Topics.Import.Get() != "" {
		importRunner = consumer.NewImportRunner(
			cfg.Kafka.Brokers(),
			cfg.Kafka.Topics.Import.Get(),
			cfg.Kafka.ImportGroupID.Get(),
			eventsRepo,
			employees,
			log.Logger,
		)
		deps.EventsRepo = eventsRepo
	}

	apiService := api.NewService(deps)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info().Msg("запуск HTTP API")
		if err := apiService.Start(gctx); err != nil {
			log.Error().Err(err).Msg("HTTP API завершился с ошибкой")

			return err
		}

		log.Info().Msg("HTTP API остановлен")

		return nil
	})

	if publisher != nil {
		group.Go(func() error {
			log.Info().Msg("запуск публикации событий")
			err := employees.RunPublisher(gctx)
			log.Info().Msg("публикация событий остановлена")

			return err
		})
	}

	if importRunner != nil {
		group.Go(func() error {
			log.Info().Msg("запуск consumer_employee_import")
			if err := importRunner.Start(gctx); err != nil {
				log.Error().Err(err).Msg("consumer_employee_import завершился с ошибкой")

				return err
			}

			log.Info().Msg("consumer_employee_import остановлен")

			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = group.Wait()
	}()

	select {
	case <-rootCtx.Done():
		log.Info().Msg("signal received, graceful shutdown...")
		<-done
		log.Info().Msg("all services stopped")
	case <-done:
		log.Info().Msg("all services stopped")
	}
}

func initEmployeeProducer(kafkaConfig config.KafkaConfig) (*producer.EmployeeProducer, error) {
	sp, err := producer.NewSyncProducer(kafkaConfig.Brokers(), kafkaConfig.ProducerClientID.Get())
	if err != nil {
		return nil, err
	}

	return producer.NewEmployeeProducer(
		sp,
		producer.Config{
			Topic:  kafkaConfig.Topics.Events.Get(),
			Source: source,
		},
		log.Logger,
	), nil
}

func parseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.InfoLevel
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Str("level", level).Msg("неизвестный уровень логирования, используется info")
		return zerolog.InfoLevel
	}

	return lvl
}

func MustNewConfig(path string) *config.Config {
	cfg, err := yamlreader.NewConfig[config.Config](path)
	if err != nil {
		log.Fatal().Str("path", path).Err(err).Msg("ошибка чтения конфигурации приложения")
		return nil
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Str("path", path).Err(err).Msg("некорректная конфигурация приложения")
		return nil
	}

	return cfg
}

func parseFlags() string {
	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	_ = godotenv.Load(".env")

	if configPath == "" {
		configPath = "config/application-local.yaml"
	}
	return configPath
}
