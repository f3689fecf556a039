package config

import (
	"fmt"
	"strings"

	"github.com/srimathim2003/Employee-Management/library/pg"
	"github.com/srimathim2003/Employee-Management/library/yamlenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Storage  StorageConfig     `yaml:"storage"`
	Postgres pg.PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig      `yaml:"sqlite"`
	Kafka    KafkaConfig       `yaml:"kafka"`
	UserAPI  ApiConfig         `yaml:"userAPI"`
	Log      LogConfig         `yaml:"log"`
}

type StorageConfig struct {
	Driver *yamlenv.Env[string] `yaml:"driver"`
}

type SQLiteConfig struct {
	Path *yamlenv.Env[string] `yaml:"path"`
}

type KafkaConfig struct {
	Enabled          *yamlenv.Env[bool]   `yaml:"enabled"`
	Bootstrap        *yamlenv.Env[string] `yaml:"bootstrap"`
	ProducerClientID *yamlenv.Env[string] `yaml:"producer_client_id"`
	ImportGroupID    *yamlenv.Env[string] `yaml:"import_group_id"`
	Topics           struct {
		Events *yamlenv.Env[string] `yaml:"events"`
		Import *yamlenv.Env[string] `yaml:"import"`
	} `yaml:"topics"`
}

type ApiConfig struct {
	Port *yamlenv.Env[int] `yaml:"port"`
}

type LogConfig struct {
	Level *yamlenv.Env[string] `yaml:"level"`
}

// Driver возвращает драйвер хранилища, по умолчанию postgres
func (c *Config) Driver() string {
	d := strings.ToLower(strings.TrimSpace(c.Storage.Driver.Get()))
	if d == "" {
		return DriverPostgres
	}
	return d
}

// Brokers разбирает kafka.bootstrap вида "host1:9092,host2:9092"
func (k KafkaConfig) Brokers() []string {
	var out []string
	for _, b := range strings.Split(k.Bootstrap.Get(), ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func (c *Config) Validate() error {
	switch c.Driver() {
	case DriverPostgres:
		if c.Postgres.Conn.Get() == "" {
			return fmt.Errorf("postgres.conn is required for driver %q", DriverPostgres)
		}
	case DriverSQLite:
		if c.SQLite.Path.Get() == "" {
			return fmt.Errorf("sqlite.path is required for driver %q", DriverSQLite)
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Driver())
	}

	if c.UserAPI.Port.Get() <= 0 {
		return fmt.Errorf("userAPI.port must be positive")
	}

	if c.Kafka.Enabled.Get() {
		if len(c.Kafka.Brokers()) == 0 {
			return fmt.Errorf("kafka.bootstrap is required when kafka is enabled")
		}
		if c.Kafka.Topics.Events.Get() == "" {
			return fmt.Errorf("kafka.topics.events is required when kafka is enabled")
		}
	}

	return nil
}
