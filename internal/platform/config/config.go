package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration for the datatests CLI and admin
// API. Environment variables set the defaults; an optional YAML file
// overrides them.
type Config struct {
	Server   Server         `yaml:"server" json:"server"`
	Database DatabaseConfig `yaml:"database" json:"database"`
	Redis    RedisConfig    `yaml:"redis" json:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka" json:"kafka"`
	Events   EventsConfig   `yaml:"events" json:"events"`
	Log      LogConfig      `yaml:"log" json:"log"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string `yaml:"addr" json:"addr"`
	AdminTokenKey string `yaml:"admin_token_key" json:"admin_token_key"`
	// ObjectURLTemplate renders the link to a tested object's own page.
	// {type} and {id} are substituted.
	ObjectURLTemplate string `yaml:"object_url_template" json:"object_url_template"`
}

// DatabaseConfig selects the result store. An empty URL keeps everything in
// memory.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver" json:"driver"`
	URL             string        `yaml:"url" json:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns" json:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" json:"-"`
}

// RedisConfig configures the redis client used by the redis event sink.
type RedisConfig struct {
	URL          string        `yaml:"url" json:"url"`
	PoolSize     int           `yaml:"pool_size" json:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns" json:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout" json:"-"`
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"-"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"-"`
}

// KafkaConfig configures the kafka event sink.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers" json:"brokers"`
	Topic   string   `yaml:"topic" json:"topic"`
}

// EventsConfig selects where run summaries are published.
type EventsConfig struct {
	Sink    string `yaml:"sink" json:"sink"`
	Channel string `yaml:"channel" json:"channel"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Format string `yaml:"format" json:"format"`
	Level  string `yaml:"level" json:"level"`
}

// Event sinks.
const (
	SinkLog   = "log"
	SinkRedis = "redis"
	SinkKafka = "kafka"
)

//go:embed schema.json
var schemaJSON []byte

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:              envOr("DATATESTS_ADDR", ":8080"),
			AdminTokenKey:     envOr("DATATESTS_ADMIN_TOKEN_KEY", "dev-admin-key-change-in-production"),
			ObjectURLTemplate: envOr("DATATESTS_OBJECT_URL_TEMPLATE", "/admin/{type}/{id}"),
		},
		Database: DatabaseConfig{
			Driver:          envOr("DATATESTS_DB_DRIVER", "postgres"),
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATATESTS_DB_MAX_OPEN_CONNS", 10),
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   envOr("DATATESTS_KAFKA_TOPIC", "datatests.runs"),
		},
		Events: EventsConfig{
			Sink:    envOr("DATATESTS_EVENT_SINK", SinkLog),
			Channel: envOr("DATATESTS_EVENT_CHANNEL", "datatests:runs"),
		},
		Log: LogConfig{
			Format: envOr("DATATESTS_LOG_FORMAT", "text"),
			Level:  envOr("DATATESTS_LOG_LEVEL", "info"),
		},
	}
}

// Load returns FromEnv overlaid with the YAML file at path. An empty path
// skips the file. The file is validated against the embedded JSON schema
// before it is applied.
func Load(path string) (Config, error) {
	cfg := FromEnv()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := validate(raw); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks cross-field rules the schema cannot express.
func (c Config) Validate() error {
	switch c.Events.Sink {
	case SinkLog:
	case SinkRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("events sink %q requires redis.url", c.Events.Sink)
		}
	case SinkKafka:
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("events sink %q requires kafka.brokers", c.Events.Sink)
		}
	default:
		return fmt.Errorf("unknown events sink %q", c.Events.Sink)
	}
	switch c.Database.Driver {
	case "postgres", "pgx":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	return nil
}

func validate(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	// Round-trip through JSON so the validator sees JSON-native types.
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalize yaml: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("normalize yaml: %w", err)
	}
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return fmt.Errorf("load config schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("config.schema.json", schemaDoc); err != nil {
		return fmt.Errorf("load config schema: %w", err)
	}
	sch, err := c.Compile("config.schema.json")
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	return sch.Validate(inst)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
