package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Notification backends.
const (
	NotifyNone  = "none"
	NotifyKafka = "kafka"
	NotifyAMQP  = "amqp"
)

// Config stores service settings.
type Config struct {
	Port      int
	LogLevel  string
	DB        DB
	Dispatch  Dispatch
	Routing   Routing
	Kafka     Kafka
	AMQP      AMQP
	Notify    string
	RateLimit RateLimit
	Sweep     Sweep
	Pprof     Pprof
}

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns a postgres connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Dispatch stores planner and evaluator settings.
type Dispatch struct {
	AvgSpeedKmh      float64
	ProviderTimeout  time.Duration
	PlanningTimeout  time.Duration
	OperationTimeout time.Duration
	StaleAfter       time.Duration
	MaxConcurrency   int
	DepotLat         float64
	DepotLng         float64
}

// Routing stores route provider settings. An empty APIKey leaves the provider unconfigured.
type Routing struct {
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	CacheTTL    time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Kafka stores broker and topic settings; no brokers disables Kafka.
type Kafka struct {
	Brokers        []string
	GroupID        string
	OrdersTopic    string
	PositionsTopic string
	NotifyTopic    string
}

// AMQP stores RabbitMQ settings for the amqp notify backend.
type AMQP struct {
	URL      string
	Exchange string
}

// RateLimit stores location endpoint rate limit settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Sweep stores the redispatch job settings; an empty schedule disables it.
type Sweep struct {
	Schedule string
	Batch    int
}

// Pprof stores the debug profiling server settings.
type Pprof struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      defaultPort,
		LogLevel:  "info",
		DB:        defaultDB,
		Dispatch:  defaultDispatch,
		Routing:   defaultRouting,
		Kafka:     defaultKafka,
		AMQP:      defaultAMQP,
		Notify:    NotifyNone,
		RateLimit: defaultRateLimit,
		Sweep:     defaultSweep,
		Pprof:     defaultPprof,
	}

	e := &envReader{}
	e.int("PORT", &cfg.Port)
	e.str("LOG_LEVEL", &cfg.LogLevel)

	e.str("POSTGRES_HOST", &cfg.DB.Host)
	e.str("POSTGRES_PORT", &cfg.DB.Port)
	e.str("POSTGRES_USER", &cfg.DB.User)
	e.str("POSTGRES_PASSWORD", &cfg.DB.Pass)
	e.str("POSTGRES_DB", &cfg.DB.Name)

	e.float("DISPATCH_AVG_SPEED_KMH", &cfg.Dispatch.AvgSpeedKmh)
	e.duration("DISPATCH_PROVIDER_TIMEOUT", &cfg.Dispatch.ProviderTimeout)
	e.duration("DISPATCH_PLANNING_TIMEOUT", &cfg.Dispatch.PlanningTimeout)
	e.duration("DISPATCH_OPERATION_TIMEOUT", &cfg.Dispatch.OperationTimeout)
	e.duration("DISPATCH_STALE_AFTER", &cfg.Dispatch.StaleAfter)
	e.int("DISPATCH_MAX_CONCURRENCY", &cfg.Dispatch.MaxConcurrency)
	e.float("DISPATCH_DEPOT_LAT", &cfg.Dispatch.DepotLat)
	e.float("DISPATCH_DEPOT_LNG", &cfg.Dispatch.DepotLng)

	e.str("ROUTING_API_KEY", &cfg.Routing.APIKey)
	e.str("ROUTING_BASE_URL", &cfg.Routing.BaseURL)
	e.duration("ROUTING_TIMEOUT", &cfg.Routing.Timeout)
	e.duration("ROUTING_CACHE_TTL", &cfg.Routing.CacheTTL)
	e.int("ROUTING_MAX_ATTEMPTS", &cfg.Routing.MaxAttempts)
	e.duration("ROUTING_BASE_DELAY", &cfg.Routing.BaseDelay)
	e.duration("ROUTING_MAX_DELAY", &cfg.Routing.MaxDelay)

	e.list("KAFKA_BROKERS", &cfg.Kafka.Brokers)
	e.str("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)
	e.str("KAFKA_ORDERS_TOPIC", &cfg.Kafka.OrdersTopic)
	e.str("KAFKA_POSITIONS_TOPIC", &cfg.Kafka.PositionsTopic)
	e.str("KAFKA_NOTIFY_TOPIC", &cfg.Kafka.NotifyTopic)

	e.str("AMQP_URL", &cfg.AMQP.URL)
	e.str("AMQP_EXCHANGE", &cfg.AMQP.Exchange)
	e.str("NOTIFY_BACKEND", &cfg.Notify)

	e.bool("RATE_LIMIT_ENABLED", &cfg.RateLimit.Enabled)
	e.float("RATE_LIMIT_RATE", &cfg.RateLimit.Rate)
	e.int("RATE_LIMIT_BURST", &cfg.RateLimit.Burst)
	e.duration("RATE_LIMIT_TTL", &cfg.RateLimit.TTL)
	e.int("RATE_LIMIT_MAX_BUCKETS", &cfg.RateLimit.MaxBuckets)

	if v, ok := os.LookupEnv("SWEEP_SCHEDULE"); ok {
		cfg.Sweep.Schedule = strings.TrimSpace(v)
	}
	e.int("SWEEP_BATCH", &cfg.Sweep.Batch)

	e.bool("PPROF_ENABLED", &cfg.Pprof.Enabled)
	e.str("PPROF_ADDR", &cfg.Pprof.Addr)
	e.str("PPROF_USER", &cfg.Pprof.User)
	e.str("PPROF_PASSWORD", &cfg.Pprof.Pass)

	if e.err != nil {
		return nil, e.err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	pflag.StringVar(&cfg.Notify, "notify", cfg.Notify, "ETA notification backend (none, kafka, amqp)")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if p, err := strconv.Atoi(c.DB.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid postgres port: %q", c.DB.Port)
	}
	if c.Dispatch.AvgSpeedKmh <= 0 {
		return fmt.Errorf("invalid average speed: %v", c.Dispatch.AvgSpeedKmh)
	}
	if c.Dispatch.ProviderTimeout <= 0 || c.Dispatch.PlanningTimeout <= 0 {
		return fmt.Errorf("dispatch timeouts must be positive")
	}
	if c.Dispatch.MaxConcurrency <= 0 {
		return fmt.Errorf("invalid max concurrency: %d", c.Dispatch.MaxConcurrency)
	}
	switch c.Notify {
	case NotifyNone, NotifyKafka, NotifyAMQP:
	default:
		return fmt.Errorf("invalid notify backend: %q", c.Notify)
	}
	return nil
}

// envReader collects the first parse error while reading variables.
type envReader struct{ err error }

func (e *envReader) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *envReader) fail(key, v string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("env %s=%q: %w", key, v, err)
	}
}

func (e *envReader) str(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

func (e *envReader) int(key string, dst *int) {
	if v, ok := e.lookup(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) float(key string, dst *float64) {
	if v, ok := e.lookup(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = f
	}
}

func (e *envReader) bool(key string, dst *bool) {
	if v, ok := e.lookup(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (e *envReader) duration(key string, dst *time.Duration) {
	if v, ok := e.lookup(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = d
	}
}

func (e *envReader) list(key string, dst *[]string) {
	if v, ok := e.lookup(key); ok {
		var out []string
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		*dst = out
	}
}
