package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	ServiceName string          `mapstructure:"service_name"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Queue       QueueConfig     `mapstructure:"queue"`
	Auth        AuthConfig      `mapstructure:"auth"`
	Log         LogConfig       `mapstructure:"log"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	CORS        CORSConfig      `mapstructure:"cors"`
	Worker      WorkerConfig    `mapstructure:"worker"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	URI      string `mapstructure:"uri"`
	Name     string `mapstructure:"name"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// QueueConfig points at the redis instance carrying change events.
// An empty Host disables publishing.
type QueueConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Channel  string `mapstructure:"channel"`
}

func (q QueueConfig) Enabled() bool { return q.Host != "" }

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	CookieKey string `mapstructure:"cookie_key"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type WorkerConfig struct {
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
	Retention     time.Duration `mapstructure:"retention"`
}

// env lists the variables the deployment scripts already export.
type env struct {
	DBURI       string `envconfig:"DB_URI"`
	DBDriver    string `envconfig:"DB_DRIVER"`
	Port        int    `envconfig:"PORT"`
	CookieKey   string `envconfig:"COOKIE_KEY"`
	ServiceName string `envconfig:"SERVICE_NAME"`
	QueueHost   string `envconfig:"QUEUE_HOST"`
	QueuePort   int    `envconfig:"QUEUE_PORT"`
	JWTSecret   string `envconfig:"JWT_SECRET"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "hms-be")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.max_body_bytes", 50<<20)
	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.uri", "mongodb://localhost:27017/hms")
	v.SetDefault("database.name", "hms")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.channel", "data_ingestion")
	v.SetDefault("log.level", "info")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("worker.purge_interval", time.Hour)
	v.SetDefault("worker.retention", 30*24*time.Hour)
}

// LoadConfig reads config.yaml from paths (default "." and "./config") when present,
// then applies environment overrides.
func LoadConfig(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var e env
	if err := envconfig.Process("", &e); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.applyEnv(e)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv(e env) {
	if e.DBURI != "" {
		c.Database.URI = e.DBURI
	}
	if e.DBDriver != "" {
		c.Database.Driver = e.DBDriver
	}
	if e.Port != 0 {
		c.Server.Port = e.Port
	}
	if e.CookieKey != "" {
		c.Auth.CookieKey = e.CookieKey
	}
	if e.ServiceName != "" {
		c.ServiceName = e.ServiceName
	}
	if e.QueueHost != "" {
		c.Queue.Host = e.QueueHost
	}
	if e.QueuePort != 0 {
		c.Queue.Port = e.QueuePort
	}
	if e.JWTSecret != "" {
		c.Auth.JWTSecret = e.JWTSecret
	}
	if e.LogLevel != "" {
		c.Log.Level = e.LogLevel
	}
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMongo, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
