package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Log       LogConfig
	Tracing   TracingConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Store     StoreConfig
	Analysis  AnalysisConfig
	Timeline  TimelineConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Version     string
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
	Issuer         string
}

type LogConfig struct {
	Level      string
	Format     string
	OutputPath string
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Endpoint    string
	SampleRate  float64
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         time.Duration
}

type RateLimitConfig struct {
	// Per client (user id, falling back to IP)
	RequestsPerSecond float64
	BurstSize         int
}

// StoreConfig bounds every read against the record store.
type StoreConfig struct {
	FetchTimeout     time.Duration
	BreakerFailures  uint32
	BreakerOpenFor   time.Duration
	BreakerHalfOpen  uint32
	BreakerResetEach time.Duration
}

type AnalysisConfig struct {
	// Empty endpoint disables prescription analysis.
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type TimelineConfig struct {
	RecordImportance string
	TrendWindow      int
}

// Load reads configuration from defaults, an optional config file and the
// environment, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Environment: v.GetString("APP_ENV"),
			Version:     v.GetString("APP_VERSION"),
		},
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("SERVER_IDLE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			Name:            v.GetString("DB_NAME"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
		JWT: JWTConfig{
			Secret:         v.GetString("JWT_SECRET"),
			AccessTokenTTL: v.GetDuration("JWT_ACCESS_TTL"),
			Issuer:         v.GetString("JWT_ISSUER"),
		},
		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			Format:     v.GetString("LOG_FORMAT"),
			OutputPath: v.GetString("LOG_OUTPUT"),
		},
		Tracing: TracingConfig{
			Enabled:     v.GetBool("TRACING_ENABLED"),
			ServiceName: v.GetString("TRACING_SERVICE_NAME"),
			Endpoint:    v.GetString("OTLP_ENDPOINT"),
			SampleRate:  v.GetFloat64("TRACING_SAMPLE_RATE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getSlice(v, "CORS_ALLOWED_ORIGINS"),
			AllowedMethods: getSlice(v, "CORS_ALLOWED_METHODS"),
			AllowedHeaders: getSlice(v, "CORS_ALLOWED_HEADERS"),
			MaxAge:         v.GetDuration("CORS_MAX_AGE"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			BurstSize:         v.GetInt("RATE_LIMIT_BURST"),
		},
		Store: StoreConfig{
			FetchTimeout:     v.GetDuration("STORE_FETCH_TIMEOUT"),
			BreakerFailures:  v.GetUint32("STORE_BREAKER_FAILURES"),
			BreakerOpenFor:   v.GetDuration("STORE_BREAKER_OPEN_FOR"),
			BreakerHalfOpen:  v.GetUint32("STORE_BREAKER_HALF_OPEN_REQUESTS"),
			BreakerResetEach: v.GetDuration("STORE_BREAKER_RESET_INTERVAL"),
		},
		Analysis: AnalysisConfig{
			Endpoint: v.GetString("ANALYSIS_ENDPOINT"),
			APIKey:   v.GetString("ANALYSIS_API_KEY"),
			Timeout:  v.GetDuration("ANALYSIS_TIMEOUT"),
		},
		Timeline: TimelineConfig{
			RecordImportance: v.GetString("TIMELINE_RECORD_IMPORTANCE"),
			TrendWindow:      v.GetInt("TIMELINE_TREND_WINDOW"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "medtimeline-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_VERSION", "0.0.0")

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 60*time.Second)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_NAME", "medtimeline")
	v.SetDefault("DB_USER", "medtimeline")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 5*time.Minute)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ACCESS_TTL", 15*time.Minute)
	v.SetDefault("JWT_ISSUER", "medtimeline-api")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_OUTPUT", "stdout")

	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "medtimeline-api")
	v.SetDefault("OTLP_ENDPOINT", "otel-collector:4318")
	v.SetDefault("TRACING_SAMPLE_RATE", 0.1)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "Authorization,Content-Type,X-Request-ID")
	v.SetDefault("CORS_MAX_AGE", 12*time.Hour)

	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	v.SetDefault("STORE_FETCH_TIMEOUT", 5*time.Second)
	v.SetDefault("STORE_BREAKER_FAILURES", 5)
	v.SetDefault("STORE_BREAKER_OPEN_FOR", 30*time.Second)
	v.SetDefault("STORE_BREAKER_HALF_OPEN_REQUESTS", 1)
	v.SetDefault("STORE_BREAKER_RESET_INTERVAL", time.Minute)

	v.SetDefault("ANALYSIS_ENDPOINT", "")
	v.SetDefault("ANALYSIS_API_KEY", "")
	v.SetDefault("ANALYSIS_TIMEOUT", 60*time.Second)

	v.SetDefault("TIMELINE_RECORD_IMPORTANCE", "medium")
	v.SetDefault("TIMELINE_TREND_WINDOW", 6)
}

// validate enforces production security requirements and sane timeline settings.
func validate(cfg *Config) error {
	var errs []string

	if cfg.JWT.Secret == "" {
		errs = append(errs, "JWT_SECRET is required")
	} else if len(cfg.JWT.Secret) < 32 && cfg.App.Environment == "production" {
		errs = append(errs, "JWT_SECRET must be at least 32 characters in production")
	}

	if cfg.Database.Password == "" && cfg.App.Environment != "development" {
		errs = append(errs, "DB_PASSWORD is required in non-development environments")
	}

	if cfg.Database.SSLMode == "disable" && cfg.App.Environment == "production" {
		errs = append(errs, "DB_SSLMODE=disable is not allowed in production")
	}

	switch cfg.Timeline.RecordImportance {
	case "low", "medium":
	default:
		errs = append(errs, "TIMELINE_RECORD_IMPORTANCE must be one of: low, medium")
	}

	if cfg.Timeline.TrendWindow <= 0 {
		errs = append(errs, "TIMELINE_TREND_WINDOW must be positive")
	}

	if cfg.Store.FetchTimeout <= 0 {
		errs = append(errs, "STORE_FETCH_TIMEOUT must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func getSlice(v *viper.Viper, key string) []string {
	parts := strings.Split(v.GetString(key), ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			result = append(result, t)
		}
	}
	return result
}
