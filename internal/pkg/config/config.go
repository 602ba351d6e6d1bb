package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets, etc.)
// - default: Values common across all environments (timezone, timeout, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	Backend    BackendConfig
	Venue      VenueConfig
	Session    SessionConfig
	Cookie     CookieConfig
	Catalog    CatalogConfig
	Submission SubmissionConfig
	Admin      AdminConfig
	Redis      RedisConfig
	DB         DBConfig
	Tracing    TracingConfig
	CORS       CORSConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type BackendConfig struct {
	BaseURL string        `envconfig:"BACKEND_BASE_URL" default:"http://localhost:8080/api"`
	Timeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"10s"`
}

type VenueConfig struct {
	TimeZone             string `envconfig:"VENUE_TIMEZONE" default:"Africa/Dar_es_Salaam"`
	DefaultCountryPrefix string `envconfig:"DEFAULT_COUNTRY_PREFIX" default:"+255"`
}

type SessionConfig struct {
	Secret string        `envconfig:"SESSION_SECRET" required:"true"`
	TTL    time.Duration `envconfig:"SESSION_TTL" default:"2h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"5m"`
}

// LockTTL bounds how long one session submit may hold its lock. It also
// bounds how long an unfinished Idempotency-Key stays claimed.
type SubmissionConfig struct {
	LockTTL        time.Duration `envconfig:"SUBMIT_LOCK_TTL" default:"1m"`
	IdempotencyTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
}

// An empty Token disables the operator endpoints.
type AdminConfig struct {
	Token string `envconfig:"ADMIN_TOKEN" default:""`
}

type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Prefix   string `envconfig:"REDIS_PREFIX" default:"arenahub"`
}

type DBConfig struct {
	Enabled  bool   `envconfig:"DB_ENABLED" default:"false"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"arenahub"`
	Password string `envconfig:"DB_PASSWORD" default:""`
	DBName   string `envconfig:"DB_NAME" default:"arenahub"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Africa/Dar_es_Salaam"`
}

type TracingConfig struct {
	Enabled     bool   `envconfig:"TRACING_ENABLED" default:"false"`
	Endpoint    string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"arenahub-booking"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"EAT"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"10800"` // 3*60*60
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *VenueConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid VENUE_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Backend: BackendConfig{
			BaseURL: "http://localhost:18080/api",
			Timeout: 2 * time.Second,
		},
		Venue: VenueConfig{
			TimeZone:             "Africa/Dar_es_Salaam",
			DefaultCountryPrefix: "+255",
		},
		Session: SessionConfig{
			Secret: "test-session-secret",
			TTL:    time.Hour,
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Catalog: CatalogConfig{
			CacheTTL: time.Minute,
		},
		Submission: SubmissionConfig{
			LockTTL:        time.Minute,
			IdempotencyTTL: time.Hour,
		},
		Admin: AdminConfig{
			Token: "test-admin-token",
		},
		Redis: RedisConfig{
			Prefix: "arenahub-test",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Africa/Dar_es_Salaam",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "EAT",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 10800,
		},
	}
}
