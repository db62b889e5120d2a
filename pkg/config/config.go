package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Portal   PortalConfig
	Policy   PolicyConfig
	Sync     SyncConfig
	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Export   ExportConfig
	History  HistoryConfig
}

// PortalConfig locates the intranet portal pages the service scrapes.
// Page paths are fixed to the portal's known layout; they are configurable
// only so a staging mirror can be pointed at.
type PortalConfig struct {
	BaseURL          string
	AttendancePath   string
	PersonalPath     string
	RequestTimeout   time.Duration
	VerifyTLS        bool
	DisablePagingArg string
}

// PolicyConfig carries the overtime policy constants. Break and workday
// values are minutes, the daily cap is hours, the standard start is an hour
// of day.
type PolicyConfig struct {
	LunchBreakMinutes int
	WorkdayMinutes    int
	RestMinutes       int
	MaxOvertimeHours  float64
	StandardStartHour int
}

// SyncConfig tunes snapshot cache behaviour.
type SyncConfig struct {
	FreshnessWindow  time.Duration
	SnapshotStoreTTL time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ExportConfig controls report export rendering and storage.
type ExportConfig struct {
	StorageDir     string
	FilenamePrefix string
}

// HistoryConfig toggles persistence of per-sync statistics rows.
type HistoryConfig struct {
	Enabled bool
	Limit   int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Portal = PortalConfig{
		BaseURL:          v.GetString("PORTAL_BASE_URL"),
		AttendancePath:   v.GetString("PORTAL_ATTENDANCE_PATH"),
		PersonalPath:     v.GetString("PORTAL_PERSONAL_PATH"),
		RequestTimeout:   parseDuration(v.GetString("PORTAL_REQUEST_TIMEOUT"), 30*time.Second),
		VerifyTLS:        v.GetBool("PORTAL_VERIFY_TLS"),
		DisablePagingArg: v.GetString("PORTAL_DISABLE_PAGING_ARG"),
	}

	cfg.Policy = PolicyConfig{
		LunchBreakMinutes: v.GetInt("POLICY_LUNCH_BREAK_MINUTES"),
		WorkdayMinutes:    v.GetInt("POLICY_WORKDAY_MINUTES"),
		RestMinutes:       v.GetInt("POLICY_REST_MINUTES"),
		MaxOvertimeHours:  v.GetFloat64("POLICY_MAX_OVERTIME_HOURS"),
		StandardStartHour: v.GetInt("POLICY_STANDARD_START_HOUR"),
	}

	cfg.Sync = SyncConfig{
		FreshnessWindow:  parseDuration(v.GetString("SYNC_FRESHNESS_WINDOW"), 5*time.Minute),
		SnapshotStoreTTL: parseDuration(v.GetString("SYNC_SNAPSHOT_STORE_TTL"), time.Hour),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Export = ExportConfig{
		StorageDir:     v.GetString("EXPORT_STORAGE_DIR"),
		FilenamePrefix: v.GetString("EXPORT_FILENAME_PREFIX"),
	}

	cfg.History = HistoryConfig{
		Enabled: v.GetBool("ENABLE_SYNC_HISTORY"),
		Limit:   v.GetInt("SYNC_HISTORY_LIMIT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("PORTAL_BASE_URL", "https://ssp.example.com.tw")
	v.SetDefault("PORTAL_ATTENDANCE_PATH", "/FW99001Z.aspx")
	v.SetDefault("PORTAL_PERSONAL_PATH", "/FW21003Z.aspx")
	v.SetDefault("PORTAL_REQUEST_TIMEOUT", "30s")
	v.SetDefault("PORTAL_VERIFY_TLS", false)
	v.SetDefault("PORTAL_DISABLE_PAGING_ARG", "9999")

	v.SetDefault("POLICY_LUNCH_BREAK_MINUTES", 70)
	v.SetDefault("POLICY_WORKDAY_MINUTES", 480)
	v.SetDefault("POLICY_REST_MINUTES", 30)
	v.SetDefault("POLICY_MAX_OVERTIME_HOURS", 4)
	v.SetDefault("POLICY_STANDARD_START_HOUR", 9)

	v.SetDefault("SYNC_FRESHNESS_WINDOW", "300s")
	v.SetDefault("SYNC_SNAPSHOT_STORE_TTL", "1h")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "overtime_sync")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("EXPORT_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORT_FILENAME_PREFIX", "overtime_report")

	v.SetDefault("ENABLE_SYNC_HISTORY", false)
	v.SetDefault("SYNC_HISTORY_LIMIT", 50)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
