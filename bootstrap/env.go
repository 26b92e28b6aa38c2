package bootstrap

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Env struct {
	AppEnv                string  `mapstructure:"APP_ENV"`
	ServerAddress         string  `mapstructure:"SERVER_ADDRESS"`
	ContextTimeout        int     `mapstructure:"CONTEXT_TIMEOUT"`
	DBHost                string  `mapstructure:"DB_HOST"`
	DBPort                string  `mapstructure:"DB_PORT"`
	DBUser                string  `mapstructure:"DB_USER"`
	DBPass                string  `mapstructure:"DB_PASS"`
	DBName                string  `mapstructure:"DB_NAME"`
	AccessTokenExpiryHour int     `mapstructure:"ACCESS_TOKEN_EXPIRY_HOUR"`
	AccessTokenSecret     string  `mapstructure:"ACCESS_TOKEN_SECRET"`
	CatalogBaseURL        string  `mapstructure:"CATALOG_BASE_URL"`
	FetchTimeout          int     `mapstructure:"FETCH_TIMEOUT"`
	FetchRateLimit        float64 `mapstructure:"FETCH_RATE_LIMIT"`
	FetchRetryCount       int     `mapstructure:"FETCH_RETRY_COUNT"`
	UserAgent             string  `mapstructure:"USER_AGENT"`
	StaleAfterDays        int     `mapstructure:"STALE_AFTER_DAYS"`
	RefreshStatuses       string  `mapstructure:"REFRESH_STATUSES"`
	RefreshWorkers        int     `mapstructure:"REFRESH_WORKERS"`
	RefreshTimeout        int     `mapstructure:"REFRESH_TIMEOUT"`
	EventQueueSize        int     `mapstructure:"EVENT_QUEUE_SIZE"`
	EventKeepAlive        int     `mapstructure:"EVENT_KEEPALIVE"`
	SearchCacheSize       int     `mapstructure:"SEARCH_CACHE_SIZE"`
	SearchCacheTTL        int     `mapstructure:"SEARCH_CACHE_TTL"`
	LogLevel              string  `mapstructure:"LOG_LEVEL"`
}

var envDefaults = map[string]interface{}{
	"APP_ENV":                  "development",
	"SERVER_ADDRESS":           ":8080",
	"CONTEXT_TIMEOUT":          60,
	"DB_HOST":                  "localhost",
	"DB_PORT":                  "27017",
	"DB_USER":                  "",
	"DB_PASS":                  "",
	"DB_NAME":                  "metalvault",
	"ACCESS_TOKEN_EXPIRY_HOUR": 744,
	"ACCESS_TOKEN_SECRET":      "",
	"CATALOG_BASE_URL":         "https://www.metal-archives.com",
	"FETCH_TIMEOUT":            30,
	"FETCH_RATE_LIMIT":         2.0,
	"FETCH_RETRY_COUNT":        2,
	"USER_AGENT":               "",
	"STALE_AFTER_DAYS":         15,
	"REFRESH_STATUSES":         "Active,On hold,Unknown",
	"REFRESH_WORKERS":          4,
	"REFRESH_TIMEOUT":          300,
	"EVENT_QUEUE_SIZE":         10,
	"EVENT_KEEPALIVE":          600,
	"SEARCH_CACHE_SIZE":        512,
	"SEARCH_CACHE_TTL":         600,
	"LOG_LEVEL":                "info",
}

// NewEnv 读取 .env（存在时）与环境变量，环境变量优先
func NewEnv(configFile string) (*Env, error) {
	v := viper.New()
	for key, value := range envDefaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
			slog.Debug("no config file, using environment only", "file", configFile)
		}
	}

	env := Env{}
	if err := v.Unmarshal(&env); err != nil {
		return nil, err
	}

	if env.AppEnv == "development" {
		slog.Info("the app is running in development env")
	}
	if env.AccessTokenSecret == "" {
		slog.Warn("ACCESS_TOKEN_SECRET is empty, auth endpoints issue tokens with an empty key")
	}
	return &env, nil
}

func (e *Env) IsDevelopment() bool { return e.AppEnv == "development" }

func (e *Env) ContextTimeoutDuration() time.Duration {
	return time.Duration(e.ContextTimeout) * time.Second
}

func (e *Env) AccessTokenExpiry() time.Duration {
	return time.Duration(e.AccessTokenExpiryHour) * time.Hour
}

// RefreshStatusList 逗号分隔的可刷新乐队状态
func (e *Env) RefreshStatusList() []string {
	var out []string
	for _, s := range strings.Split(e.RefreshStatuses, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (e *Env) MongoURI() string {
	if e.DBUser == "" {
		return "mongodb://" + e.DBHost + ":" + e.DBPort
	}
	return "mongodb://" + e.DBUser + ":" + e.DBPass + "@" + e.DBHost + ":" + e.DBPort
}
