package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Dedup     DedupConfig     `mapstructure:"dedup"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	LogLevel  string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// StoreConfig 食譜儲存層配置
type StoreConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	RedisAddr string `mapstructure:"redis_addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// AuthConfig 身份服務配置
type AuthConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DedupConfig 去重比對配置
// 門檻為策略常數，預設值即演算法規格值，可調整但不建議偏離太遠
type DedupConfig struct {
	TitleSimilarity   float64 `mapstructure:"title_similarity"`
	MinFieldMatches   int     `mapstructure:"min_field_matches"`
	IngredientOverlap float64 `mapstructure:"ingredient_overlap"`
	// RequestWindow 重複提交攔截視窗（HTTP 層，與內容比對無關）
	RequestWindow time.Duration `mapstructure:"request_window"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件
	if err := godotenv.Load(); err != nil {
		return nil, err
	}

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("store.enabled", "STORE_ENABLED")
	viper.BindEnv("store.redis_addr", "REDIS_ADDR")
	viper.BindEnv("store.password", "REDIS_PASSWORD")
	viper.BindEnv("auth.enabled", "AUTH_ENABLED")
	viper.BindEnv("auth.base_url", "AUTH_BASE_URL")
	viper.BindEnv("auth.api_key", "AUTH_API_KEY")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "recipe-manager")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// 儲存層設定
	viper.SetDefault("store.enabled", true)
	viper.SetDefault("store.redis_addr", "localhost:6379")
	viper.SetDefault("store.password", "")
	viper.SetDefault("store.db", 0)
	viper.SetDefault("store.key_prefix", "recipe")

	// 身份服務設定
	viper.SetDefault("auth.enabled", false)
	viper.SetDefault("auth.base_url", "http://localhost:9000")
	viper.SetDefault("auth.timeout", "10s")

	// 去重比對設定
	viper.SetDefault("dedup.title_similarity", 0.8)
	viper.SetDefault("dedup.min_field_matches", 3)
	viper.SetDefault("dedup.ingredient_overlap", 0.9)
	viper.SetDefault("dedup.request_window", "1s")

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證儲存層設定
	if config.Store.Enabled && config.Store.RedisAddr == "" {
		return fmt.Errorf("redis addr is required when store is enabled")
	}

	// 驗證身份服務設定
	if config.Auth.Enabled && config.Auth.BaseURL == "" {
		return fmt.Errorf("auth base url is required when auth is enabled")
	}

	// 驗證去重比對設定
	if config.Dedup.TitleSimilarity <= 0 || config.Dedup.TitleSimilarity > 1 {
		return fmt.Errorf("invalid dedup title similarity threshold")
	}
	if config.Dedup.MinFieldMatches < 0 || config.Dedup.MinFieldMatches > 4 {
		return fmt.Errorf("invalid dedup min field matches")
	}
	if config.Dedup.IngredientOverlap <= 0 || config.Dedup.IngredientOverlap > 1 {
		return fmt.Errorf("invalid dedup ingredient overlap threshold")
	}

	return nil
}
