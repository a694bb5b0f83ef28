package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           int           `mapstructure:"PORT"`
	MongoURI       string        `mapstructure:"MONGO_URI"`
	MongoDatabase  string        `mapstructure:"MONGO_DB"`
	CacheDriver    string        `mapstructure:"CACHE_DRIVER"`
	CacheTTL       time.Duration `mapstructure:"CACHE_TTL"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	JWTExpiry      time.Duration `mapstructure:"JWT_EXPIRY"`
	ResetTokenTTL  time.Duration `mapstructure:"RESET_TOKEN_TTL"`
	FrontendURL    string        `mapstructure:"FRONTEND_URL"`
	SMTPHost       string        `mapstructure:"SMTP_HOST"`
	SMTPPort       int           `mapstructure:"SMTP_PORT"`
	SMTPEmail      string        `mapstructure:"SMTP_EMAIL"`
	SMTPPassword   string        `mapstructure:"SMTP_PASSWORD"`
	NATSURL        string        `mapstructure:"NATS_URL"`
	MetricsPort    string        `mapstructure:"METRICS_PORT"`
	UploadsDir     string        `mapstructure:"UPLOADS_DIR"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "classyshop")
	viper.SetDefault("CACHE_DRIVER", "memory")
	viper.SetDefault("CACHE_TTL", "1h")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("JWT_SECRET", "your-secret-key")
	viper.SetDefault("JWT_EXPIRY", "24h")
	viper.SetDefault("RESET_TOKEN_TTL", "15m")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_EMAIL", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("NATS_URL", "")
	viper.SetDefault("METRICS_PORT", "")
	viper.SetDefault("UPLOADS_DIR", "uploads")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REQUEST_TIMEOUT", "15s")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
