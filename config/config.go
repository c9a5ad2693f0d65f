package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Redis configuration (wizard session store).
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Collaborator base URLs.
	ScheduleAPIBase string `mapstructure:"SCHEDULE_API_BASE"`
	CatalogAPIBase  string `mapstructure:"CATALOG_API_BASE"`
	CheckoutAPIBase string `mapstructure:"CHECKOUT_API_BASE"`

	// Checkout provider: "site" (the platform's own checkout collaborator)
	// or "stripe".
	CheckoutProvider string `mapstructure:"CHECKOUT_PROVIDER"`
	StripeKey        string `mapstructure:"STRIPE_KEY"`

	// Where a 401 from checkout sends the user.
	SignUpURL string `mapstructure:"SIGNUP_URL"`
	// Bases for the return/cancel URLs passed to checkout.
	ReturnURLBase string `mapstructure:"RETURN_URL_BASE"`
	CancelURLBase string `mapstructure:"CANCEL_URL_BASE"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Wizard session TTL in minutes.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`

	// Bounded size of the catalog list cache.
	CatalogCacheSize int `mapstructure:"CATALOG_CACHE_SIZE"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("SCHEDULE_API_BASE", "http://localhost:9001")
	viper.SetDefault("CATALOG_API_BASE", "http://localhost:9002")
	viper.SetDefault("CHECKOUT_API_BASE", "http://localhost:9003")
	viper.SetDefault("CHECKOUT_PROVIDER", "site")
	viper.SetDefault("SIGNUP_URL", "/signup")
	viper.SetDefault("RETURN_URL_BASE", "http://localhost:3000/booking/return")
	viper.SetDefault("CANCEL_URL_BASE", "http://localhost:3000/booking/cancel")
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("CATALOG_CACHE_SIZE", 256)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SessionTTL returns the wizard session lifetime.
func SessionTTL() time.Duration {
	if AppConfig.SessionTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(AppConfig.SessionTTLMinutes) * time.Minute
}
