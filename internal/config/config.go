package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	viper "github.com/spf13/viper"
)

/*
把init跟read分開
init : 需要設置viper watch 與 onConfigChange
read : 一般讀取 需要使用讀寫鎖
*/
var configSingleton *ConfigSingleton
var muonce sync.Once

type ConfigSingleton struct {
	config *Config
	mu     sync.RWMutex
}

type Config struct {
	AppEnv     string `mapstructure:"APP_ENV"`
	ServerPort string `mapstructure:"SERVER_PORT"`

	DbName       string `mapstructure:"POSTGRES_DB"`
	DbHost       string `mapstructure:"POSTGRES_HOST"`
	DbPort       string `mapstructure:"POSTGRES_PORT"`
	DbUser       string `mapstructure:"POSTGRES_USER"`
	DbPas        string `mapstructure:"POSTGRES_PASSWORD"`
	MigrationURL string `mapstructure:"MIGRATION_URL"`

	CatalogSeedPath string `mapstructure:"CATALOG_SEED_PATH"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	KafkaBrokers    string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic string `mapstructure:"KAFKA_ORDER_TOPIC"`

	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogKafkaTopic string `mapstructure:"LOG_KAFKA_TOPIC"`

	AuthTokenKey string `mapstructure:"AUTH_TOKEN_KEY"`

	StripeSecretKey     string        `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string        `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	FrontendURL         string        `mapstructure:"FRONTEND_URL"`
	PaymentCurrency     string        `mapstructure:"PAYMENT_CURRENCY"`
	GatewayTimeout      time.Duration `mapstructure:"GATEWAY_TIMEOUT"`

	CheckoutRateCapacity  int `mapstructure:"CHECKOUT_RATE_CAPACITY"`
	CheckoutRatePerSecond int `mapstructure:"CHECKOUT_RATE_PER_SECOND"`

	WebhookEventTTL time.Duration `mapstructure:"WEBHOOK_EVENT_TTL"`
}

func (c *Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// viper 的 Unmarshal 只認得有註冊過的 key, 純環境變數部署也要先設預設值
var defaults = map[string]any{
	"APP_ENV":                  "production",
	"SERVER_PORT":              "8080",
	"POSTGRES_DB":              "foodorder",
	"POSTGRES_HOST":            "localhost",
	"POSTGRES_PORT":            "5432",
	"POSTGRES_USER":            "postgres",
	"POSTGRES_PASSWORD":        "",
	"MIGRATION_URL":            "file://internal/infra/repository/db/migrations",
	"CATALOG_SEED_PATH":        "",
	"REDIS_ADDR":               "",
	"REDIS_PASSWORD":           "",
	"REDIS_DB":                 0,
	"KAFKA_BROKERS":            "",
	"KAFKA_ORDER_TOPIC":        "order-events",
	"LOG_LEVEL":                "info",
	"LOG_KAFKA_TOPIC":          "",
	"AUTH_TOKEN_KEY":           "",
	"STRIPE_SECRET_KEY":        "",
	"STRIPE_WEBHOOK_SECRET":    "",
	"FRONTEND_URL":             "http://localhost:5173",
	"PAYMENT_CURRENCY":         "inr",
	"GATEWAY_TIMEOUT":          "10s",
	"CHECKOUT_RATE_CAPACITY":   5,
	"CHECKOUT_RATE_PER_SECOND": 1,
	"WEBHOOK_EVENT_TTL":        "72h",
}

func GetConfig() *Config {
	initConfig()
	configSingleton.mu.RLock()
	defer configSingleton.mu.RUnlock()
	return configSingleton.config
}

func initConfig() {
	muonce.Do(func() {
		configSingleton = &ConfigSingleton{}
		path := configPath()
		cf, err := LoadConfig(path)
		if err != nil {
			log.Fatalf("error read config: %v", err)
		}
		configSingleton.config = cf

		if _, err := os.Stat(path); err != nil {
			return
		}
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			cf, err := LoadConfig(path)
			if err != nil {
				log.Printf("failed to reload config file %s: %v", e.Name, err)
				return
			}
			configSingleton.mu.Lock()
			configSingleton.config = cf
			configSingleton.mu.Unlock()
		})
	})
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return ".env"
}

/*
單純回傳錯誤 由外部決定要不要Fatal
.env 不存在時只讀環境變數
*/
func LoadConfig(path string) (*Config, error) {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cf := &Config{}
	if err := viper.Unmarshal(cf); err != nil {
		return nil, err
	}
	return cf, nil
}
