package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Log         LogConfig
	HTTP        HTTPConfig
	Persistence PersistenceConfig
	Redis       RedisConfig
	Transaction TransactionConfig
	Stock       StockConfig
	Customer    CustomerConfig
	Model       ModelConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// PersistenceConfig selects the durability engine behind the record stores
type PersistenceConfig struct {
	Mode string // memory, file, redis
	Dir  string // snapshot directory for file mode
}

// RedisConfig holds redis connection settings for the redis persistence mode
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// TransactionConfig holds the optimistic-retry budget of the runner
type TransactionConfig struct {
	MaxRetries int
	Backoff    time.Duration
}

// StockConfig holds the reorder policy constants of the new-order transaction
type StockConfig struct {
	ReorderThreshold  int // fulfillments may not leave less than this on hand
	ReplenishQuantity int // added when a fulfillment would cross the threshold
}

// CustomerConfig holds customer record constraints
type CustomerConfig struct {
	DataMaxLength int // cap on the bad-credit data blob
}

// ModelConfig controls synthetic model generation at startup
type ModelConfig struct {
	Initialize            bool
	WarehouseCount        int
	DistrictsPerWarehouse int
	CustomersPerDistrict  int
	OrdersPerDistrict     int
	ProductCount          int
	CarrierCount          int
	EmployeesPerDistrict  int
	Seed                  int64 // 0 = time-based
}

// Load loads configuration from a yaml file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with WSS_ prefix (e.g., WSS_REDIS_PASSWORD)
// 2. config.yaml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("WSS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			IdleTimeout:  v.GetDuration("http.idle_timeout"),
		},
		Persistence: PersistenceConfig{
			Mode: v.GetString("persistence.mode"),
			Dir:  v.GetString("persistence.dir"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Transaction: TransactionConfig{
			MaxRetries: v.GetInt("transaction.max_retries"),
			Backoff:    v.GetDuration("transaction.backoff"),
		},
		Stock: StockConfig{
			ReorderThreshold:  v.GetInt("stock.reorder_threshold"),
			ReplenishQuantity: v.GetInt("stock.replenish_quantity"),
		},
		Customer: CustomerConfig{
			DataMaxLength: v.GetInt("customer.data_max_length"),
		},
		Model: ModelConfig{
			Initialize:            v.GetBool("model.initialize"),
			WarehouseCount:        v.GetInt("model.warehouse_count"),
			DistrictsPerWarehouse: v.GetInt("model.districts_per_warehouse"),
			CustomersPerDistrict:  v.GetInt("model.customers_per_district"),
			OrdersPerDistrict:     v.GetInt("model.orders_per_district"),
			ProductCount:          v.GetInt("model.product_count"),
			CarrierCount:          v.GetInt("model.carrier_count"),
			EmployeesPerDistrict:  v.GetInt("model.employees_per_district"),
			Seed:                  v.GetInt64("model.seed"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "wss-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.Persistence.Mode == "" {
		cfg.Persistence.Mode = "memory"
	}
	if cfg.Persistence.Dir == "" {
		cfg.Persistence.Dir = "./data"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Transaction.MaxRetries == 0 {
		cfg.Transaction.MaxRetries = 5
	}
	if cfg.Transaction.Backoff == 0 {
		cfg.Transaction.Backoff = 100 * time.Millisecond
	}
	if cfg.Stock.ReorderThreshold == 0 {
		cfg.Stock.ReorderThreshold = 10
	}
	if cfg.Stock.ReplenishQuantity == 0 {
		cfg.Stock.ReplenishQuantity = 91
	}
	if cfg.Customer.DataMaxLength == 0 {
		cfg.Customer.DataMaxLength = 500
	}
	if cfg.Model.WarehouseCount == 0 {
		cfg.Model.WarehouseCount = 2
	}
	if cfg.Model.DistrictsPerWarehouse == 0 {
		cfg.Model.DistrictsPerWarehouse = 10
	}
	if cfg.Model.CustomersPerDistrict == 0 {
		cfg.Model.CustomersPerDistrict = 30
	}
	if cfg.Model.OrdersPerDistrict == 0 {
		cfg.Model.OrdersPerDistrict = 30
	}
	if cfg.Model.ProductCount == 0 {
		cfg.Model.ProductCount = 100
	}
	if cfg.Model.CarrierCount == 0 {
		cfg.Model.CarrierCount = 10
	}
	if cfg.Model.EmployeesPerDistrict == 0 {
		cfg.Model.EmployeesPerDistrict = 1
	}
}

// validate checks the configuration for invalid combinations
func (c *Config) validate() error {
	switch c.Persistence.Mode {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("invalid persistence mode: %s (must be memory, file or redis)", c.Persistence.Mode)
	}
	if c.Transaction.MaxRetries < 0 {
		return fmt.Errorf("transaction.max_retries must not be negative")
	}
	if c.Stock.ReorderThreshold < 0 {
		return fmt.Errorf("stock.reorder_threshold must not be negative")
	}
	if c.Customer.DataMaxLength <= 0 {
		return fmt.Errorf("customer.data_max_length must be positive")
	}
	return nil
}

// RedisAddr returns the host:port address of the configured redis instance
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// IsProduction reports whether the app runs in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
