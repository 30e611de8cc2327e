package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	Redis       RedisConfig
	Logger      LoggerConfig
	UpdateToken UpdateTokenConfig
	RateLimit   RateLimitConfig
	Quiz        QuizConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	Host                   string
	Port                   int
	User                   string
	Password               string
	DBName                 string
	SSLMode                string
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeMinutes int
}

type RedisConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
}

type LoggerConfig struct {
	Level string
	Env   string
}

// UpdateTokenConfig configures the HMAC update-token protocol. Secret has no
// default; minting fails without it rather than signing with an empty key.
type UpdateTokenConfig struct {
	Secret string
	TTL    time.Duration
}

type RateLimitConfig struct {
	SubmitLimit  int
	UpdateLimit  int
	WindowLength time.Duration
}

type QuizConfig struct {
	ActiveVersion string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("db.sslmode", "require")
	viper.SetDefault("db.max_open_conns", 10)
	viper.SetDefault("db.max_idle_conns", 5)
	viper.SetDefault("db.conn_max_lifetime_minutes", 30)
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("update_token.ttl_hours", 24)
	viper.SetDefault("rate_limit.submit_per_minute", 5)
	viper.SetDefault("rate_limit.update_per_minute", 10)
	viper.SetDefault("quiz.active_version", "v1")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional; environment variables can carry
		// the whole configuration in serverless deployments.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			SSLMode:  viper.GetString("db.sslmode"),

			MaxOpenConns:           viper.GetInt("db.max_open_conns"),
			MaxIdleConns:           viper.GetInt("db.max_idle_conns"),
			ConnMaxLifetimeMinutes: viper.GetInt("db.conn_max_lifetime_minutes"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("redis.enabled"),
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		UpdateToken: UpdateTokenConfig{
			Secret: viper.GetString("update_token.secret"),
			TTL:    viper.GetDuration("update_token.ttl_hours") * time.Hour,
		},
		RateLimit: RateLimitConfig{
			SubmitLimit:  viper.GetInt("rate_limit.submit_per_minute"),
			UpdateLimit:  viper.GetInt("rate_limit.update_per_minute"),
			WindowLength: time.Minute,
		},
		Quiz: QuizConfig{
			ActiveVersion: viper.GetString("quiz.active_version"),
		},
	}

	// Environment overrides for deployment platforms that only inject env vars.
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
		config.Redis.Enabled = true
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if secret := os.Getenv("UPDATE_TOKEN_SECRET"); secret != "" {
		config.UpdateToken.Secret = secret
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}

	return config, nil
}

// GetDSN builds the Postgres connection string for the hosted store.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}
