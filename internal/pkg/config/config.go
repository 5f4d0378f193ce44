package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// DefaultEnvFile is read by LoadEnvFile when no path is given.
const DefaultEnvFile = ".env"

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Session SessionConfig
	Store   StoreConfig
	Nav     NavConfig
	Admin   AdminConfig
	Audit   AuditConfig

	Mongo MongoConfig
	Redis RedisConfig
}

type SessionConfig struct {
	// Secret switches the slot encoding to a signed token when set.
	Secret string `env:"SESSION_SECRET"`
	Key    string `env:"SESSION_KEY, default=stockflow.user"`
}

type StoreConfig struct {
	Backend    string `env:"STORE_BACKEND,     default=file"`
	FilePath   string `env:"STORE_FILE_PATH,   default=data/storage.json"`
	SQLitePath string `env:"STORE_SQLITE_PATH, default=data/stockflow.db"`
}

type NavConfig struct {
	LabelSet   string `env:"NAV_LABEL_SET,   default=workspace"`
	LabelsFile string `env:"NAV_LABELS_FILE"`
}

type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME"`
	Password string `env:"ADMIN_PASSWORD"`
	Name     string `env:"ADMIN_NAME, default=Administrator"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=2"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=stockflow"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR,       default=localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB,         default=0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX, default=stockflow:"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEnvFile copies the variables of a dotenv file into the process
// environment without overriding variables that are already set. A missing
// DefaultEnvFile is not an error; a missing explicit path is.
func LoadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// MustLoad is Load for process startup: it panics on error.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(err)
	}
	return cfg
}

// Production reports whether the service runs in a production environment.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendSQLite, BackendRedis, BackendMongo:
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.Store.Backend)
	}
	return nil
}
