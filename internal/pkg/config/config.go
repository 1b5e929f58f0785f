package config

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=warn" validate:"oneof=trace debug info warn warning error"`

	Storage StorageConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	HTTP    HTTPConfig
}

type StorageConfig struct {
	Backend     string `env:"STORAGE_BACKEND, default=file" validate:"oneof=file mongo"`
	LoanBackend string `env:"LOAN_BACKEND,    default=file" validate:"oneof=file mongo redis"`
	BooksFile   string `env:"BOOKS_FILE,      default=books.txt" validate:"required"`
	UsersFile   string `env:"USERS_FILE,      default=users.txt" validate:"required"`
	LoansFile   string `env:"LOANS_FILE,      default=loans.txt" validate:"required"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=library"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	DB       int    `env:"REDIS_DB,        default=0"`
	LoansKey string `env:"REDIS_LOANS_KEY, default=library:loans"`
}

type HTTPConfig struct {
	Enabled               bool   `env:"HTTP_ENABLED, default=false"`
	Port                  string `env:"PORT,         default=8080"`
	JWTSecret             string `env:"JWT_SECRET" validate:"required_if=Enabled true"`
	LibrarianName         string `env:"LIBRARIAN_NAME, default=librarian"`
	LibrarianPasswordHash string `env:"LIBRARIAN_PASSWORD_HASH"`
}

// UsesMongo reports whether any store is backed by MongoDB.
func (c *Config) UsesMongo() bool {
	return c.Storage.Backend == "mongo" || c.Storage.LoanBackend == "mongo"
}

// UsesRedis reports whether any store is backed by Redis.
func (c *Config) UsesRedis() bool {
	return c.Storage.LoanBackend == "redis"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return &cfg, nil
}
