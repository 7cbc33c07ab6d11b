package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Supported document store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverRedis    = "redis"
	DriverSanity   = "sanity"
)

type Config struct {
	App        AppConfig
	DocStore   DocStoreConfig
	DB         DBConfig
	Redis      RedisConfig
	Mongo      MongoConfig
	Sanity     SanityConfig
	Identity   IdentityConfig
	Onboarding OnboardingConfig
	Notifier   NotifierConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DocStoreConfig struct {
	Driver string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Migrate  bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type SanityConfig struct {
	ProjectID  string
	Dataset    string
	Token      string
	APIVersion string
	Timeout    time.Duration
}

// IdentityConfig describes how session tokens issued by the identity
// provider are verified. PublicKey takes precedence over Secret.
type IdentityConfig struct {
	Secret      string
	PublicKey   string
	Issuer      string
	TokenExpiry time.Duration
}

type OnboardingConfig struct {
	StrictWrites          bool
	CompleteRedirectDelay time.Duration
	WizardSessionTTL      time.Duration
}

type NotifierConfig struct {
	ResendAPIKey string
	From         string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DOCSTORE_DRIVER", DriverMemory)
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MIGRATE", true)
	viper.SetDefault("MONGO_DATABASE", "nueracare")
	viper.SetDefault("MONGO_COLLECTION", "documents")
	viper.SetDefault("SANITY_DATASET", "production")
	viper.SetDefault("SANITY_API_VERSION", "2024-01-01")
	viper.SetDefault("RESEND_FROM", "NueraCare <hello@nueracare.app>")

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Port:     viper.GetString("APP_PORT"),
			Env:      viper.GetString("APP_ENV"),
			LogLevel: viper.GetString("LOG_LEVEL"),
		},
		DocStore: DocStoreConfig{
			Driver: viper.GetString("DOCSTORE_DRIVER"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			Migrate:  viper.GetBool("DB_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Mongo: MongoConfig{
			URI:        viper.GetString("MONGO_URI"),
			Database:   viper.GetString("MONGO_DATABASE"),
			Collection: viper.GetString("MONGO_COLLECTION"),
		},
		Sanity: SanityConfig{
			ProjectID:  viper.GetString("SANITY_PROJECT_ID"),
			Dataset:    viper.GetString("SANITY_DATASET"),
			Token:      viper.GetString("SANITY_TOKEN"),
			APIVersion: viper.GetString("SANITY_API_VERSION"),
			Timeout:    durationOr(viper.GetString("SANITY_TIMEOUT"), 10*time.Second),
		},
		Identity: IdentityConfig{
			Secret:      viper.GetString("IDENTITY_JWT_SECRET"),
			PublicKey:   viper.GetString("IDENTITY_JWT_PUBLIC_KEY"),
			Issuer:      viper.GetString("IDENTITY_ISSUER"),
			TokenExpiry: durationOr(viper.GetString("IDENTITY_TOKEN_EXPIRY"), time.Hour),
		},
		Onboarding: OnboardingConfig{
			StrictWrites:          viper.GetBool("ONBOARDING_STRICT_WRITES"),
			CompleteRedirectDelay: durationOr(viper.GetString("ONBOARDING_COMPLETE_REDIRECT_DELAY"), 3*time.Second),
			WizardSessionTTL:      durationOr(viper.GetString("WIZARD_SESSION_TTL"), 30*time.Minute),
		},
		Notifier: NotifierConfig{
			ResendAPIKey: viper.GetString("RESEND_API_KEY"),
			From:         viper.GetString("RESEND_FROM"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the keys required by the selected driver are present.
func (c *Config) Validate() error {
	if c.Identity.Secret == "" && c.Identity.PublicKey == "" {
		return errors.New("IDENTITY_JWT_SECRET or IDENTITY_JWT_PUBLIC_KEY is required")
	}

	switch c.DocStore.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.DB.Host == "" || c.DB.Name == "" {
			return errors.New("DB_HOST and DB_NAME are required for the postgres driver")
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			return errors.New("MONGO_URI is required for the mongo driver")
		}
	case DriverRedis:
		if c.Redis.Host == "" {
			return errors.New("REDIS_HOST is required for the redis driver")
		}
	case DriverSanity:
		if c.Sanity.ProjectID == "" || c.Sanity.Token == "" {
			return errors.New("SANITY_PROJECT_ID and SANITY_TOKEN are required for the sanity driver")
		}
	default:
		return fmt.Errorf("unknown DOCSTORE_DRIVER %q", c.DocStore.Driver)
	}

	return nil
}

func durationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
