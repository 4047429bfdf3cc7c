package confs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	PasswordModePlaintext = "plaintext"
	PasswordModeBcrypt    = "bcrypt"
)

type Config struct {
	Port string `envconfig:"PORT" default:"3536"`

	// Storage
	StoreDriver string `envconfig:"STORE_DRIVER" default:"memory"`
	DBURL       string `envconfig:"DB_URL"`
	DBHost      string `envconfig:"DB_HOST"`
	DBPort      string `envconfig:"DB_PORT"`
	DBUser      string `envconfig:"DB_USER"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"agriconnect.db"`
	DBLogSQL    bool   `envconfig:"DB_LOG_SQL" default:"false"`

	// Behaviour
	PasswordMode           string   `envconfig:"AUTH_PASSWORD_MODE" default:"plaintext"`
	StrictOrderTransitions bool     `envconfig:"ORDER_STRICT_TRANSITIONS" default:"true"`
	SeedDemoData           bool     `envconfig:"SEED_DEMO_DATA" default:"true"`
	CORSAllowOrigins       []string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`

	// Integrations
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"agriconnect.events"`
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Location tracking
	TrackingInterval time.Duration `envconfig:"TRACKING_INTERVAL" default:"5s"`
	TrackingHistory  int           `envconfig:"TRACKING_HISTORY" default:"50"`
}

// LoadConfig loads environment variables from a .env file if present
// and decodes them into a Config.
func LoadConfig() (Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q (want memory, postgres or sqlite)", c.StoreDriver)
	}
	switch c.PasswordMode {
	case PasswordModePlaintext, PasswordModeBcrypt:
	default:
		return fmt.Errorf("unsupported AUTH_PASSWORD_MODE %q (want plaintext or bcrypt)", c.PasswordMode)
	}
	if c.TrackingInterval <= 0 {
		return errors.New("TRACKING_INTERVAL must be positive")
	}
	if c.TrackingHistory <= 0 {
		return errors.New("TRACKING_HISTORY must be positive")
	}
	return nil
}
