package db

import (
	"fmt"
	"log"
	"strings"

	"github.com/Jataveda/Agriconnect/confs"
	"github.com/Jataveda/Agriconnect/entities"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the SQL database selected by cfg.StoreDriver and migrates the schema.
func Connect(cfg confs.Config) (Database, error) {
	switch cfg.StoreDriver {
	case confs.DriverPostgres:
		dsn, err := postgresDSN(cfg)
		if err != nil {
			return nil, err
		}
		return open(postgres.Open(dsn), cfg.DBLogSQL, poolCloud)
	case confs.DriverSQLite:
		return OpenSQLite(cfg.SQLitePath, cfg.DBLogSQL)
	default:
		return nil, fmt.Errorf("driver %q is not backed by a database", cfg.StoreDriver)
	}
}

// OpenSQLite opens (or creates) a SQLite database file. ":memory:" gives a
// private in-memory database pinned to a single connection.
func OpenSQLite(path string, logSQL bool) (Database, error) {
	pool := poolLocal
	if path == ":memory:" {
		pool = poolSingle
	}
	log.Printf("Opening SQLite database at %s...", path)
	return open(sqlite.Open(path), logSQL, pool)
}

func postgresDSN(cfg confs.Config) (string, error) {
	// Check if DB_URL is provided (connection string)
	if cfg.DBURL != "" {
		dsn := cfg.DBURL
		// Hosted databases expect SSL; add it when the URL doesn't say otherwise
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		log.Println("Connecting to Postgres using DB_URL...")
		return dsn, nil
	}

	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBPassword == "" || cfg.DBName == "" {
		return "", fmt.Errorf("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	sslMode := "require"
	if cfg.DBHost == "localhost" || cfg.DBHost == "127.0.0.1" {
		sslMode = "disable"
	}

	log.Printf("Connecting to Postgres using individual parameters (sslmode=%s)...", sslMode)
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, sslMode), nil
}

type poolProfile int

const (
	poolCloud poolProfile = iota
	poolLocal
	poolSingle
)

func open(dialector gorm.Dialector, logSQL bool, pool poolProfile) (Database, error) {
	logLevel := logger.Warn
	if logSQL {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	switch pool {
	case poolCloud:
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	case poolLocal:
		sqlDB.SetMaxOpenConns(4)
	case poolSingle:
		sqlDB.SetMaxOpenConns(1)
	}
	sqlDB.SetConnMaxLifetime(0)

	log.Println("Database connection established successfully!")

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return &GormDatabase{DB: db}, nil
}

// Migrate creates or updates the tables for every marketplace entity.
func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&entities.User{},
		&entities.Vehicle{},
		&entities.Produce{},
		&entities.Pesticide{},
		&entities.Order{},
		&entities.Message{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Database migrations completed successfully!")
	return nil
}
