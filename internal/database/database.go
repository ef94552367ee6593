package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"letly-be-svc/internal/config"
	"letly-be-svc/internal/models"
)

// Database wraps the gorm connection
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens a connection for the configured driver
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(cfg.Path))
	case "postgres", "":
		dialector = postgres.Open(cfg.GetDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.Driver == "sqlite" {
		// sqlite serializes writers, one connection avoids "database is locked"
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &Database{DB: db}, nil
}

// NewInMemory opens a private in-memory sqlite database with the schema applied
func NewInMemory() (*Database, error) {
	db, err := NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(); err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate creates or updates every table the service owns
func (d *Database) AutoMigrate() error {
	if err := d.DB.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Models lists the persisted entities in dependency order
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Property{},
		&models.Bill{},
		&models.MaintenanceRequest{},
		&models.PasswordResetToken{},
		&models.LogSchedullers{},
	}
}

// Close closes the underlying connection pool
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func sqliteDSN(path string) string {
	if path == "" || path == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}
