package db

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/smith3v/fitness-ai/pkg/config"
	"github.com/smith3v/fitness-ai/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// Open connects to the configured backend. The caller owns the returned handle
// and must release it with Close.
func Open(cfg config.DatabaseConfig, gormLevel string) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormLogger, levelErr := newGormLogger(gormLevel)
	if levelErr != nil {
		logger.Error("invalid gorm log level", "value", gormLevel, "error", levelErr)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		logger.Error("failed to connect to database", "driver", cfg.Driver, "error", err)
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	switch gdb.Dialector.Name() {
	case "sqlite":
		// one writer, one connection: in-memory databases also live on it
		sqlDB.SetMaxOpenConns(1)
	default:
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		logger.Error("failed to ping database", "driver", cfg.Driver, "error", err)
		return nil, err
	}

	logger.Debug("database connection opened", "driver", gdb.Dialector.Name())
	return gdb, nil
}

func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case config.DriverPostgres:
		return postgres.Open(PostgresDSN(cfg)), nil
	case config.DriverSQLite, "":
		return sqlite.Open(SQLiteDSN(cfg.Path)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

func PostgresDSN(cfg config.DatabaseConfig) string {
	return "host=" + cfg.Host +
		" user=" + cfg.User +
		" password=" + cfg.Password +
		" dbname=" + cfg.DBName +
		" port=" + strconv.Itoa(cfg.Port) +
		" sslmode=" + cfg.SSLMode
}

// SQLiteDSN enables foreign keys so user_goals cascades like it does on postgres.
func SQLiteDSN(path string) string {
	if path == "" || path == ":memory:" {
		path = "file::memory:"
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func CreateSchemaIfAbsent(gdb *gorm.DB) error {
	if gdb == nil {
		return errors.New("nil database handle")
	}
	if err := gdb.AutoMigrate(schemaModels()...); err != nil {
		logger.Error("failed to auto-migrate database", "error", err)
		return err
	}
	return nil
}

// ResetSchema drops every table owned by the application, dependents first.
func ResetSchema(gdb *gorm.DB) error {
	if gdb == nil {
		return errors.New("nil database handle")
	}
	models := schemaModels()
	slices.Reverse(models)
	for _, model := range models {
		if err := gdb.Migrator().DropTable(model); err != nil {
			logger.Error("failed to drop table", "model", fmt.Sprintf("%T", model), "error", err)
			return err
		}
	}
	return nil
}
