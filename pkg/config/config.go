package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/smith3v/fitness-ai/pkg/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Database DatabaseConfig `json:"database"`
	Telegram TelegramConfig `json:"telegram"`
	Logging  LoggingConfig  `json:"logging"`
	Storage  StorageConfig  `json:"storage"`
	Dataset  DatasetConfig  `json:"dataset"`
}

type DatabaseConfig struct {
	Driver       string `json:"driver"`
	Host         string `json:"host"`
	User         string `json:"user"`
	Password     string `json:"password"`
	DBName       string `json:"dbname"`
	Port         int    `json:"port"`
	SSLMode      string `json:"sslmode"`
	Path         string `json:"path"` // sqlite file, ":memory:" allowed
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

type TelegramConfig struct {
	Token string `json:"token"`
}

type LoggingConfig struct {
	Level     string `json:"level"`
	File      string `json:"file"`
	Format    string `json:"format"`
	GormLevel string `json:"gorm_level"`
}

type StorageConfig struct {
	Bucket          string `json:"bucket"`
	Region          string `json:"region"`
	AccessKey       string `json:"access_key"`
	SecretKey       string `json:"secret_key"`
	Endpoint        string `json:"endpoint"`
	RawPrefix       string `json:"raw_prefix"`
	ProcessedPrefix string `json:"processed_prefix"`
}

type DatasetConfig struct {
	RawPath     string `json:"raw_path"`
	CleanedPath string `json:"cleaned_path"`
	StatsPath   string `json:"stats_path"`
}

var AppConfig = Defaults()

func Defaults() Config {
	return Config{
		Database: DatabaseConfig{
			Driver:  DriverSQLite,
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
			Path:    "fitness_ai.db",
		},
		Storage: StorageConfig{
			RawPrefix:       "raw/",
			ProcessedPrefix: "processed/",
		},
		Dataset: DatasetConfig{
			RawPath:     "data/raw/nutrition_raw.csv",
			CleanedPath: "data/processed/nutrition_cleaned.csv",
			StatsPath:   "data/processed/cleaned_stats.csv",
		},
	}
}

// LoadConfig resets AppConfig to defaults, overlays the JSON file and then the
// environment. A missing config file is tolerated; env files are optional too.
func LoadConfig(filename string, envFiles ...string) error {
	cfg := Defaults()

	file, err := os.Open(filename)
	switch {
	case err == nil:
		defer file.Close()
		if err := json.NewDecoder(file).Decode(&cfg); err != nil {
			logger.Error("failed to decode config file", "file", filename, "error", err)
			return fmt.Errorf("decode %s: %w", filename, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("config file not found, using defaults and environment", "file", filename)
	default:
		logger.Error("failed to open config file", "file", filename, "error", err)
		return err
	}

	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Host, "POSTGRES_HOST")
	setString(&cfg.Database.User, "POSTGRES_USER")
	setString(&cfg.Database.Password, "POSTGRES_PASSWORD")
	setString(&cfg.Database.DBName, "POSTGRES_DB")
	setString(&cfg.Database.SSLMode, "POSTGRES_SSLMODE")
	setString(&cfg.Database.Path, "SQLITE_PATH")
	if value, ok := os.LookupEnv("POSTGRES_PORT"); ok && value != "" {
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid POSTGRES_PORT %q: %w", value, err)
		}
		cfg.Database.Port = port
	}

	setString(&cfg.Telegram.Token, "TELEGRAM_TOKEN")
	setString(&cfg.Logging.Level, "LOG_LEVEL")

	setString(&cfg.Storage.Bucket, "S3_BUCKET")
	setString(&cfg.Storage.Region, "AWS_REGION")
	setString(&cfg.Storage.AccessKey, "AWS_ACCESS_KEY_ID")
	setString(&cfg.Storage.SecretKey, "AWS_SECRET_ACCESS_KEY")
	setString(&cfg.Storage.Endpoint, "S3_ENDPOINT")
	return nil
}

func setString(dst *string, key string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*dst = value
	}
}
