package config

import (
	"os"
	"path/filepath"
	"testing"
)

func restoreAppConfig(t *testing.T) {
	t.Helper()
	original := AppConfig
	t.Cleanup(func() {
		AppConfig = original
	})
}

func TestLoadConfigSuccess(t *testing.T) {
	restoreAppConfig(t)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	content := `{
		"database": {
			"driver": "postgres",
			"host": "db.internal",
			"user": "fitness",
			"password": "secret",
			"dbname": "fitness_ai",
			"port": 5433,
			"sslmode": "require"
		},
		"logging": {
			"level": "debug",
			"gorm_level": "info"
		},
		"storage": {
			"bucket": "fitness-datasets",
			"region": "eu-west-3"
		}
	}`

	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	if err := LoadConfig(configPath); err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if AppConfig.Database.Driver != DriverPostgres {
		t.Errorf("expected driver postgres, got %q", AppConfig.Database.Driver)
	}
	if AppConfig.Database.Port != 5433 {
		t.Errorf("expected port 5433, got %d", AppConfig.Database.Port)
	}
	if AppConfig.Logging.GormLevel != "info" {
		t.Errorf("expected gorm level info, got %q", AppConfig.Logging.GormLevel)
	}
	if AppConfig.Storage.Bucket != "fitness-datasets" {
		t.Errorf("expected bucket fitness-datasets, got %q", AppConfig.Storage.Bucket)
	}
	if AppConfig.Storage.RawPrefix != "raw/" {
		t.Errorf("expected default raw prefix to survive, got %q", AppConfig.Storage.RawPrefix)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	restoreAppConfig(t)

	if err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err != nil {
		t.Fatalf("expected missing config to be tolerated, got %v", err)
	}
	if AppConfig.Database.Driver != DriverSQLite {
		t.Fatalf("expected default sqlite driver, got %q", AppConfig.Database.Driver)
	}
	if AppConfig.Dataset.CleanedPath == "" {
		t.Fatal("expected default cleaned dataset path")
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	restoreAppConfig(t)

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}
	if err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for malformed config")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	restoreAppConfig(t)

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env.postgre")
	env := "POSTGRES_USER=from-env-file\nPOSTGRES_DB=env_db\n"
	if err := os.WriteFile(envPath, []byte(env), 0o600); err != nil {
		t.Fatalf("failed to write env fixture: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("POSTGRES_USER")
		os.Unsetenv("POSTGRES_DB")
	})
	t.Setenv("POSTGRES_PORT", "6543")
	t.Setenv("S3_BUCKET", "env-bucket")

	if err := LoadConfig(filepath.Join(dir, "missing.json"), envPath, filepath.Join(dir, "absent.env")); err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if AppConfig.Database.User != "from-env-file" {
		t.Errorf("expected user from env file, got %q", AppConfig.Database.User)
	}
	if AppConfig.Database.DBName != "env_db" {
		t.Errorf("expected dbname from env file, got %q", AppConfig.Database.DBName)
	}
	if AppConfig.Database.Port != 6543 {
		t.Errorf("expected port 6543, got %d", AppConfig.Database.Port)
	}
	if AppConfig.Storage.Bucket != "env-bucket" {
		t.Errorf("expected bucket from env, got %q", AppConfig.Storage.Bucket)
	}
}

func TestLoadConfigInvalidPort(t *testing.T) {
	restoreAppConfig(t)
	t.Setenv("POSTGRES_PORT", "five")

	if err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for non-numeric POSTGRES_PORT")
	}
}
