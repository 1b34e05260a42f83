package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/meescheck/meescheck/internal/model"
)

func TestLoadConfig_FileOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	content := `http:
  user_agent: portfolio-bot/1.0
  timeout: 5s
cache:
  enabled: false
concurrency:
  workers: 8
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("read config: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.HTTP.UserAgent != "portfolio-bot/1.0" {
		t.Errorf("expected user agent from file, got %q", cfg.HTTP.UserAgent)
	}
	if cfg.HTTP.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout from file, got %v", cfg.HTTP.Timeout)
	}
	if cfg.Cache.Enabled {
		t.Error("expected cache disabled by the file")
	}
	if cfg.Concurrency.Workers != 8 {
		t.Errorf("expected 8 workers from file, got %d", cfg.Concurrency.Workers)
	}

	// Keys the file does not mention keep their defaults.
	def := model.DefaultConfig()
	if cfg.HTTP.RequestsPerSecond != def.HTTP.RequestsPerSecond {
		t.Errorf("expected default rate preserved, got %v", cfg.HTTP.RequestsPerSecond)
	}
	if cfg.Cache.MemoryTTL != def.Cache.MemoryTTL {
		t.Errorf("expected default memory TTL preserved, got %v", cfg.Cache.MemoryTTL)
	}
}

func TestLoadConfig_NoSourcesKeepsDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	def := model.DefaultConfig()
	if cfg.HTTP.UserAgent != def.HTTP.UserAgent {
		t.Errorf("expected default user agent, got %q", cfg.HTTP.UserAgent)
	}
	if cfg.Concurrency.Workers != def.Concurrency.Workers {
		t.Errorf("expected default workers, got %d", cfg.Concurrency.Workers)
	}
	if !cfg.Cache.Enabled {
		t.Error("expected cache enabled by default")
	}
}
