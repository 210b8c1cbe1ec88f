package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/picto-id/print-service/internal/profile"
)

// PrinterDef names one physical printer. Model must resolve in the profile
// registry; Addr is the raw TCP print port ("host:9100").
type PrinterDef struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	Addr  string `json:"addr"`
}

type Config struct {
	Host           string       `json:"host"`
	Port           int          `json:"port"`
	AllowedOrigins []string     `json:"allowed_origins"`
	AssetDir       string       `json:"asset_dir"`
	ReceiptCopies  int          `json:"receipt_copies"`
	ARLinkTemplate string       `json:"ar_link_template"`
	Printers       []PrinterDef `json:"printers"`
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the config file named by CONFIG_PATH (default ./config.json)
// and validates it. Any problem here is a startup failure; nothing is
// re-read at runtime.
func Load() (Config, error) {
	_ = godotenv.Load() // load .env if it exists
	path := getenv("CONFIG_PATH", "./config.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.Port == 0 {
		cfg.Port = 8090
	}
	if cfg.AssetDir == "" {
		cfg.AssetDir = "./assets"
	}
	if cfg.ReceiptCopies == 0 {
		cfg.ReceiptCopies = 3
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	log.Printf("[config] listen=%s:%d printers=%d copies=%d",
		cfg.Host, cfg.Port, len(cfg.Printers), cfg.ReceiptCopies)
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ReceiptCopies < 1 {
		return fmt.Errorf("receipt_copies must be positive, got %d", c.ReceiptCopies)
	}
	if len(c.Printers) == 0 {
		return fmt.Errorf("at least one printer is required")
	}
	for i, p := range c.Printers {
		if p.Name == "" {
			return fmt.Errorf("printers[%d]: name is required", i)
		}
		if p.Addr == "" {
			return fmt.Errorf("printers[%d] (%s): addr is required", i, p.Name)
		}
		// Unknown models are a config error, caught here and never at
		// print time.
		if _, err := profile.Resolve(p.Model); err != nil {
			return fmt.Errorf("printers[%d] (%s): %w", i, p.Name, err)
		}
	}
	return nil
}
