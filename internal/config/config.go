package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultEndpointURL = "http://127.0.0.1:8000/generate-invoice"
	DefaultPDFBackend  = "libreoffice"
	DefaultAPIURL      = "http://127.0.0.1:7411"
	DefaultLogLevel    = "info"

	DefaultDataDirName = ".invoicer"
	configFileName     = ".invoicer.toml"

	configDirEnvKey  = "INVOICER_CONFIG_DIR"
	endpointEnvKey   = "INVOICER_ENDPOINT_URL"
	pdfBackendEnvKey = "INVOICER_PDF_BACKEND"
	apiURLEnvKey     = "INVOICER_API_URL"
	dataDirEnvKey    = "INVOICER_DATA_DIR"
)

// Config defines runtime configuration for invoicer.
type Config struct {
	// EndpointURL is the document generation endpoint.
	EndpointURL string `toml:"endpoint_url"`
	// PDFBackend selects the service-side PDF conversion backend,
	// libreoffice or docx2pdf.
	PDFBackend string `toml:"pdf_backend"`
	// APIURL is the base URL of the local HTTP API.
	APIURL string `toml:"api_url"`
	// DataDir holds the record database, the asset tree, and generated
	// artifacts.
	DataDir  string `toml:"data_dir"`
	LogLevel string `toml:"log_level"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		EndpointURL: DefaultEndpointURL,
		PDFBackend:  DefaultPDFBackend,
		APIURL:      DefaultAPIURL,
		DataDir:     "",
		LogLevel:    DefaultLogLevel,
	}
}

// DBPath returns the record database path under the data dir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "invoices.db")
}

// AssetsDir returns the content-addressed asset tree root.
func (c *Config) AssetsDir() string {
	return filepath.Join(c.DataDir, "assets")
}

// ArtifactsDir returns the generated-document directory.
func (c *Config) ArtifactsDir() string {
	return filepath.Join(c.DataDir, "artifacts")
}

var allowedKeys = []string{
	"endpoint_url",
	"pdf_backend",
	"api_url",
	"data_dir",
	"log_level",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "endpoint_url":
		return c.EndpointURL, nil
	case "pdf_backend":
		return c.PDFBackend, nil
	case "api_url":
		return c.APIURL, nil
	case "data_dir":
		return c.DataDir, nil
	case "log_level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

// GlobalPath returns the path to the config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}
	value = strings.TrimSpace(value)
	if err := validateValue(key, value); err != nil {
		return err
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	data[key] = value

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads config from the global file and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	path, err := GlobalPath()
	if err == nil {
		if loadErr := loadFileIfExists(path, &cfg); loadErr != nil {
			return nil, loadErr
		}
	}

	if value := strings.TrimSpace(os.Getenv(endpointEnvKey)); value != "" {
		cfg.EndpointURL = value
	}
	if value := strings.TrimSpace(os.Getenv(pdfBackendEnvKey)); value != "" {
		cfg.PDFBackend = value
	}
	if value := strings.TrimSpace(os.Getenv(apiURLEnvKey)); value != "" {
		cfg.APIURL = value
	}
	if value := strings.TrimSpace(os.Getenv(dataDirEnvKey)); value != "" {
		cfg.DataDir = value
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadFileIfExists(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalize() error {
	if c.EndpointURL == "" {
		c.EndpointURL = DefaultEndpointURL
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if err := validateValue("pdf_backend", c.PDFBackend); err != nil {
		return err
	}
	if c.PDFBackend == "" {
		c.PDFBackend = DefaultPDFBackend
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.DataDir = filepath.Join(home, DefaultDataDirName)
	}
	return nil
}

func validateValue(key, value string) error {
	switch key {
	case "pdf_backend":
		switch value {
		case "", "libreoffice", "docx2pdf":
			return nil
		default:
			return fmt.Errorf("pdf_backend must be libreoffice or docx2pdf")
		}
	case "endpoint_url", "api_url":
		if value != "" && !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("%s must be an http(s) URL", key)
		}
		return nil
	default:
		return nil
	}
}
