// ABOUTME: Shoplist configuration management with backend selection
// ABOUTME: Reads a JSON config file with environment overrides through viper

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/shoplist/internal/locale"
	"github.com/harper/shoplist/internal/storage"
	"github.com/spf13/viper"
)

// Supported storage backends.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// EnvPrefix is prepended to every environment override, e.g. SHOPLIST_BACKEND.
const EnvPrefix = "SHOPLIST"

const (
	dbFilename = "shoplist.db"
	badgerDir  = "badger"
)

// Config stores shoplist configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "badger".
	Backend string `json:"backend,omitempty" mapstructure:"backend"`

	// DataDir is the root directory for data storage.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/shoplist.
	DataDir string `json:"data_dir,omitempty" mapstructure:"data_dir"`

	// Locale is the BCP 47 tag used to parse and format numbers.
	Locale string `json:"locale,omitempty" mapstructure:"locale"`

	// Currency is the ISO 4217 code used to format money.
	Currency string `json:"currency,omitempty" mapstructure:"currency"`

	// SearchDebounce is a Go duration string such as "250ms".
	SearchDebounce string `json:"search_debounce,omitempty" mapstructure:"search_debounce"`
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		Backend:        BackendSQLite,
		Locale:         locale.DefaultLocale,
		Currency:       locale.DefaultCurrency,
		SearchDebounce: "250ms",
	}
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetSearchDebounce returns the search quiet period, falling back to 250ms
// when unset or unparseable.
func (c *Config) GetSearchDebounce() time.Duration {
	d, err := time.ParseDuration(c.SearchDebounce)
	if err != nil || d < 0 {
		return 250 * time.Millisecond
	}
	return d
}

// Format builds the locale format for parsing and rendering numbers.
func (c *Config) Format() (*locale.Format, error) {
	loc := c.Locale
	if loc == "" {
		loc = locale.DefaultLocale
	}
	cur := c.Currency
	if cur == "" {
		cur = locale.DefaultCurrency
	}
	return locale.New(loc, cur)
}

// DBPath returns the SQLite database file inside dataDir.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, dbFilename)
}

// BadgerDir returns the Badger directory inside dataDir.
func BadgerDir(dataDir string) string {
	return filepath.Join(dataDir, badgerDir)
}

// defaultDataDir returns the default XDG data directory for shoplist.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "shoplist")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage(logger *slog.Logger) (storage.Repository, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir(), logger)
}

// OpenBackend opens the named backend rooted at dataDir.
func OpenBackend(backend, dataDir string, logger *slog.Logger) (storage.Repository, error) {
	switch backend {
	case BackendSQLite:
		return storage.NewSQLiteDB(DBPath(dataDir), logger)
	case BackendBadger:
		return storage.NewBadgerStore(BadgerDir(dataDir), logger)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "shoplist", "config.json")
}

func newViper() *viper.Viper {
	v := viper.New()
	def := Default()
	v.SetDefault("backend", def.Backend)
	v.SetDefault("data_dir", "")
	v.SetDefault("locale", def.Locale)
	v.SetDefault("currency", def.Currency)
	v.SetDefault("search_debounce", def.SearchDebounce)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads config from disk and applies SHOPLIST_* environment overrides.
// A missing file is created with the defaults.
func Load() (*Config, error) {
	path := GetConfigPath()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if saveErr := Default().Save(); saveErr != nil {
			slog.Warn("could not save default config", "path", path, "error", saveErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(path, append(data, '\n'))
}

// atomicWrite replaces path with data via a temp file in the same directory.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user config directory
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
