package config

import (
	"path/filepath"

	"github.com/tokenvault/tokenvault-go/cmd/utils"
)

const (
	// LogFormatPlain is a format for colored text
	LogFormatPlain = "plain"
	// LogFormatJSON is a format for json output
	LogFormatJSON = "json"

	defaultConfigDir = "config"
	defaultDataDir   = "data"

	defaultConfigFileName  = "config.toml"
	defaultGenesisJSONName = "genesis.json"
)

var (
	defaultConfigFilePath  = filepath.Join(defaultConfigDir, defaultConfigFileName)
	defaultGenesisJSONPath = filepath.Join(defaultConfigDir, defaultGenesisJSONName)
)

// Config defines the top level configuration for a ledger node
type Config struct {
	// The root directory for all data.
	// This should be set in viper so it can unmarshal into this struct
	RootDir string `mapstructure:"home"`

	// Path to the JSON file containing the initial ledger state
	Genesis string `mapstructure:"genesis_file"`

	// Database backend: goleveldb | memdb
	DBBackend string `mapstructure:"db_backend"`

	// Database directory
	DBPath string `mapstructure:"db_dir"`

	// Output level for logging
	LogLevel string `mapstructure:"log_level"`

	// Output format: 'plain' (colored text) or 'json'
	LogFormat string `mapstructure:"log_format"`

	// Path to file for logs, "stdout" by default
	LogPath string `mapstructure:"log_path"`

	// Number of last state versions kept in the tree
	KeepLastStates int64 `mapstructure:"keep_last_states"`

	// Size of the iavl node cache
	StateCacheSize int `mapstructure:"state_cache_size"`
}

// DefaultConfig returns a default configuration for a ledger node
func DefaultConfig() *Config {
	return &Config{
		Genesis:        defaultGenesisJSONPath,
		DBBackend:      "goleveldb",
		DBPath:         defaultDataDir,
		LogLevel:       "state:info,*:error",
		LogFormat:      LogFormatPlain,
		LogPath:        "stdout",
		KeepLastStates: 120,
		StateCacheSize: 1000000,
	}
}

// GetConfig returns the default configuration rooted at the node's home
// directory, ensuring the directory layout exists.
func GetConfig() *Config {
	cfg := DefaultConfig()

	cfg.RootDir = utils.GetVaultHome()
	EnsureRoot(cfg.RootDir)

	return cfg
}

// GenesisFile returns the full path to the genesis.json file
func (cfg *Config) GenesisFile() string {
	return rootify(cfg.Genesis, cfg.RootDir)
}

// DBDir returns the full path to the database directory
func (cfg *Config) DBDir() string {
	return rootify(cfg.DBPath, cfg.RootDir)
}

// helper function to make config creation independent of root dir
func rootify(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
