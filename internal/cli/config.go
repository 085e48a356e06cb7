// Config loading for the wordbook CLI.

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/wordbook/internal/remote"
	"github.com/mesh-intelligence/wordbook/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend       = "backend"
	cfgKeyDataDir       = "data_dir"
	cfgKeySyncStrategy  = "sync_strategy"
	cfgKeyBatchSize     = "batch_size"
	cfgKeyBatchInterval = "batch_interval"
	cfgKeyRemoteLatency = "remote_latency"
)

// configFile is the structure written to config.yaml.
type configFile struct {
	Backend       string `yaml:"backend"`
	DataDir       string `yaml:"data_dir,omitempty"`
	SyncStrategy  string `yaml:"sync_strategy"`
	RemoteLatency string `yaml:"remote_latency"`
}

func defaultConfigFile() configFile {
	return configFile{
		Backend:       types.BackendSQLite,
		SyncStrategy:  types.SyncImmediate,
		RemoteLatency: remote.DefaultLatency.String(),
	}
}

// settings are the values read from config.yaml after defaults apply.
type settings struct {
	backend       string
	dataDir       string
	syncStrategy  string
	batchSize     int
	batchInterval time.Duration
	remoteLatency time.Duration
}

// storeConfig returns the local store configuration for dataDir.
func (s settings) storeConfig(dataDir string) types.Config {
	return types.Config{
		Backend:       s.backend,
		DataDir:       dataDir,
		SyncStrategy:  s.syncStrategy,
		BatchSize:     s.batchSize,
		BatchInterval: s.batchInterval,
	}
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// config directory and a default config.yaml on first run. A missing
// config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), defaultConfigFile()); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeySyncStrategy, types.SyncImmediate)
	v.SetDefault(cfgKeyBatchSize, types.DefaultBatchSize)
	v.SetDefault(cfgKeyBatchInterval, types.DefaultBatchInterval)
	v.SetDefault(cfgKeyRemoteLatency, remote.DefaultLatency)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// readSettings extracts settings from v and validates the store portion.
func readSettings(v *viper.Viper) (settings, error) {
	s := settings{
		backend:       v.GetString(cfgKeyBackend),
		dataDir:       v.GetString(cfgKeyDataDir),
		syncStrategy:  v.GetString(cfgKeySyncStrategy),
		batchSize:     v.GetInt(cfgKeyBatchSize),
		batchInterval: v.GetDuration(cfgKeyBatchInterval),
		remoteLatency: v.GetDuration(cfgKeyRemoteLatency),
	}
	// The data directory is resolved later; validate with a placeholder.
	if err := s.storeConfig(".").Validate(); err != nil {
		return settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

// writeConfigIfMissing writes cfg to path unless the file already exists.
func writeConfigIfMissing(path string, cfg configFile) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# wordbook configuration\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}
