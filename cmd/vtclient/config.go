package main

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Config is vtclient's TOML configuration schema, decoded the same way
// the pack's own toml-backed repositories do: raw file bytes through
// pelletier's toml.Unmarshal rather than viper's own Unmarshal, with
// viper reserved for resolving the config path itself from flags/env.
type Config struct {
	Local   uint8 `toml:"local"`
	Partner uint8 `toml:"partner"`

	RequiredMemory uint32 `toml:"required_memory"`

	Transport TransportConfig `toml:"transport"`
	Pool      PoolConfig      `toml:"pool"`
	Debug     DebugConfig     `toml:"debug"`

	LogFile string `toml:"log_file"`
}

// TransportConfig selects and configures exactly one NetworkManager
// implementation: "ws" (internal/transport/wsbridge) or "ssh"
// (internal/transport/sshbridge).
type TransportConfig struct {
	Kind string `toml:"kind"`

	WS  WSTransportConfig  `toml:"ws"`
	SSH SSHTransportConfig `toml:"ssh"`
}

type WSTransportConfig struct {
	URL string `toml:"url"`
}

type SSHTransportConfig struct {
	Host     string `toml:"host"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// PoolConfig describes the single object pool vtclient registers at
// startup, either from a local file (vtclient.Client.SetObjectPool) or an
// S3 object (internal/poolsource/s3.Register).
type PoolConfig struct {
	Index   uint8 `toml:"index"`
	Version uint8 `toml:"version"`

	File string      `toml:"file"`
	S3   S3PoolConfig `toml:"s3"`
}

type S3PoolConfig struct {
	Bucket string `toml:"bucket"`
	Key    string `toml:"key"`
	Region string `toml:"region"`
}

// DebugConfig configures internal/debugserver and internal/metrics.
type DebugConfig struct {
	Addr    string `toml:"addr"`
	Metrics bool   `toml:"metrics"`
}

const defaultConfigPath = "vtclient.toml"

// loadConfig resolves the config file path (explicit path, then
// VTCLIENT_CONFIG, then ./vtclient.toml) and decodes it.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VTCLIENT")
	v.AutomaticEnv()

	if path == "" {
		path = v.GetString("config")
	}
	if path == "" {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return &cfg, nil
}
