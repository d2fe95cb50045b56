package main

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// config is vtmonitor's TOML schema, a trimmed copy of cmd/vtclient's: a
// dashboard only needs enough to dial a transport and, optionally, register
// the same object pool vtclient would upload, so it can show the handshake
// reach ReadyForObjectPool the way an operator watching vtclient would see
// it.
type config struct {
	Local   uint8 `toml:"local"`
	Partner uint8 `toml:"partner"`

	RequiredMemory uint32 `toml:"required_memory"`

	Transport transportConfig `toml:"transport"`
	Pool      poolConfig      `toml:"pool"`
}

type transportConfig struct {
	Kind string `toml:"kind"`

	WS  wsTransportConfig  `toml:"ws"`
	SSH sshTransportConfig `toml:"ssh"`
}

type wsTransportConfig struct {
	URL string `toml:"url"`
}

type sshTransportConfig struct {
	Host     string `toml:"host"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type poolConfig struct {
	Index   uint8  `toml:"index"`
	Version uint8  `toml:"version"`
	File    string `toml:"file"`
}

const defaultConfigPath = "vtclient.toml"

func loadConfig(path string) (*config, error) {
	v := viper.New()
	v.SetEnvPrefix("VTMONITOR")
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

	var cfg config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return &cfg, nil
}
