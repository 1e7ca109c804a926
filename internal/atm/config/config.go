// Package config handles configuration for the ATM endpoint, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the ATM.
//
// Fields:
//   - RouterAddr: host:port of the datagram relay all traffic goes through.
//   - LocalAddr: local UDP bind address (the relay forwards by source port).
//   - KeyFile: path to the <name>.atm init file with the shared key.
//   - CardDir: directory containing <user>.card files.
//   - ReceiveTimeout: how long to wait for the bank's reply before giving up.
type Config struct {
	RouterAddr     string
	LocalAddr      string
	KeyFile        string
	CardDir        string
	ReceiveTimeout time.Duration
}

// LoadDefaults populates c with the deployment's fixed local ports.
func (c *Config) LoadDefaults() {
	c.RouterAddr = "127.0.0.1:32000"
	c.LocalAddr = "127.0.0.1:32001"
	c.KeyFile = ""
	c.CardDir = "."
	c.ReceiveTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
