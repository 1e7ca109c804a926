// Package config handles configuration for the Bank endpoint, including
// defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the Bank.
//
// Fields:
//   - RouterAddr: host:port of the datagram relay responses go back through.
//   - LocalAddr: local UDP bind address (the relay forwards by source port).
//   - KeyFile: path to the <name>.bank init file with the shared key.
//   - CardDir: directory where create-user writes <user>.card files.
type Config struct {
	RouterAddr string
	LocalAddr  string
	KeyFile    string
	CardDir    string
}

// LoadDefaults populates c with the deployment's fixed local ports.
func (c *Config) LoadDefaults() {
	c.RouterAddr = "127.0.0.1:32000"
	c.LocalAddr = "127.0.0.1:32002"
	c.KeyFile = ""
	c.CardDir = "."
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
