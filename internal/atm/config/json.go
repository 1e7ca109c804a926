package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/atmnet/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The timeout
// is given in whole seconds and copied into the runtime Config as a
// time.Duration.
type JsonConfig struct {
	RouterAddr            string `json:"router_addr"`
	LocalAddr             string `json:"local_addr"`
	KeyFile               string `json:"key_file"`
	CardDir               string `json:"card_dir"`
	ReceiveTimeoutSeconds int    `json:"receive_timeout_seconds"`
}

// parseJson overlays cfg with values loaded from a JSON file. The file path
// comes from the -c/-config flags; when absent, nothing is loaded. Only
// fields present in the JSON override the current values.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.RouterAddr != "" {
		cfg.RouterAddr = jc.RouterAddr
	}
	if jc.LocalAddr != "" {
		cfg.LocalAddr = jc.LocalAddr
	}
	if jc.KeyFile != "" {
		cfg.KeyFile = jc.KeyFile
	}
	if jc.CardDir != "" {
		cfg.CardDir = jc.CardDir
	}
	if jc.ReceiveTimeoutSeconds > 0 {
		cfg.ReceiveTimeout = time.Duration(jc.ReceiveTimeoutSeconds) * time.Second
	}
}
