package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:32000", c.RouterAddr)
	assert.Equal(t, "127.0.0.1:32001", c.LocalAddr)
	assert.Equal(t, "", c.KeyFile)
	assert.Equal(t, ".", c.CardDir)
	assert.Equal(t, 5*time.Second, c.ReceiveTimeout)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"atm", "-r", "10.0.0.1:9000", "-t", "2", "-d", "/cards"}

	c := LoadConfig()
	require.NotNil(t, c)

	assert.Equal(t, "10.0.0.1:9000", c.RouterAddr)
	assert.Equal(t, "127.0.0.1:32001", c.LocalAddr)
	assert.Equal(t, "/cards", c.CardDir)
	assert.Equal(t, 2*time.Second, c.ReceiveTimeout)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	jc := JsonConfig{
		RouterAddr:            "192.168.1.1:5000",
		CardDir:               "/var/cards",
		ReceiveTimeoutSeconds: 7,
	}
	data, err := json.Marshal(jc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "atm.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	os.Args = []string{"atm", "-c", path}

	c := LoadConfig()
	assert.Equal(t, "192.168.1.1:5000", c.RouterAddr)
	assert.Equal(t, "/var/cards", c.CardDir)
	assert.Equal(t, 7*time.Second, c.ReceiveTimeout)
	// Untouched fields keep their defaults.
	assert.Equal(t, "127.0.0.1:32001", c.LocalAddr)
}

func TestLoadConfig_FlagsBeatJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	data, err := json.Marshal(JsonConfig{RouterAddr: "from-json:1"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "atm.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	os.Args = []string{"atm", "-c", path, "-r", "from-flag:2"}

	c := LoadConfig()
	assert.Equal(t, "from-flag:2", c.RouterAddr)
}
