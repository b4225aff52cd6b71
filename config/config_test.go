package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigParse(t *testing.T) {
	configFile := `{"allowed": ">= 1.2.3, != 1.2.4"}`

	conf, err := Parse(configFile)
	assert.Nil(t, err)

	assert.True(t, conf.IsValidVersion("1.2.3"))
	assert.True(t, conf.IsValidVersion("1.2.5"))
	assert.False(t, conf.IsValidVersion("1.2.4"))
	assert.False(t, conf.IsValidVersion("1.2.2"))
	assert.False(t, conf.IsValidVersion("1.1.3"))
	assert.False(t, conf.IsValidVersion("not-a-version"))
}

func TestConfigParseYAML(t *testing.T) {
	conf, err := Parse(`
allowed: "^0.10"
provider: Acme
darkMode: false
logLevel: debug
corsOrigins:
  - https://chat.tinfoil.sh
`)
	require.NoError(t, err)

	assert.Equal(t, "Acme", conf.Provider)
	assert.False(t, conf.DarkMode)
	assert.True(t, conf.Compact)
	assert.Equal(t, ":8080", conf.ListenAddr)
	assert.Equal(t, log.DebugLevel, conf.Level())
	assert.Equal(t, []string{"https://chat.tinfoil.sh"}, conf.CORSOrigins)
	assert.True(t, conf.IsValidVersion("0.10.3"))
	assert.False(t, conf.IsValidVersion("0.9.0"))
}

func TestConfigDefaults(t *testing.T) {
	conf, err := Parse("")
	require.NoError(t, err)

	assert.Equal(t, Default().Provider, conf.Provider)
	assert.True(t, conf.DarkMode)
	assert.True(t, conf.ShowVerificationFlow)
	assert.Equal(t, log.InfoLevel, conf.Level())
	assert.True(t, conf.IsValidVersion("0.0.1"))
	assert.True(t, conf.IsValidVersion(""))
}

func TestConfigParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"bad constraint", `allowed: ">>> 1"`},
		{"bad log level", `logLevel: loud`},
		{"not a mapping", `- a`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.config)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "center.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listenAddr: \":9000\"\nprovider: Acme\n"), 0o600))

	t.Setenv(EnvProvider, "Other")

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", conf.ListenAddr)
	assert.Equal(t, "Other", conf.Provider)

	t.Run("env level is validated", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "loud")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
