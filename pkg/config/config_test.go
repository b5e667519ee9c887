package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	c, err := parseConfig([]byte("register-format: hex\nsave-history: false\nmax-history: 20\ndisable-aslr: true\n"))
	require.NoError(t, err)
	assert.Equal(t, FormatHex, c.RegisterFormat)
	assert.False(t, c.HistoryEnabled())
	require.NotNil(t, c.MaxHistory)
	assert.Equal(t, 20, *c.MaxHistory)
	assert.True(t, c.DisableASLR)
}

func TestParseConfigRejectsBadFormat(t *testing.T) {
	_, err := parseConfig([]byte("register-format: octal\n"))
	assert.EqualError(t, err, `invalid register-format "octal" (must be "dec" or "hex")`)

	_, err = parseConfig([]byte("max-history: -1\n"))
	assert.Error(t, err)
}

func TestFormatRegister(t *testing.T) {
	var nilConf *Config
	assert.Equal(t, "42", nilConf.FormatRegister(42))
	assert.Equal(t, "42", (&Config{}).FormatRegister(42))
	assert.Equal(t, "0x2a", (&Config{RegisterFormat: FormatHex}).FormatRegister(42))
	assert.True(t, nilConf.HistoryEnabled())
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	dir := t.TempDir()
	old, had := os.LookupEnv("MINIDBG_CONFIG_DIR")
	os.Setenv("MINIDBG_CONFIG_DIR", dir)
	defer func() {
		if had {
			os.Setenv("MINIDBG_CONFIG_DIR", old)
		} else {
			os.Unsetenv("MINIDBG_CONFIG_DIR")
		}
	}()

	c := LoadConfig()
	require.NotNil(t, c)
	assert.Equal(t, RegisterFormat(""), c.RegisterFormat)
	assert.True(t, c.HistoryEnabled())
	assert.False(t, c.DisableASLR)

	data, err := ioutil.ReadFile(filepath.Join(dir, configFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# register-format: hex")

	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, configFile), []byte("register-format: hex\n"), 0600))
	c = LoadConfig()
	assert.Equal(t, FormatHex, c.RegisterFormat)
}
