package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/user"
	"path"

	"gopkg.in/yaml.v2"
)

const (
	configDir  string = ".minidbg"
	configFile string = "config.yml"
)

// RegisterFormat selects how register values are printed.
type RegisterFormat string

const (
	// FormatDecimal prints register values as unsigned decimal integers.
	FormatDecimal RegisterFormat = "dec"
	// FormatHex prints register values as 0x-prefixed hexadecimal.
	FormatHex RegisterFormat = "hex"
)

// Config defines all configuration options available to be set through the config file.
type Config struct {
	// RegisterFormat is the format used to print the result of
	// "register read". Values are always written in decimal.
	RegisterFormat RegisterFormat `yaml:"register-format,omitempty"`

	// SaveHistory controls whether command history is loaded at startup
	// and saved on exit. Defaults to true.
	SaveHistory *bool `yaml:"save-history,omitempty"`
	// MaxHistory is the maximum number of history entries written back
	// to the history file.
	MaxHistory *int `yaml:"max-history,omitempty"`

	// DisableASLR launches the target with address space randomization
	// turned off.
	DisableASLR bool `yaml:"disable-aslr"`
}

// HistoryEnabled reports whether the history file should be used.
func (c *Config) HistoryEnabled() bool {
	return c == nil || c.SaveHistory == nil || *c.SaveHistory
}

// FormatRegister renders a register value according to c.RegisterFormat.
func (c *Config) FormatRegister(v uint64) string {
	if c != nil && c.RegisterFormat == FormatHex {
		return fmt.Sprintf("%#x", v)
	}
	return fmt.Sprintf("%d", v)
}

func (c *Config) validate() error {
	switch c.RegisterFormat {
	case "", FormatDecimal, FormatHex:
	default:
		return fmt.Errorf("invalid register-format %q (must be %q or %q)", c.RegisterFormat, FormatDecimal, FormatHex)
	}
	if c.MaxHistory != nil && *c.MaxHistory < 0 {
		return fmt.Errorf("max-history must not be negative")
	}
	return nil
}

// LoadConfig attempts to populate a Config object from the config.yml file.
func LoadConfig() *Config {
	err := createConfigPath()
	if err != nil {
		fmt.Printf("Could not create config directory: %v.\n", err)
		return &Config{}
	}
	fullConfigFile, err := GetConfigFilePath(configFile)
	if err != nil {
		fmt.Printf("Unable to get config file path: %v.\n", err)
		return &Config{}
	}

	f, err := os.Open(fullConfigFile)
	if err != nil {
		f, err = createDefaultConfig(fullConfigFile)
		if err != nil {
			fmt.Printf("Error creating default config file: %v\n", err)
			return &Config{}
		}
	}
	defer func() {
		err := f.Close()
		if err != nil {
			fmt.Printf("Closing config file failed: %v.\n", err)
		}
	}()

	data, err := ioutil.ReadAll(f)
	if err != nil {
		fmt.Printf("Unable to read config data: %v.\n", err)
		return &Config{}
	}

	c, err := parseConfig(data)
	if err != nil {
		fmt.Printf("Unable to decode config file: %v.\n", err)
		return &Config{}
	}
	return c
}

func parseConfig(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func createDefaultConfig(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("unable to create config file: %v", err)
	}
	err = writeDefaultConfig(f)
	if err != nil {
		return nil, fmt.Errorf("unable to write default configuration: %v", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}
	return f, nil
}

func writeDefaultConfig(f *os.File) error {
	_, err := f.WriteString(
		`# Configuration file for the minidbg debugger.

# This is the default configuration file. Available options are provided, but disabled.
# Delete the leading hash mark to enable an item.

# Format used by "register read": dec (default) or hex.
# register-format: hex

# Set to false to stop loading and saving command history.
# save-history: true

# Maximum number of history entries kept in the history file.
# max-history: 1000

# Launch targets with address space layout randomization disabled.
disable-aslr: false
`)
	return err
}

// createConfigPath creates the directory structure at which all config files are saved.
func createConfigPath() error {
	path, err := GetConfigFilePath("")
	if err != nil {
		return err
	}
	return os.MkdirAll(path, 0700)
}

// GetConfigFilePath gets the full path to the given config file name.
func GetConfigFilePath(file string) (string, error) {
	if dir := os.Getenv("MINIDBG_CONFIG_DIR"); dir != "" {
		return path.Join(dir, file), nil
	}
	userHomeDir := "."
	usr, err := user.Current()
	if err == nil {
		userHomeDir = usr.HomeDir
	}
	return path.Join(userHomeDir, configDir, file), nil
}
