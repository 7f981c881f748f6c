package cliconfig

import (
	"fmt"
	"math"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bft-labs/felfship/internal/domain"
)

// Default endpoints.
const (
	DefaultListenAddr     = "0.0.0.0:42069"
	DefaultControllerAddr = "192.168.1.2:1234"
	DefaultServeAddr      = "0.0.0.0:1234"
	DefaultWorkerName     = "stager"
	DefaultStackSize      = 1 << 20
	DefaultLogLevel       = "info"
)

// Config holds CLI configuration shared by the felfship commands. Each
// command reads only the options it needs.
type Config struct {
	ListenAddr     string
	ControllerAddr string
	WorkerPath     string

	ServeAddr   string
	PayloadPath string

	MaxPayloadBytes int
	StackSize       int
	LogLevel        string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ListenAddr:     DefaultListenAddr,
		ControllerAddr: DefaultControllerAddr,
		WorkerPath:     defaultWorkerPath(),
		ServeAddr:      DefaultServeAddr,
		StackSize:      DefaultStackSize,
		LogLevel:       DefaultLogLevel,
	}
}

// defaultWorkerPath looks for the stager next to the running executable.
func defaultWorkerPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultWorkerName
	}
	return filepath.Join(filepath.Dir(exe), DefaultWorkerName)
}

// MaxPayload returns MaxPayloadBytes as the wire length type.
func (c Config) MaxPayload() uint32 {
	return uint32(c.MaxPayloadBytes)
}

// Level returns the parsed log level.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func (c *Config) validateCommon() error {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return invalid("log-level %q: %v", c.LogLevel, err)
	}
	return nil
}

// ValidateWorker checks the options used by the stager.
func (c *Config) ValidateWorker() error {
	if err := c.validateCommon(); err != nil {
		return err
	}
	if err := checkAddr("controller", c.ControllerAddr); err != nil {
		return err
	}
	if c.MaxPayloadBytes < 0 || uint64(c.MaxPayloadBytes) > math.MaxUint32 {
		return invalid("max-payload-bytes must be between 0 and %d", uint64(math.MaxUint32))
	}
	if c.StackSize < 0 {
		return invalid("stack-size must not be negative")
	}
	if c.StackSize == 0 {
		c.StackSize = DefaultStackSize
	}
	return nil
}

// ValidateListener checks the options used by the listener.
func (c *Config) ValidateListener() error {
	if err := c.validateCommon(); err != nil {
		return err
	}
	if err := checkAddr("listen", c.ListenAddr); err != nil {
		return err
	}
	if c.WorkerPath == "" {
		return invalid("worker path is required")
	}
	return nil
}

// ValidateController checks the options used by the controller.
func (c *Config) ValidateController() error {
	if err := c.validateCommon(); err != nil {
		return err
	}
	if err := checkAddr("serve", c.ServeAddr); err != nil {
		return err
	}
	if c.PayloadPath == "" {
		return invalid("payload path is required")
	}
	return nil
}

func checkAddr(flag, addr string) error {
	if addr == "" {
		return invalid("%s address is required", flag)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return invalid("%s address %q: %v", flag, addr, err)
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}
