package testkit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/testkit/internal/async"
)

// DefaultDirectoryName is the test directory created under os.TempDir().
const DefaultDirectoryName = "org.roach88.testkit.tests"

// DefaultResourceRoot is where bundled fixtures live, relative to the
// package under test.
const DefaultResourceRoot = "testdata/resources"

// DefaultTimeout is how long AssertOn waits for assertions.
const DefaultTimeout = async.DefaultTimeout

// Config holds the settings shared by a test suite.
//
// Loaded from YAML:
//
//	test_directory: org.example.tests   # name under os.TempDir(), or absolute
//	resource_root: testdata/resources
//	timeout: 5s
type Config struct {
	// TestDirectory is the directory emptied before each test.
	// Relative values are resolved under os.TempDir().
	TestDirectory string `yaml:"test_directory"`

	// ResourceRoot is the directory fixture files are looked up in.
	ResourceRoot string `yaml:"resource_root"`

	// Timeout bounds AssertOn.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		TestDirectory: DefaultDirectoryName,
		ResourceRoot:  DefaultResourceRoot,
		Timeout:       DefaultTimeout,
	}
}

// LoadConfig reads a YAML config file.
// Missing fields take their defaults. Unknown fields are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes a YAML config document.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TestDirectory == "" {
		c.TestDirectory = def.TestDirectory
	}
	if c.ResourceRoot == "" {
		c.ResourceRoot = def.ResourceRoot
	}
	if c.Timeout == 0 {
		c.Timeout = def.Timeout
	}
	return c
}

func (c Config) validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.TestDirectory != "" {
		if err := checkDirectory(c.directory()); err != nil {
			return err
		}
	}
	return nil
}

// Directory returns the absolute test directory.
func (c Config) Directory() string {
	return c.withDefaults().directory()
}

func (c Config) directory() string {
	if filepath.IsAbs(c.TestDirectory) {
		return filepath.Clean(c.TestDirectory)
	}
	return filepath.Join(os.TempDir(), c.TestDirectory)
}

// checkDirectory refuses directories whose contents must never be wiped.
func checkDirectory(dir string) error {
	clean := filepath.Clean(dir)
	switch clean {
	case string(filepath.Separator), ".", filepath.Clean(os.TempDir()):
		return fmt.Errorf("test directory %q is not a dedicated directory", dir)
	}
	if home, err := os.UserHomeDir(); err == nil && clean == filepath.Clean(home) {
		return fmt.Errorf("test directory %q is not a dedicated directory", dir)
	}
	return nil
}
