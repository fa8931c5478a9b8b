// Package config loads jdkapi settings from the built-in defaults, an optional
// YAML file and the environment.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Environment variables read by Load.
const (
	EnvJavaHome   = "JAVA_HOME"
	EnvJimage     = "JDKAPI_JIMAGE"
	EnvExtractDir = "JDKAPI_EXTRACT_DIR"
)

// DotEnvFile is loaded into the environment, without overriding variables
// that are already set, when it exists.
var DotEnvFile = ".env"

type Config struct {
	JavaHome string `yaml:"java_home"`
	// Jimage is the path of the jimage binary. See JimagePath.
	Jimage string `yaml:"jimage"`
	// ExtractDir is a tree written by `jimage extract` to use instead of
	// extracting the image on every run.
	ExtractDir    string `yaml:"extract_dir" validate:"omitempty,dir"`
	KeepExtracted bool   `yaml:"keep_extracted"`

	AddModules   []string `yaml:"add_modules" validate:"dive,required"`
	LimitModules []string `yaml:"limit_modules" validate:"dive,required"`

	ModuleFilter bool `yaml:"module_filter"`
	LinkCheck    bool `yaml:"link_check"`

	Log Log `yaml:"log"`
}

type Log struct {
	// Verbosity follows commonlog: 0 logs notices, 1 info, 2 debug and
	// negative values only more severe levels.
	Verbosity int    `yaml:"verbosity" validate:"gte=-4,lte=2"`
	File      string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	if err := decode(defaultsYAML, c); err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return c
}

// Load returns the defaults overlaid with the YAML file at path (skipped when
// path is empty) and the environment. The result is not validated, so that
// command-line flags can still be applied.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read configuration file: %w", err)
		}
		if err := decode(data, c); err != nil {
			return nil, fmt.Errorf("unable to parse configuration file %s: %w", path, err)
		}
	}
	c.applyEnv()
	return c, nil
}

func decode(data []byte, c *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvJavaHome); ok && v != "" {
		c.JavaHome = v
	}
	if v, ok := os.LookupEnv(EnvJimage); ok && v != "" {
		c.Jimage = v
	}
	if v, ok := os.LookupEnv(EnvExtractDir); ok && v != "" {
		c.ExtractDir = v
	}
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// JimagePath returns the jimage binary to run: the configured path, the one
// shipped in JavaHome, or plain "jimage" to be found on PATH.
func (c *Config) JimagePath() string {
	if c.Jimage != "" {
		return c.Jimage
	}
	if c.JavaHome != "" {
		bin := filepath.Join(c.JavaHome, "bin", "jimage")
		if _, err := os.Stat(bin); err == nil {
			return bin
		}
	}
	return "jimage"
}

// ImagePath returns the modules image of JavaHome, or "" if JavaHome is unset.
func (c *Config) ImagePath() string {
	if c.JavaHome == "" {
		return ""
	}
	return filepath.Join(c.JavaHome, "lib", "modules")
}
