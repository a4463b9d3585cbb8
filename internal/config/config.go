// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/hex"
	"net/url"
	"strings"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/workbenchlabs/workbench/internal/core"
)

// Config holds the global configuration for the application.
type Config struct {
	Log       logx.LoggingConfig `yaml:"log" json:"log"`
	Packages  PackagesConfig     `yaml:"packages" json:"packages"`
	Docker    DockerConfig       `yaml:"docker" json:"docker"`
	Node      NodeConfig         `yaml:"node" json:"node"`
	JDK       JDKConfig          `yaml:"jdk" json:"jdk"`
	FastFetch FastFetchConfig    `yaml:"fastfetch" json:"fastfetch"`
}

// PackagesConfig represents the `packages` configuration block.
type PackagesConfig struct {
	// Base is the ordered base toolchain package list.
	Base []string `yaml:"base" json:"base"`
}

func (c *PackagesConfig) Validate() error {
	if len(c.Base) == 0 {
		return errorx.IllegalArgument.New("packages.base must not be empty")
	}

	for _, name := range c.Base {
		if strings.TrimSpace(name) == "" {
			return errorx.IllegalArgument.New("packages.base contains an empty package name")
		}
	}

	return nil
}

// DockerConfig represents the `docker` configuration block.
type DockerConfig struct {
	// GPGKeyURL is the vendor repository signing key.
	GPGKeyURL string `yaml:"gpgKeyUrl" json:"gpgKeyUrl"`
	// RepoURL is the apt repository base URL.
	RepoURL string `yaml:"repoUrl" json:"repoUrl"`
}

func (c *DockerConfig) Validate() error {
	if err := validateHTTPSURL(c.GPGKeyURL); err != nil {
		return errorx.IllegalArgument.Wrap(err, "invalid docker.gpgKeyUrl: %s", c.GPGKeyURL)
	}

	if err := validateHTTPSURL(c.RepoURL); err != nil {
		return errorx.IllegalArgument.Wrap(err, "invalid docker.repoUrl: %s", c.RepoURL)
	}

	return nil
}

// NodeConfig represents the `node` configuration block.
type NodeConfig struct {
	// Major is the Node.js major release line, e.g. "22".
	Major string `yaml:"major" json:"major"`
	// SetupScriptURL is the NodeSource repository setup script.
	SetupScriptURL string `yaml:"setupScriptUrl" json:"setupScriptUrl"`
}

func (c *NodeConfig) Validate() error {
	if strings.TrimSpace(c.Major) == "" {
		return errorx.IllegalArgument.New("node.major must not be empty")
	}

	if err := validateHTTPSURL(c.SetupScriptURL); err != nil {
		return errorx.IllegalArgument.Wrap(err, "invalid node.setupScriptUrl: %s", c.SetupScriptURL)
	}

	return nil
}

// JDKConfig represents the `jdk` configuration block. The release is pinned
// by exact version, download URL and sha256 checksum.
type JDKConfig struct {
	Version    string `yaml:"version" json:"version"`
	URL        string `yaml:"url" json:"url"`
	Checksum   string `yaml:"checksum" json:"checksum"`
	InstallDir string `yaml:"installDir" json:"installDir"`
}

func (c *JDKConfig) Validate() error {
	if strings.TrimSpace(c.Version) == "" {
		return errorx.IllegalArgument.New("jdk.version must not be empty")
	}

	if err := validateHTTPSURL(c.URL); err != nil {
		return errorx.IllegalArgument.Wrap(err, "invalid jdk.url: %s", c.URL)
	}

	if raw, err := hex.DecodeString(c.Checksum); err != nil || len(raw) != 32 {
		return errorx.IllegalArgument.New("jdk.checksum must be a hex encoded sha256 digest")
	}

	if strings.TrimSpace(c.InstallDir) == "" {
		return errorx.IllegalArgument.New("jdk.installDir must not be empty")
	}

	return nil
}

// FastFetchConfig represents the `fastfetch` configuration block.
type FastFetchConfig struct {
	RepoURL string `yaml:"repoUrl" json:"repoUrl"`
	Ref     string `yaml:"ref" json:"ref"`
}

func (c *FastFetchConfig) Validate() error {
	if err := validateHTTPSURL(c.RepoURL); err != nil {
		return errorx.IllegalArgument.Wrap(err, "invalid fastfetch.repoUrl: %s", c.RepoURL)
	}

	return nil
}

// Validate validates all configuration fields.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return errorx.IllegalArgument.Wrap(err, "invalid log.level: %s", c.Log.Level)
	}
	if err := c.Packages.Validate(); err != nil {
		return err
	}
	if err := c.Docker.Validate(); err != nil {
		return err
	}
	if err := c.Node.Validate(); err != nil {
		return err
	}
	if err := c.JDK.Validate(); err != nil {
		return err
	}
	if err := c.FastFetch.Validate(); err != nil {
		return err
	}
	return nil
}

func validateHTTPSURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}

	if u.Scheme != "https" || u.Host == "" {
		return errorx.IllegalArgument.New("expected an absolute https URL, got %q", raw)
	}

	return nil
}

func defaultConfig() Config {
	return Config{
		Log: logx.LoggingConfig{
			Level:          "Info",
			ConsoleLogging: true,
			FileLogging:    false,
		},
		Packages: PackagesConfig{
			Base: []string{
				"build-essential",
				"curl",
				"wget",
				"git",
				"ca-certificates",
				"gnupg",
				"lsb-release",
				"unzip",
			},
		},
		Docker: DockerConfig{
			GPGKeyURL: "https://download.docker.com/linux/ubuntu/gpg",
			RepoURL:   "https://download.docker.com/linux/ubuntu",
		},
		Node: NodeConfig{
			Major:          "22",
			SetupScriptURL: "https://deb.nodesource.com/setup_22.x",
		},
		JDK: JDKConfig{
			Version:    "21.0.4",
			URL:        "https://github.com/adoptium/temurin21-binaries/releases/download/jdk-21.0.4%2B7/OpenJDK21U-jdk_x64_linux_hotspot_21.0.4_7.tar.gz",
			Checksum:   "51fb4d03a4429c39d397d3a03a779077eca6b009f898ffd55f8e902e495050ac",
			InstallDir: core.Paths().JavaHomeDir,
		},
		FastFetch: FastFetchConfig{
			RepoURL: "https://github.com/fastfetch-cli/fastfetch.git",
			Ref:     "2.25.0",
		},
	}
}

var globalConfig = defaultConfig()

// Initialize loads the configuration from the specified file on top of the
// built-in defaults. An empty path keeps the defaults.
func Initialize(path string) error {
	if path != "" {
		globalConfig = defaultConfig()
		viper.Reset()
		viper.SetConfigFile(path)
		viper.SetEnvPrefix("WORKBENCH")
		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

		err := viper.ReadInConfig()
		if err != nil {
			return NotFoundError.Wrap(err, "failed to read config file: %s", path).
				WithProperty(errorx.PropertyPayload(), path)
		}

		if err := viper.Unmarshal(&globalConfig); err != nil {
			return errorx.IllegalFormat.Wrap(err, "failed to parse configuration").
				WithProperty(errorx.PropertyPayload(), path)
		}
	}

	return globalConfig.Validate()
}

// Get returns the loaded configuration.
func Get() Config {
	return globalConfig
}

// Set replaces the loaded configuration, primarily for tests.
func Set(c *Config) {
	globalConfig = *c
}
