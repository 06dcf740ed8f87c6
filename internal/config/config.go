// Package config loads the immutable run configuration.
//
// A Config is built once by the command layer (defaults, then the YAML file,
// then environment overrides, then interactive answers) and passed by pointer
// to every component. Nothing below cmd/ mutates it.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tanq16/scenefetch/internal/fetcher"
	"github.com/tanq16/scenefetch/internal/utils"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Token      string   `yaml:"token"`
	DataRoot   string   `yaml:"data_root"`
	RootURL    string   `yaml:"root_url"`
	RemoteData string   `yaml:"remote_data_dir"`
	MetaFiles  []string `yaml:"meta_files"`
	Splits     []string `yaml:"splits"`

	DownloadScenes  []string            `yaml:"download_scenes"`
	DownloadSplits  []string            `yaml:"download_splits"`
	SceneLimit      int                 `yaml:"scene_limit"`
	DownloadAssets  []string            `yaml:"download_assets"`
	DownloadOptions []string            `yaml:"download_options"`
	OptionAssets    map[string][]string `yaml:"option_assets"`
	DefaultAssets   []string            `yaml:"default_assets"`
	ExcludeAssets   map[string][]string `yaml:"exclude_assets"`
	ZippedAssets    []string            `yaml:"zipped_assets"`
	AssetPaths      map[string]string   `yaml:"asset_paths"`
	ArchiveSuffix   string              `yaml:"archive_suffix"`

	DryRun       bool `yaml:"dry_run"`
	Verbose      bool `yaml:"verbose"`
	MetadataOnly bool `yaml:"metadata_only"`

	GSDir string `yaml:"scannetpp_gs_dir"`
	GSURL string `yaml:"scannetpp_gs_url"`

	Retry RetryConfig `yaml:"retry"`
	HTTP  HTTPConfig  `yaml:"http"`
	S3    S3Config    `yaml:"s3"`
}

type RetryConfig struct {
	Attempts int           `yaml:"attempts"`
	Backoff  time.Duration `yaml:"backoff"`
	Pause    time.Duration `yaml:"pause"`
}

type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	Proxy     string        `yaml:"proxy"`

	Headers map[string]string `yaml:"headers"`

	// BearerToken also sends the access token as an Authorization header.
	BearerToken bool `yaml:"bearer_token"`
}

type S3Config struct {
	Profile string `yaml:"profile"`
	Region  string `yaml:"region"`
}

func Default() Config {
	return Config{
		Token:         utils.UnsetToken,
		DataRoot:      utils.UnsetDataRoot,
		RemoteData:    "data",
		ArchiveSuffix: ".zip",
		Retry: RetryConfig{
			Attempts: fetcher.DefaultMaxAttempts,
			Backoff:  fetcher.DefaultBackoff,
			Pause:    fetcher.DefaultPause,
		},
		HTTP: HTTPConfig{
			Timeout:   3 * time.Minute,
			UserAgent: utils.DefaultUserAgent,
		},
	}
}

// LoadFromFile layers the YAML file at path over Default.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// NeedsToken is true while the token is empty or still the template placeholder.
func (c *Config) NeedsToken() bool {
	return strings.TrimSpace(c.Token) == "" || c.Token == utils.UnsetToken
}

func (c *Config) NeedsDataRoot() bool {
	return strings.TrimSpace(c.DataRoot) == "" || c.DataRoot == utils.UnsetDataRoot
}

// Validate checks everything the orchestrator relies on.
func (c *Config) Validate() error {
	if c.NeedsToken() {
		return utils.ConfigError("no download token provided")
	}
	if c.NeedsDataRoot() {
		return utils.ConfigError("no data_root provided")
	}
	if c.RootURL == "" {
		return utils.ConfigError("root_url is required")
	}
	if !strings.Contains(c.RootURL, utils.FilePathPlaceholder) {
		return utils.ConfigError("root_url must contain the %s placeholder", utils.FilePathPlaceholder)
	}
	if c.GSDir != "" && !strings.Contains(c.GSURL, utils.FilePathPlaceholder) {
		return utils.ConfigError("scannetpp_gs_url must contain the %s placeholder", utils.FilePathPlaceholder)
	}
	if c.Retry.Attempts < 1 {
		return utils.ConfigError("retry.attempts must be at least 1")
	}
	if c.MetadataOnly {
		return nil
	}
	if len(c.DownloadScenes) == 0 && len(c.DownloadSplits) == 0 {
		return utils.ConfigError("one of download_scenes or download_splits is required")
	}
	if c.SceneLimit < 0 {
		return utils.ConfigError("scene_limit cannot be negative")
	}
	if _, err := c.AssetsToDownload(); err != nil {
		return err
	}
	return nil
}

// AssetsToDownload picks download_assets, else the union of download_options
// in first-seen order, else default_assets.
func (c *Config) AssetsToDownload() ([]string, error) {
	if len(c.DownloadAssets) > 0 {
		return append([]string(nil), c.DownloadAssets...), nil
	}
	if len(c.DownloadOptions) > 0 {
		var assets []string
		seen := make(map[string]bool)
		for _, option := range c.DownloadOptions {
			optionAssets, ok := c.OptionAssets[option]
			if !ok {
				return nil, utils.ConfigError("unknown download option %q", option)
			}
			for _, asset := range optionAssets {
				if !seen[asset] {
					seen[asset] = true
					assets = append(assets, asset)
				}
			}
		}
		return assets, nil
	}
	return append([]string(nil), c.DefaultAssets...), nil
}

// IsExcluded reports whether asset is excluded for scenes of split.
func (c *Config) IsExcluded(split, asset string) bool {
	for _, a := range c.ExcludeAssets[split] {
		if a == asset {
			return true
		}
	}
	return false
}

func (c *Config) RetryOptions() fetcher.Options {
	return fetcher.Options{
		MaxAttempts: c.Retry.Attempts,
		Backoff:     c.Retry.Backoff,
		Pause:       c.Retry.Pause,
		Sleep:       utils.Sleep,
	}
}

func (c *Config) HTTPClientConfig() utils.HTTPClientConfig {
	hc := utils.HTTPClientConfig{
		Timeout:   c.HTTP.Timeout,
		UserAgent: c.HTTP.UserAgent,
		ProxyURL:  c.HTTP.Proxy,
		Headers:   c.HTTP.Headers,
	}
	if c.HTTP.BearerToken {
		hc.BearerToken = c.Token
	}
	return hc
}
