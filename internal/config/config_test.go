package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanq16/scenefetch/internal/utils"
)

const sampleYAML = `
token: abc123
data_root: /tmp/scannetpp
root_url: https://kaldir.vc.in.tum.de/scannetpp/download?version=v2&token=TOKEN&file=FILEPATH
meta_files:
  - splits/nvs_sem_train.txt
  - metadata/semantic_classes.txt
splits: [nvs_sem_train, nvs_sem_val, nvs_test]
download_splits: [nvs_sem_train]
download_options: [opt1, opt2]
option_assets:
  opt1: [x, y]
  opt2: [y, z]
exclude_assets:
  nvs_test: [scan_mesh_path]
zipped_assets: [dslr_resized_dir]
retry:
  attempts: 3
  backoff: 1s
`

func TestParseLayersOverDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.Token)
	assert.Equal(t, 3, cfg.Retry.Attempts)
	assert.Equal(t, time.Second, cfg.Retry.Backoff)
	assert.Equal(t, 200*time.Millisecond, cfg.Retry.Pause)
	assert.Equal(t, ".zip", cfg.ArchiveSuffix)
	assert.Equal(t, "data", cfg.RemoteData)
	assert.Equal(t, utils.DefaultUserAgent, cfg.HTTP.UserAgent)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "download.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0644))
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"nvs_sem_train", "nvs_sem_val", "nvs_test"}, cfg.Splits)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestAssetsToDownloadDedupsOptionsInOrder(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	assets, err := cfg.AssetsToDownload()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, assets)
}

func TestAssetsToDownloadPrecedence(t *testing.T) {
	cfg := Default()
	cfg.DefaultAssets = []string{"d"}
	assets, err := cfg.AssetsToDownload()
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, assets)

	cfg.DownloadOptions = []string{"o"}
	cfg.OptionAssets = map[string][]string{"o": {"o1"}}
	assets, _ = cfg.AssetsToDownload()
	assert.Equal(t, []string{"o1"}, assets)

	cfg.DownloadAssets = []string{"explicit"}
	assets, _ = cfg.AssetsToDownload()
	assert.Equal(t, []string{"explicit"}, assets)
}

func TestAssetsToDownloadUnknownOption(t *testing.T) {
	cfg := Default()
	cfg.DownloadOptions = []string{"missing"}
	_, err := cfg.AssetsToDownload()
	assert.True(t, errors.Is(err, utils.ErrConfig))
}

func TestIsExcluded(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	assert.True(t, cfg.IsExcluded("nvs_test", "scan_mesh_path"))
	assert.False(t, cfg.IsExcluded("nvs_sem_train", "scan_mesh_path"))
}

func TestValidate(t *testing.T) {
	base, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"placeholder token", func(c *Config) { c.Token = utils.UnsetToken }},
		{"placeholder data root", func(c *Config) { c.DataRoot = utils.UnsetDataRoot }},
		{"no root url", func(c *Config) { c.RootURL = "" }},
		{"root url without placeholder", func(c *Config) { c.RootURL = "https://host/static" }},
		{"zero attempts", func(c *Config) { c.Retry.Attempts = 0 }},
		{"no scene selection", func(c *Config) { c.DownloadSplits = nil }},
		{"negative limit", func(c *Config) { c.SceneLimit = -1 }},
		{"gs without placeholder", func(c *Config) { c.GSDir = "/tmp/gs"; c.GSURL = "https://gs" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.True(t, errors.Is(cfg.Validate(), utils.ErrConfig))
		})
	}

	metaOnly := base
	metaOnly.DownloadSplits = nil
	metaOnly.MetadataOnly = true
	assert.NoError(t, metaOnly.Validate())
}

func TestWithEnvAndDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nexport SCANNETPP_TOKEN=\"from-dotenv\"\nSCANNETPP_DATA_ROOT=/data/from-dotenv\n"), 0644))
	values, err := ReadDotEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", values[utils.EnvToken])

	t.Setenv(utils.EnvToken, "")
	t.Setenv(utils.EnvDataRoot, "/data/from-process")
	cfg := Default().WithEnv(Lookup(values))
	assert.Equal(t, "from-dotenv", cfg.Token)
	assert.Equal(t, "/data/from-process", cfg.DataRoot)
}

func TestReadDotEnvStripsInlineComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SCANNETPP_TOKEN=abc123  # my token\nSCANNETPP_DATA_ROOT=\"/data/x\" # root\n"), 0644))
	values, err := ReadDotEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", values[utils.EnvToken])
	assert.Equal(t, "/data/x", values[utils.EnvDataRoot])
}

func TestReadDotEnvMissingFile(t *testing.T) {
	values, err := ReadDotEnv(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestHTTPClientConfigBearer(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	assert.Empty(t, cfg.HTTPClientConfig().BearerToken)
	cfg.HTTP.BearerToken = true
	assert.Equal(t, "abc123", cfg.HTTPClientConfig().BearerToken)
}
