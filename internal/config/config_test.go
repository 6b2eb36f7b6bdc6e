package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `storage:
  home: /sdcard/Scripts
  external_root: /sdcard
  cache_capacity: 0
  external_cache_capacity: 7
  extensions: [".js"]
download:
  max_attempts: 5
  initial_delay: 1s
  timeout: 2m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, scriptfs.ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/sdcard/Scripts", cfg.Storage.Home)
	assert.Equal(t, "/sdcard", cfg.Storage.ExternalRoot)
	assert.Equal(t, 0, cfg.CacheCapacity(), "explicit zero is kept")
	assert.Equal(t, 7, cfg.ExternalCacheCapacity())
	assert.Equal(t, []string{".js"}, cfg.Storage.Extensions)
	assert.Equal(t, 5, cfg.MaxAttempts())

	delay, err := cfg.InitialDelay()
	require.NoError(t, err)
	assert.Equal(t, time.Second, delay)
	timeout, err := cfg.DownloadTimeout()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, timeout)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, scriptfs.ConfigFileName), []byte("storage: [\n"), 0644))

	_, err := Load(dir)
	assert.ErrorIs(t, err, scriptfs.ErrInvalidConfig)
}

func TestMerge_OverridesOnlySetFields(t *testing.T) {
	cfg := Defaults()
	defaultRoot := cfg.Storage.ExternalRoot

	cfg.Merge(&Config{Storage: StorageConfig{Home: "/data/scripts", CacheCapacity: intPtr(2)}})

	assert.Equal(t, "/data/scripts", cfg.Storage.Home)
	assert.Equal(t, defaultRoot, cfg.Storage.ExternalRoot)
	assert.Equal(t, 2, cfg.CacheCapacity())
	assert.Equal(t, scriptfs.ExternalStorageCacheCapacity, cfg.ExternalCacheCapacity())
	assert.Equal(t, scriptfs.ScriptExtensions, cfg.Storage.Extensions)

	cfg.Merge(nil)
	assert.Equal(t, "/data/scripts", cfg.Storage.Home)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvHome, "/env/home")
	t.Setenv(EnvExternalRoot, "/env")
	t.Setenv(EnvCacheCapacity, "4")

	cfg := Defaults()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "/env/home", cfg.Storage.Home)
	assert.Equal(t, "/env", cfg.Storage.ExternalRoot)
	assert.Equal(t, 4, cfg.CacheCapacity())
}

func TestApplyEnv_InvalidCapacity(t *testing.T) {
	t.Setenv(EnvCacheCapacity, "ten")

	err := Defaults().ApplyEnv()
	assert.ErrorIs(t, err, scriptfs.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Defaults().Validate())

	cfg := Defaults()
	cfg.Storage.Home = ""
	cfg.Storage.CacheCapacity = intPtr(-1)
	cfg.Download.Timeout = "soon"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, scriptfs.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "storage.home")
	assert.Contains(t, err.Error(), "cache_capacity")
	assert.Contains(t, err.Error(), "download.timeout")
}
