package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-acfjson/internal/config"
	"github.com/goliatone/go-acfjson/pkg/fieldtree"
	"github.com/goliatone/go-acfjson/pkg/normalize"
	"github.com/goliatone/go-acfjson/pkg/scan"
)

const sampleConfig = `
path: ./acf-json
pattern: "**/*.json"
dry_run: true
ascii: false
select:
  trigger: multiple
  write: all
scan:
  look_ahead: 100
types:
  gallery:
    min: 0
    insert: append
    preview:
      size: medium
      crop: false
log:
  level: debug
  format: json
`

func TestParse_FullFile(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, config.Parse([]byte(sampleConfig), &cfg))

	assert.Equal(t, "./acf-json", cfg.Path)
	assert.Equal(t, "**/*.json", cfg.Pattern)
	assert.True(t, cfg.DryRun)
	assert.False(t, cfg.EncodeOptions().ASCII)
	assert.Equal(t, "json", cfg.Log.Format)

	opts, err := cfg.SelectOptions()
	require.NoError(t, err)
	assert.Equal(t, normalize.SelectFillOptions{Trigger: normalize.TriggerMultiple, Write: normalize.WriteAll}, opts)

	bounds := cfg.Window()
	assert.Nil(t, bounds.LookBack)
	assert.Equal(t, scan.Window{LookBack: 10, LookAhead: 100}, bounds.Apply(scan.DocumentWindow))

	table, ok := cfg.Tables().Lookup("gallery")
	require.True(t, ok)
	assert.Equal(t, []string{"min", "insert", "preview"}, table.Keys())
	assert.Equal(t, 0, table[0].Value)

	preview, ok := table[2].Value.(*fieldtree.Object)
	require.True(t, ok, "nested mappings must become ordered objects")
	assert.Equal(t, []string{"size", "crop"}, preview.Keys())

	_, ok = cfg.Tables().Lookup("select")
	assert.True(t, ok, "built-in tables are kept")
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "*.json", cfg.Pattern)
	assert.True(t, cfg.Window().IsZero(), "unset window defers to the runner presets")
	assert.True(t, cfg.EncodeOptions().ASCII)

	opts, err := cfg.SelectOptions()
	require.NoError(t, err)
	assert.Equal(t, normalize.TriggerRequired, opts.Trigger)
	assert.Equal(t, normalize.WriteMissing, opts.Write)
}

func TestParse_RejectsInvalidValues(t *testing.T) {
	for _, raw := range []string{
		"select:\n  trigger: maybe\n",
		"select:\n  write: sometimes\n",
		"scan:\n  look_back: -1\n",
		"types:\n  gallery: [1, 2]\n",
	} {
		cfg := config.Default()
		assert.Error(t, config.Parse([]byte(raw), &cfg), raw)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("path: groups\nconfirm: true\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "groups", cfg.Path)
	assert.True(t, cfg.Confirm)
	assert.Equal(t, "*.json", cfg.Pattern, "defaults survive partial files")

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
