package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "netbom.yaml", `
format: tsv
group_by: value, footprint, field("Vendor")
extra_fields: [Vendor, MPN]
exclude_dnp: true
quote: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tsv", cfg.Format)
	assert.Equal(t, `value, footprint, field("Vendor")`, cfg.GroupBy)
	assert.Equal(t, []string{"Vendor", "MPN"}, cfg.ExtraFields)
	assert.True(t, cfg.ExcludeDNP)
	assert.True(t, cfg.Quote)
	assert.False(t, cfg.Ungrouped)
	assert.Equal(t, DefaultCoverage, cfg.Coverage, "unset keys keep their defaults")
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadHCL(t *testing.T) {
	path := writeFile(t, "netbom.hcl", `
format       = "html"
group_by     = "value + footprint + field:MPN"
extra_fields = ["MPN"]
ungrouped    = false
coverage     = "reject"
dialect      = "pads"
log_format   = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	want := Default()
	want.Format = "html"
	want.GroupBy = "value + footprint + field:MPN"
	want.ExtraFields = []string{"MPN"}
	want.Coverage = "reject"
	want.Dialect = "pads"
	want.LogFormat = "json"
	assert.Equal(t, want, cfg)
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		contains string
	}{
		{"unknown yaml key", "c.yaml", "colour: red\n", "field colour not found"},
		{"bad yaml type", "c.yaml", "exclude_dnp: maybe\n", "failed to decode YAML"},
		{"unknown hcl attribute", "c.hcl", "colour = \"red\"\n", "Unsupported argument"},
		{"bad hcl syntax", "c.hcl", "format = \n", "failed to parse HCL"},
		{"invalid coverage", "c.yaml", "coverage: sometimes\n", "invalid coverage"},
		{"invalid log level", "c.hcl", "log_level = \"loud\"\n", "invalid log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load(writeFile(t, "netbom.toml", "format = 'csv'"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())
	assert.NoError(t, Config{}.Validate(), "empty values are allowed")
	assert.NoError(t, Config{Coverage: "IGNORE"}.Validate())
	assert.Error(t, Config{LogFormat: "xml"}.Validate())
}
