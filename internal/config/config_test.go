package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, DefaultURL, cfg.URL)
	require.Equal(t, "index.html", filepath.Base(cfg.File))
	require.True(t, cfg.Editor.ShowLineNumbers)
	require.Equal(t, 1000, cfg.Editor.HistoryLimit)
	require.Equal(t, "4", cfg.Theme.Tag)
	require.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	require.False(t, cfg.Tracing.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestValidateURL(t *testing.T) {
	require.NoError(t, ValidateURL("https://example.com"))
	require.NoError(t, ValidateURL("http://localhost:8080/page.html"))
	require.Error(t, ValidateURL("ftp://example.com"))
	require.Error(t, ValidateURL("example.com"))
	require.Error(t, ValidateURL("https://"))
}

func TestValidateTheme(t *testing.T) {
	require.NoError(t, ValidateTheme(ThemeConfig{}))
	require.NoError(t, ValidateTheme(ThemeConfig{Tag: "#10B981", Doctype: "#fff", Comment: "240", String: "0"}))

	for name, th := range map[string]ThemeConfig{
		"bad hex":     {Tag: "#10B98"},
		"hex letters": {Tag: "#GGGGGG"},
		"ansi range":  {Comment: "256"},
		"ansi word":   {String: "green"},
		"padded ansi": {Doctype: "04"},
		"help style":  {Help: "neon"},
	} {
		require.Error(t, ValidateTheme(th), name)
	}
}

func TestValidate(t *testing.T) {
	base := Defaults()

	cfg := base
	cfg.Editor.HistoryLimit = -2
	require.ErrorContains(t, cfg.Validate(), "history_limit")

	cfg = base
	cfg.Fetch.Timeout = -time.Second
	require.ErrorContains(t, cfg.Validate(), "fetch.timeout")

	cfg = base
	cfg.Recent.DBPath = ""
	require.ErrorContains(t, cfg.Validate(), "recent.db_path")

	cfg = base
	cfg.LogLevel = "chatty"
	require.ErrorContains(t, cfg.Validate(), "log_level")

	cfg = base
	cfg.URL = ""
	require.NoError(t, cfg.Validate(), "empty url disables the start fetch")
}

func TestValidateTracing(t *testing.T) {
	tr := Defaults().Tracing
	require.NoError(t, ValidateTracing(tr))

	tr.SampleRate = 1.5
	require.Error(t, ValidateTracing(tr))

	tr = Defaults().Tracing
	tr.Exporter = "zipkin"
	require.Error(t, ValidateTracing(tr))

	tr = Defaults().Tracing
	tr.Enabled = true
	tr.FilePath = ""
	require.ErrorContains(t, ValidateTracing(tr), "file_path")

	tr.Exporter = "otlp"
	tr.OTLPEndpoint = ""
	require.ErrorContains(t, ValidateTracing(tr), "otlp_endpoint")
}

func TestDefaultConfigTemplate_Parses(t *testing.T) {
	var m map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &m))
	require.Equal(t, DefaultURL, m["url"])

	theme, ok := m["theme"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "4", theme["tag"])
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestSetValue_PreservesComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SetValue(path, "theme.tag", "#112233"))
	require.NoError(t, SetValue(path, "read_only", "true"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# Wizard Configuration")

	var m map[string]any
	require.NoError(t, yaml.Unmarshal(data, &m))
	require.Equal(t, true, m["read_only"])
	require.Equal(t, "#112233", m["theme"].(map[string]any)["tag"])
}

func TestSetValue_CreatesFileAndNestedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SetValue(path, "watch.debounce", "250ms"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, yaml.Unmarshal(data, &m))
	require.Equal(t, "250ms", m["watch"].(map[string]any)["debounce"])
}

func TestSetValue_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.Error(t, SetValue(path, "theme..tag", "1"))
	require.ErrorContains(t, SetValue(path, "theme", "1"), "not a scalar")
	require.ErrorContains(t, SetValue(path, "url.host", "x"), "not a mapping")
}
