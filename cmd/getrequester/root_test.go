package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/samvad-hq/getrequester/internal/config"
	"github.com/samvad-hq/getrequester/internal/logger"
	"github.com/samvad-hq/getrequester/pkg/targets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(cfg, logger.NopLogger{})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGetCommandPrintsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"a": 1}`))
	}))
	defer srv.Close()

	cfg := &config.Config{AppName: "getrequester", OutputFormat: targets.FormatJSON}

	out, err := execute(t, cfg, "get", srv.URL)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, out)

	out, err = execute(t, cfg, "get", "--format", "raw", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, out)
}

func TestGetCommandFailsOnNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	cfg := &config.Config{AppName: "getrequester", OutputFormat: targets.FormatJSON}
	out, err := execute(t, cfg, "get", srv.URL)
	assert.Error(t, err)
	assert.Empty(t, out)
}

func TestTargetsCommandListsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("targets:\n  - id: a\n    name: Alpha\n    url: http://a\n"), 0o644))

	cfg := &config.Config{AppName: "getrequester", OutputFormat: targets.FormatJSON, TargetsFile: path}
	out, err := execute(t, cfg, "targets")
	require.NoError(t, err)
	assert.Equal(t, "a\tjson\thttp://a\tAlpha\n", out)

	cfg.TargetsFile = ""
	_, err = execute(t, cfg, "targets")
	assert.Error(t, err)
}
