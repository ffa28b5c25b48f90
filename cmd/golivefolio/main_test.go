package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmiguelok/golivefolio/internal/config"
	"github.com/gabrielmiguelok/golivefolio/pkg/logging"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "golivefolio.yml")
	require.NoError(t, cfg.Save(path))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "golivefolio dev\n", out)
}

func TestCheck_BuiltInContent(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Store.Driver = config.DriverSQLite
	cfg.Store.Path = filepath.Join(t.TempDir(), "prefs.db")

	out, err := execute(t, "check", "--config", writeConfig(t, cfg))
	require.NoError(t, err)
	assert.Contains(t, out, "config: ok (store=sqlite, codec=phoenix)")
	assert.Contains(t, out, "content: Dev Charan Sai P, 8 skills, 4 projects [web, data, mobile]")
	assert.Contains(t, out, "store: ok")

	_, err = os.Stat(cfg.Store.Path)
	assert.NoError(t, err)
}

func TestCheck_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.Level = "loud"

	_, err := execute(t, "check", "--config", writeConfig(t, cfg))
	assert.ErrorContains(t, err, "log.level")
}

func TestCheck_MissingContent(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Content.Path = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := execute(t, "check", "--config", writeConfig(t, cfg))
	assert.ErrorContains(t, err, "reading content")
}

func TestNewApp(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/site/static/cv.pdf", []byte("%PDF"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Content.Static = "/site/static"
	cfg.Live.Codec = "msgpack"

	a, err := newApp(cfg, fsys, logging.NopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { a.store.Close() })

	for path, want := range map[string]int{
		"/healthz":       http.StatusOK,
		"/":              http.StatusOK,
		"/static/cv.pdf": http.StatusOK,
		"/_live/missing": http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		a.server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Code, path)
	}
	assert.Equal(t, "msgpack", a.live.Codecs().Default().Name())
}

func TestNewApp_UnknownCodec(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Live.Codec = "xml"

	_, err := newApp(cfg, afero.NewMemMapFs(), logging.NopLogger{})
	assert.Error(t, err)
}
