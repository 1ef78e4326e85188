package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/shelf/internal/config"
)

func loadAppContext(t *testing.T, args ...string) (*appContext, error) {
	t.Helper()

	flags := &rootFlags{}
	app := &appContext{flags: flags}
	cmd := &cobra.Command{
		Use:  "probe",
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.load(cmd)
		},
		RunE: func(*cobra.Command, []string) error { return nil },
	}
	flags.bind(cmd)

	envFile := filepath.Join(t.TempDir(), "missing.env")
	args = append([]string{"--env-file", envFile}, args...)

	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return app, err
}

func TestLoadUsesDefaultsWithoutConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	app, err := loadAppContext(t)
	require.NoError(t, err)
	require.Equal(t, config.DefaultAPIURL, app.cfg.APIURL)
	require.False(t, app.cfg.Debug)
}

func TestLoadReadsConfigFileThenFlags(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, ".shelf", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("api_url: http://books.internal:9000\nlog_level: warn\n"), 0o644))

	app, err := loadAppContext(t)
	require.NoError(t, err)
	require.Equal(t, "http://books.internal:9000", app.cfg.APIURL)
	require.Equal(t, "warn", app.cfg.LogLevel)

	app, err = loadAppContext(t, "--api-url", "http://127.0.0.1:8080", "--debug")
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8080", app.cfg.APIURL)
	require.True(t, app.cfg.Debug)
}

func TestLoadReadsEnvFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SHELF_API_URL", "")
	require.NoError(t, os.Unsetenv("SHELF_API_URL"))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SHELF_API_URL=http://from-dotenv:8000\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("SHELF_API_URL") })

	app, err := loadAppContext(t, "--env-file", envFile)
	require.NoError(t, err)
	require.Equal(t, "http://from-dotenv:8000", app.cfg.APIURL)
}

func TestLoadRejectsInvalidFlagValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := loadAppContext(t, "--api-url", "not a url")
	require.Error(t, err)
	require.Contains(t, err.Error(), "validating flags")

	_, err = loadAppContext(t, "--log-level", "loud")
	require.Error(t, err)
}

func TestLoadReportsMalformedConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: [unterminated\n"), 0o644))

	_, err := loadAppContext(t, "--config", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse error")
}

func TestRootRegistersSubcommands(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	names := make([]string, 0, len(root.Commands()))
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	require.ElementsMatch(t, []string{"books", "authors", "serve", "version"}, names)

	books, _, err := root.Find([]string{"books", "delete"})
	require.NoError(t, err)
	require.NotNil(t, books.Flags().Lookup("force"))
}
