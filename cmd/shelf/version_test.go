package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func stampBuild(t *testing.T, v, c, d string) {
	t.Helper()
	originalVersion, originalCommit, originalDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = originalVersion, originalCommit, originalDate
	})
	version, commit, date = v, c, d
}

func executeVersion(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	envFile := filepath.Join(t.TempDir(), "missing.env")
	root.SetArgs(append([]string{"--env-file", envFile, "--api-url", "http://books.internal:9000", "version"}, args...))

	require.NoError(t, root.Execute())
	return buf.String()
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	stampBuild(t, "1.2.3", "abcdef1", "2026-10-03")

	output := executeVersion(t)
	require.Contains(t, output, "Shelf 1.2.3")
	require.Contains(t, output, "commit: abcdef1")
	require.Contains(t, output, "built: 2026-10-03")
	require.Contains(t, output, "go: go")
	require.Contains(t, output, "backend: http://books.internal:9000")
}

func TestVersionCommandJSON(t *testing.T) {
	stampBuild(t, "1.2.3", "abcdef1", "2026-10-03")

	var info buildInfo
	require.NoError(t, json.Unmarshal([]byte(executeVersion(t, "--json")), &info))
	require.Equal(t, "1.2.3", info.Version)
	require.Equal(t, "abcdef1", info.Commit)
	require.Equal(t, "http://books.internal:9000", info.APIURL)
	require.NotEmpty(t, info.Go)
}

func TestCurrentBuildKeepsStampedVersion(t *testing.T) {
	stampBuild(t, "2.0.0", "none", "unknown")
	require.Equal(t, "2.0.0", currentBuild().Version)
}
