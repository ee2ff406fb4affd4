package cmd

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thiagokokada/guit-go/internal/app"
	gitbackend "github.com/thiagokokada/guit-go/internal/git/backend"
	"github.com/thiagokokada/guit-go/internal/tui"
)

// isolateConfig points the default config location at an empty directory.
func isolateConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)
}

func resolveArgs(t *testing.T, args ...string) (settings, error) {
	t.Helper()
	var got settings
	called := false
	err := run(args, &bytes.Buffer{}, func(s settings) error {
		called = true
		got = s
		return nil
	})
	if err == nil {
		require.True(t, called, "launch was not called")
	}
	return got, err
}

func TestRunDefaults(t *testing.T) {
	isolateConfig(t)

	s, err := resolveArgs(t)
	require.NoError(t, err)
	require.Equal(t, ".", s.RepoPath)
	require.Equal(t, gitbackend.KindNative, s.Backend)
	require.Equal(t, app.Limits{Commits: 20, Reflog: 100}, s.Limits)
	require.Equal(t, tui.DefaultTickInterval, s.UI.TickInterval)
	require.True(t, s.UI.AutoReload)
	require.Equal(t, tui.ThemeAuto, s.UI.Theme)
	require.False(t, s.Verbose)
	require.Empty(t, s.LogFile)
}

func TestRunFlagsOverrideConfig(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[general]
commits_limit = 5
reflog_limit = 7
tick_interval_ms = 100
backend = "gitcli"
mode = "light"
`), 0o644))

	s, err := resolveArgs(t, "--config", path, "--commits", "42", "--mode", "dark", "--nowatch", "--verbose", "--log-file", "guit.log")
	require.NoError(t, err)
	require.Equal(t, app.Limits{Commits: 42, Reflog: 7}, s.Limits)
	require.Equal(t, gitbackend.KindGitCLI, s.Backend)
	require.Equal(t, 100*time.Millisecond, s.UI.TickInterval)
	require.Equal(t, tui.ThemeDark, s.UI.Theme)
	require.False(t, s.UI.AutoReload)
	require.True(t, s.Verbose)
	require.Equal(t, "guit.log", s.LogFile)
}

func TestRunRepoPath(t *testing.T) {
	isolateConfig(t)

	s, err := resolveArgs(t, "--repo-path", "/srv/repo")
	require.NoError(t, err)
	require.Equal(t, "/srv/repo", s.RepoPath)

	s, err = resolveArgs(t, "--repo-path", "/srv/repo", "/tmp/other")
	require.NoError(t, err)
	require.Equal(t, "/tmp/other", s.RepoPath)
}

func TestRunRejectsBadInput(t *testing.T) {
	isolateConfig(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "backend", args: []string{"--backend", "svn"}, want: "general.backend"},
		{name: "mode", args: []string{"--mode", "sepia"}, want: "general.mode"},
		{name: "commits", args: []string{"--commits", "0"}, want: "general.commits_limit"},
		{name: "too_many_args", args: []string{"a", "b"}, want: "accepts at most 1 arg"},
		{name: "unknown_flag", args: []string{"--limit", "3"}, want: "unknown flag"},
		{name: "missing_config", args: []string{"--config", filepath.Join(t.TempDir(), "nope.toml")}, want: "load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveArgs(t, tt.args...)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"--version"}, &out, func(settings) error {
		t.Fatal("launch should not run with --version")
		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, strings.TrimSpace(out.String()))
}

func TestRunPropagatesLaunchError(t *testing.T) {
	isolateConfig(t)
	boom := errors.New("boom")
	err := run(nil, &bytes.Buffer{}, func(settings) error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestLaunchNotARepository(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	err := launch(settings{RepoPath: t.TempDir(), Backend: gitbackend.KindNative})
	require.ErrorIs(t, err, gitbackend.ErrRepositoryNotFound)
}

func TestSetupLogging(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "guit.log")
	closeLog, err := setupLogging(path, true)
	require.NoError(t, err)
	slog.Debug("hello", slog.Int("n", 1))
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "msg=hello")
	require.Contains(t, string(data), "n=1")
}

func TestSetupLoggingInfoLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "guit.log")
	closeLog, err := setupLogging(path, false)
	require.NoError(t, err)
	slog.Debug("hidden")
	slog.Info("shown")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "hidden")
	require.Contains(t, string(data), "shown")
}
