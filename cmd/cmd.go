package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thiagokokada/guit-go/internal/app"
	"github.com/thiagokokada/guit-go/internal/buildinfo"
	"github.com/thiagokokada/guit-go/internal/config"
	"github.com/thiagokokada/guit-go/internal/git"
	gitbackend "github.com/thiagokokada/guit-go/internal/git/backend"
	"github.com/thiagokokada/guit-go/internal/tui"
)

type flags struct {
	repoPath    string
	configPath  string
	commits     int
	reflog      int
	backend     string
	mode        string
	noWatch     bool
	logFile     string
	verbose     bool
	showVersion bool
}

// settings is the resolved configuration handed to launch.
type settings struct {
	RepoPath string
	Backend  gitbackend.Kind
	Limits   app.Limits
	UI       tui.Options
	LogFile  string
	Verbose  bool
}

func Run() error {
	return run(os.Args[1:], os.Stdout, launch)
}

func run(args []string, out io.Writer, start func(settings) error) error {
	cmd := newRootCmd(out, start)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCmd(out io.Writer, start func(settings) error) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "guit [path]",
		Short:         "Browse a git repository from the terminal",
		Long:          "guit shows the working tree status, recent commits, branches and the HEAD reflog of a git repository in a keyboard driven terminal dashboard.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.showVersion {
				fmt.Fprintln(out, buildinfo.VersionWithTags())
				return nil
			}
			s, err := resolve(cmd, f, args)
			if err != nil {
				return err
			}
			return start(s)
		},
	}
	cmd.SetOut(out)

	fs := cmd.Flags()
	fs.StringVar(&f.repoPath, "repo-path", "", "path to the repository (defaults to the current directory)")
	fs.StringVar(&f.configPath, "config", "", "path to the configuration file")
	fs.IntVar(&f.commits, "commits", config.DefaultCommitsLimit, "number of commits to show")
	fs.IntVar(&f.reflog, "reflog", config.DefaultReflogLimit, "number of reflog entries to show")
	fs.StringVar(&f.backend, "backend", gitbackend.KindNative.String(), "repository backend: native or gitcli")
	fs.StringVar(&f.mode, "mode", tui.ThemeAuto.String(), "color mode: auto, light, or dark")
	fs.BoolVar(&f.noWatch, "nowatch", false, "disable automatic reload when repository changes")
	fs.StringVar(&f.logFile, "log-file", "", "write logs to this file")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose logging")
	fs.BoolVar(&f.showVersion, "version", false, "print version information and exit")
	return cmd
}

// resolve merges the configuration file with the flags the user set
// explicitly.
func resolve(cmd *cobra.Command, f flags, args []string) (settings, error) {
	var (
		cfg config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.Load(f.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return settings{}, fmt.Errorf("load config: %w", err)
	}

	changed := cmd.Flags().Changed
	if changed("commits") {
		cfg.General.CommitsLimit = f.commits
	}
	if changed("reflog") {
		cfg.General.ReflogLimit = f.reflog
	}
	if changed("backend") {
		cfg.General.Backend = f.backend
	}
	if changed("mode") {
		cfg.General.Mode = f.mode
	}
	if f.noWatch {
		cfg.General.AutoReload = false
	}
	if err := cfg.Validate(); err != nil {
		return settings{}, fmt.Errorf("invalid options: %w", err)
	}
	kind, err := gitbackend.KindFromString(cfg.General.Backend)
	if err != nil {
		return settings{}, err
	}

	repoPath := "."
	switch {
	case len(args) > 0:
		repoPath = args[0]
	case f.repoPath != "":
		repoPath = f.repoPath
	}

	return settings{
		RepoPath: repoPath,
		Backend:  kind,
		Limits: app.Limits{
			Commits: cfg.General.CommitsLimit,
			Reflog:  cfg.General.ReflogLimit,
		},
		UI: tui.Options{
			TickInterval: cfg.General.TickInterval(),
			AutoReload:   cfg.General.AutoReload,
			Theme:        tui.ThemePreferenceFromString(cfg.General.Mode),
			Styles:       cfg.Styles,
		},
		LogFile: f.logFile,
		Verbose: f.verbose,
	}, nil
}

func launch(s settings) error {
	closeLog, err := setupLogging(s.LogFile, s.Verbose)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "guit: close log file: %v\n", err)
		}
	}()

	if s.Backend == gitbackend.KindGitCLI {
		if v, err := git.GitVersion(); err == nil {
			slog.Debug("using git executable", slog.String("version", v), slog.String("min", git.MinGitVersion()))
		}
	}

	svc, err := git.Open(s.RepoPath, s.Backend)
	if err != nil {
		return fmt.Errorf("%s backend: %w", s.Backend, err)
	}
	slog.Info("repository opened",
		slog.String("path", svc.RepoPath()),
		slog.String("backend", s.Backend.String()),
	)

	state := app.Open(svc, s.Limits)
	opts := s.UI
	opts.RepoPath = svc.RepoPath()
	return tui.Run(state, opts)
}
