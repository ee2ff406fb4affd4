package backend

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

type gitCLI struct {
	path string
}

// OpenCLI opens the repository containing repoPath through the git executable.
func OpenCLI(repoPath string) (Backend, error) {
	if err := ensureMinGitVersion(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	probe := &gitCLI{path: abs}
	gitDir, err := probe.run("rev-parse", "--absolute-git-dir")
	if err != nil {
		var gerr *gitError
		if errors.As(err, &gerr) && strings.Contains(gerr.stderr, "not a git repository") {
			return nil, fmt.Errorf("open repository %s: %w", abs, ErrRepositoryNotFound)
		}
		return nil, fmt.Errorf("open repository %s: %w", abs, err)
	}
	root := strings.TrimSpace(gitDir)
	// Bare repositories have no work tree and are addressed by their git dir.
	if top, err := probe.run("rev-parse", "--show-toplevel"); err == nil && strings.TrimSpace(top) != "" {
		root = strings.TrimSpace(top)
	}
	if root == "" {
		return nil, fmt.Errorf("open repository %s: git rev-parse returned empty root", abs)
	}
	return &gitCLI{path: root}, nil
}

func (g *gitCLI) RepoPath() string {
	if g == nil {
		return ""
	}
	return g.path
}

// gitError is a failed git invocation along with what it printed on stderr.
type gitError struct {
	cmd    string
	err    error
	stderr string
}

func (e *gitError) Error() string {
	if e.stderr == "" {
		return fmt.Sprintf("git %s: %v", e.cmd, e.err)
	}
	return fmt.Sprintf("git %s: %v: %s", e.cmd, e.err, e.stderr)
}

func (e *gitError) Unwrap() error { return e.err }

// silentMiss is the exit status 1 with empty stderr that `rev-parse -q` and
// `symbolic-ref -q` use for "no such ref".
func (e *gitError) silentMiss() bool {
	var exitErr *exec.ExitError
	return e.stderr == "" && errors.As(e.err, &exitErr) && exitErr.ExitCode() == 1
}

// run executes git inside the repository and returns its stdout.
func (g *gitCLI) run(args ...string) (string, error) {
	if g == nil || g.path == "" {
		return "", fmt.Errorf("repository root not set")
	}
	cmd := exec.Command("git", append([]string{"-C", g.path}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &gitError{cmd: subcommand(args), err: err, stderr: strings.TrimSpace(stderr.String())}
	}
	return stdout.String(), nil
}

// lookup is run for quiet queries: a silent miss yields empty output.
func (g *gitCLI) lookup(args ...string) (string, error) {
	out, err := g.run(args...)
	var gerr *gitError
	if errors.As(err, &gerr) && gerr.silentMiss() {
		return "", nil
	}
	return out, err
}

func subcommand(args []string) string {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			return arg
		}
	}
	return strings.Join(args, " ")
}
