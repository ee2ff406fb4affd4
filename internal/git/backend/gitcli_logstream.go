package backend

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// NUL-delimited records; commit messages cannot contain NUL.
const gitLogFormat = "%H%n%P%n%an%n%ae%n%aI%n%cn%n%ce%n%cI%n%B%x00"

type gitLogStream struct {
	cancel context.CancelFunc
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer
	r      *bufio.Reader
	eof    bool

	waitOnce sync.Once
	waitErr  error
}

func (g *gitCLI) StartLogStream(fromHash string) (LogStream, error) {
	if g == nil || g.path == "" {
		return nil, fmt.Errorf("repository root not set")
	}
	fromHash = strings.TrimSpace(fromHash)
	if fromHash == "" {
		return nil, fmt.Errorf("starting commit not specified")
	}
	ctx, cancel := context.WithCancel(context.Background())
	// git log defaults to reverse chronological order by committer date.
	cmd := exec.CommandContext(ctx, "git",
		"--no-pager", "-C", g.path,
		"log", "--no-color", "--no-decorate", "--no-patch",
		"--pretty=tformat:"+gitLogFormat,
		fromHash,
	)
	return startLogStream(cancel, cmd)
}

func startLogStream(cancel context.CancelFunc, cmd *exec.Cmd) (*gitLogStream, error) {
	s := &gitLogStream{cancel: cancel, cmd: cmd}
	cmd.Stderr = &s.stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("git log stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("git log start: %w", err)
	}
	s.stdout = stdout
	s.r = bufio.NewReader(stdout)
	return s, nil
}

func (s *gitLogStream) Next() (*Commit, error) {
	if s.eof {
		return nil, io.EOF
	}
	rec, err := readLogRecord(s.r)
	if err == io.EOF {
		s.eof = true
		if waitErr := s.wait(); waitErr != nil {
			return nil, waitErr
		}
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	return parseGitLogRecord(rec)
}

// readLogRecord returns the next NUL-terminated record without its
// terminator. tformat prints a newline after each NUL, which is dropped.
func readLogRecord(r *bufio.Reader) ([]byte, error) {
	rec, err := r.ReadBytes(0)
	if err == io.EOF {
		if len(bytes.TrimSpace(rec)) != 0 {
			return nil, fmt.Errorf("truncated git log record")
		}
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	rec = bytes.TrimLeft(rec[:len(rec)-1], "\r\n")
	if len(rec) == 0 {
		return nil, fmt.Errorf("unexpected empty git log record")
	}
	return rec, nil
}

// Close stops git. Its exit status is only reported once the whole history
// was read; stopping early kills the process.
func (s *gitLogStream) Close() error {
	s.cancel()
	_ = s.stdout.Close()
	err := s.wait()
	if !s.eof {
		return nil
	}
	return err
}

func (s *gitLogStream) wait() error {
	s.waitOnce.Do(func() {
		s.waitErr = s.cmd.Wait()
	})
	if s.waitErr == nil {
		return nil
	}
	if s.stderr.Len() > 0 {
		return fmt.Errorf("git log: %v: %s", s.waitErr, strings.TrimSpace(s.stderr.String()))
	}
	return fmt.Errorf("git log: %w", s.waitErr)
}

func parseGitLogRecord(rec []byte) (*Commit, error) {
	parts := strings.Split(string(rec), "\n")
	if len(parts) < 8 {
		return nil, fmt.Errorf("unexpected git log record: got %d lines", len(parts))
	}
	hash := strings.TrimSpace(parts[0])
	if hash == "" {
		return nil, fmt.Errorf("missing commit hash")
	}
	var parents []string
	if parentLine := strings.TrimSpace(parts[1]); parentLine != "" {
		parents = strings.Fields(parentLine)
	}
	authorWhen, _ := time.Parse(time.RFC3339, parts[4])
	committerWhen, _ := time.Parse(time.RFC3339, parts[7])
	message := ""
	if len(parts) > 8 {
		message = strings.Join(parts[8:], "\n")
	}
	return &Commit{
		Hash:         hash,
		ParentHashes: parents,
		Author:       Signature{Name: parts[2], Email: parts[3], When: authorWhen},
		Committer:    Signature{Name: parts[5], Email: parts[6], When: committerWhen},
		Message:      message,
	}, nil
}
