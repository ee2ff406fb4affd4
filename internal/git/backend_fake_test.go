package git

import (
	"errors"
	"io"

	gitbackend "github.com/thiagokokada/guit-go/internal/git/backend"
)

type fakeBackend struct {
	repoPath string

	headStateFunc      func() (hash string, headName string, ok bool, err error)
	listRefsFunc       func() ([]gitbackend.Ref, error)
	readReflogFunc     func(limit int) ([]gitbackend.ReflogEntry, error)
	statusFunc         func() ([]gitbackend.StatusEntry, error)
	startLogStreamFunc func(fromHash string) (gitbackend.LogStream, error)

	lastLogFrom     string
	lastReflogLimit int
}

func (f *fakeBackend) RepoPath() string { return f.repoPath }

func (f *fakeBackend) StartLogStream(fromHash string) (gitbackend.LogStream, error) {
	f.lastLogFrom = fromHash
	if f.startLogStreamFunc != nil {
		return f.startLogStreamFunc(fromHash)
	}
	return nil, errors.New("unexpected StartLogStream call")
}

func (f *fakeBackend) HeadState() (hash string, headName string, ok bool, err error) {
	if f.headStateFunc != nil {
		return f.headStateFunc()
	}
	return "", "", false, errors.New("unexpected HeadState call")
}

func (f *fakeBackend) ListRefs() ([]gitbackend.Ref, error) {
	if f.listRefsFunc != nil {
		return f.listRefsFunc()
	}
	return nil, errors.New("unexpected ListRefs call")
}

func (f *fakeBackend) ReadReflog(limit int) ([]gitbackend.ReflogEntry, error) {
	f.lastReflogLimit = limit
	if f.readReflogFunc != nil {
		return f.readReflogFunc(limit)
	}
	return nil, errors.New("unexpected ReadReflog call")
}

func (f *fakeBackend) Status() ([]gitbackend.StatusEntry, error) {
	if f.statusFunc != nil {
		return f.statusFunc()
	}
	return nil, errors.New("unexpected Status call")
}

// sliceLogStream replays commits and then reports err (io.EOF when nil).
type sliceLogStream struct {
	commits []*gitbackend.Commit
	err     error
	closed  bool
}

func (s *sliceLogStream) Next() (*gitbackend.Commit, error) {
	if len(s.commits) == 0 {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	c := s.commits[0]
	s.commits = s.commits[1:]
	return c, nil
}

func (s *sliceLogStream) Close() error {
	s.closed = true
	return nil
}

func headAt(hash, name string) func() (string, string, bool, error) {
	return func() (string, string, bool, error) {
		return hash, name, true, nil
	}
}

func unbornHead() (string, string, bool, error) {
	return "", "", false, nil
}
