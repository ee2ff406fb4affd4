package backend

import (
	"errors"
	"fmt"
)

// ErrRepositoryNotFound is returned by the Open functions when the path is not
// inside a git repository.
var ErrRepositoryNotFound = errors.New("repository not found")

// Backend abstracts read-only access to repository data.
//
// The default implementation reads the repository with go-git; the gitcli
// implementation shells out to the git executable. Callers never see which one
// is in use.
type Backend interface {
	RepoPath() string

	// HeadState reports ok=false for an unborn HEAD (empty repository).
	HeadState() (hash string, headName string, ok bool, err error)
	StartLogStream(fromHash string) (LogStream, error)
	ListRefs() ([]Ref, error)
	// ReadReflog returns at most limit entries of the HEAD reflog, newest first.
	// A missing reflog is not an error.
	ReadReflog(limit int) ([]ReflogEntry, error)
	Status() ([]StatusEntry, error)
}

// LogStream yields commits in committer-time order, newest first, and returns
// io.EOF once exhausted.
type LogStream interface {
	Next() (*Commit, error)
	Close() error
}

type Kind uint8

const (
	KindNative Kind = iota
	KindGitCLI
)

func (k Kind) String() string {
	switch k {
	case KindGitCLI:
		return "gitcli"
	default:
		return "native"
	}
}

func KindFromString(raw string) (Kind, error) {
	switch raw {
	case "", KindNative.String():
		return KindNative, nil
	case KindGitCLI.String():
		return KindGitCLI, nil
	default:
		return KindNative, fmt.Errorf("unknown backend %q (want native or gitcli)", raw)
	}
}

// Open opens repoPath with the requested backend implementation.
func Open(kind Kind, repoPath string) (Backend, error) {
	if kind == KindGitCLI {
		return OpenCLI(repoPath)
	}
	return OpenNative(repoPath)
}
