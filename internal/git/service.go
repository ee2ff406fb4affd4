package git

import (
	"fmt"
	"strings"
	"sync"

	gitbackend "github.com/thiagokokada/guit-go/internal/git/backend"
)

// Service answers the read-only queries the dashboard needs. Query methods
// never fail: errors are logged and produce empty results.
type Service struct {
	// mu serializes backend access; queries may run off the UI goroutine.
	mu sync.Mutex

	backend gitbackend.Backend
}

func Open(repoPath string, kind gitbackend.Kind) (*Service, error) {
	backend, err := gitbackend.Open(kind, repoPath)
	if err != nil {
		return nil, err
	}
	return NewWithBackend(backend), nil
}

func NewWithBackend(backend gitbackend.Backend) *Service {
	return &Service{backend: backend}
}

func (s *Service) RepoPath() string {
	if s == nil || s.backend == nil {
		return ""
	}
	return s.backend.RepoPath()
}

// HeadName returns the short name of the checked out branch, or "HEAD" when
// HEAD is detached or unborn.
func (s *Service) HeadName() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, name, _, err := s.headStateLocked()
	if err != nil || strings.TrimSpace(name) == "" {
		return "HEAD"
	}
	return name
}

func (s *Service) headStateLocked() (hash string, headName string, ok bool, err error) {
	if s.backend == nil || s.backend.RepoPath() == "" {
		return "", "", false, fmt.Errorf("repository root not set")
	}
	return s.backend.HeadState()
}
