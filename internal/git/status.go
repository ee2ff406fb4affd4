package git

import "log/slog"

// ListStatus returns changed and untracked paths of the working tree, sorted
// by path. Bare repositories have no status.
func (s *Service) ListStatus() []StatusRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backend == nil || s.backend.RepoPath() == "" {
		return nil
	}
	entries, err := s.backend.Status()
	if err != nil {
		slog.Warn("ListStatus: worktree status", slog.Any("error", err))
		return nil
	}
	records := make([]StatusRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, StatusRecord{
			Path:     entry.Path,
			Staging:  byte(entry.Staging),
			Worktree: byte(entry.Worktree),
		})
	}
	return records
}
