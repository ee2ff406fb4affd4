package git

import "log/slog"

// ListReflog reads the reference log of HEAD, most recent entry first, and
// returns at most limit records. limit <= 0 selects DefaultReflogLimit.
// Each record describes the commit HEAD moved to, who moved it and why.
func (s *Service) ListReflog(limit int) []CommitRecord {
	if limit <= 0 {
		limit = DefaultReflogLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backend == nil || s.backend.RepoPath() == "" {
		return nil
	}
	entries, err := s.backend.ReadReflog(limit)
	if err != nil {
		slog.Warn("ListReflog: read reflog", slog.Any("error", err))
		return nil
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	records := make([]CommitRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, CommitRecord{
			ShortHash: shortHash(entry.NewHash),
			Author:    entry.Actor.Name,
			Summary:   summaryLine(entry.Message),
			When:      entry.Actor.When,
		})
	}
	return records
}
