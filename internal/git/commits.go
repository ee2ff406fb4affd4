package git

import (
	"errors"
	"io"
	"log/slog"

	gitbackend "github.com/thiagokokada/guit-go/internal/git/backend"
)

// ListCommits walks history from HEAD, newest committer time first, and
// returns at most limit records. limit <= 0 selects DefaultCommitLimit.
func (s *Service) ListCommits(limit int) []CommitRecord {
	if limit <= 0 {
		limit = DefaultCommitLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, headName, ok, err := s.headStateLocked()
	if err != nil {
		slog.Warn("ListCommits: resolve HEAD", slog.Any("error", err))
		return nil
	}
	if !ok {
		slog.Debug("ListCommits: unborn HEAD")
		return nil
	}
	stream, err := s.backend.StartLogStream(hash)
	if err != nil {
		slog.Warn("ListCommits: start log", slog.Any("error", err))
		return nil
	}
	defer func() {
		if err := stream.Close(); err != nil {
			slog.Debug("ListCommits: close log stream", slog.Any("error", err))
		}
	}()

	records := make([]CommitRecord, 0, limit)
	for len(records) < limit {
		commit, err := stream.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				slog.Warn("ListCommits: iterate commits", slog.Any("error", err))
			}
			break
		}
		records = append(records, commitRecord(commit))
	}
	slog.Debug("ListCommits done", slog.String("head", headName), slog.Int("count", len(records)))
	return records
}

func commitRecord(c *gitbackend.Commit) CommitRecord {
	return CommitRecord{
		ShortHash: shortHash(c.Hash),
		Author:    c.Author.Name,
		Summary:   summaryLine(c.Message),
		When:      c.Committer.When,
	}
}
