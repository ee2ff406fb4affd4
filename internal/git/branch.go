package git

import (
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	gitbackend "github.com/thiagokokada/guit-go/internal/git/backend"
)

// ListBranches returns the branches of the given kind sorted by name. Names
// that are empty or undecodable are skipped, as are remote HEAD aliases.
func (s *Service) ListBranches(kind BranchKind) []BranchRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backend == nil || s.backend.RepoPath() == "" {
		return nil
	}
	refs, err := s.backend.ListRefs()
	if err != nil {
		slog.Warn("ListBranches: list refs", slog.Any("error", err))
		return nil
	}
	headHash, headName, headOK, err := s.backend.HeadState()
	if err != nil {
		slog.Debug("ListBranches: resolve HEAD", slog.Any("error", err))
		headOK = false
	}

	want := gitbackend.RefKindBranch
	if kind == BranchRemote {
		want = gitbackend.RefKindRemoteBranch
	}
	seen := make(map[string]struct{}, len(refs))
	var branches []BranchRecord
	for _, ref := range refs {
		if ref.Kind != want {
			continue
		}
		name := strings.TrimSpace(ref.Name)
		if !decodableName(name) {
			slog.Debug("ListBranches: skipping undecodable branch name", slog.String("hash", ref.Hash))
			continue
		}
		if kind == BranchRemote && strings.HasSuffix(name, "/HEAD") {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		branches = append(branches, BranchRecord{
			Name:      name,
			ShortHash: shortHash(ref.Hash),
			IsHead:    kind == BranchLocal && headOK && name == headName && ref.Hash == headHash,
		})
	}
	slices.SortFunc(branches, func(a, b BranchRecord) int { return strings.Compare(a.Name, b.Name) })
	return branches
}

// decodableName reports whether name survived decoding intact. go-git maps
// invalid bytes to U+FFFD, so the replacement character counts as a failure.
func decodableName(name string) bool {
	return name != "" && utf8.ValidString(name) && !strings.ContainsRune(name, utf8.RuneError)
}
