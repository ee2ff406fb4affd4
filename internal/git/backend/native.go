package backend

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

const headReflogPath = "logs/HEAD"

type native struct {
	path string
	repo *gitlib.Repository
}

// OpenNative opens the repository containing repoPath using go-git.
func OpenNative(repoPath string) (Backend, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	// Plain open first so bare repositories are found at abs itself.
	repo, err := gitlib.PlainOpen(abs)
	if errors.Is(err, gitlib.ErrRepositoryNotExists) {
		repo, err = gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	}
	if err != nil {
		if errors.Is(err, gitlib.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("open repository %s: %w", abs, ErrRepositoryNotFound)
		}
		return nil, fmt.Errorf("open repository %s: %w", abs, err)
	}
	root := abs
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	return newNative(root, repo), nil
}

func newNative(path string, repo *gitlib.Repository) *native {
	return &native{path: path, repo: repo}
}

func (n *native) RepoPath() string {
	if n == nil {
		return ""
	}
	return n.path
}

func (n *native) HeadState() (hash string, headName string, ok bool, err error) {
	ref, err := n.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", "", false, nil
		}
		return "", "", false, fmt.Errorf("resolve HEAD: %w", err)
	}
	headName = "HEAD"
	if ref.Name().IsBranch() {
		headName = ref.Name().Short()
	}
	return ref.Hash().String(), headName, true, nil
}

func (n *native) StartLogStream(fromHash string) (LogStream, error) {
	fromHash = strings.TrimSpace(fromHash)
	if fromHash == "" {
		return nil, fmt.Errorf("starting commit not specified")
	}
	iter, err := n.repo.Log(&gitlib.LogOptions{
		From:  plumbing.NewHash(fromHash),
		Order: gitlib.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("read commits: %w", err)
	}
	return &nativeLogStream{iter: iter}, nil
}

type nativeLogStream struct {
	iter object.CommitIter
}

func (s *nativeLogStream) Next() (*Commit, error) {
	c, err := s.iter.Next()
	if err != nil {
		return nil, err
	}
	return commitFromObject(c), nil
}

func (s *nativeLogStream) Close() error {
	s.iter.Close()
	return nil
}

func commitFromObject(c *object.Commit) *Commit {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}
	return &Commit{
		Hash:         c.Hash.String(),
		ParentHashes: parents,
		Author:       Signature{Name: c.Author.Name, Email: c.Author.Email, When: c.Author.When},
		Committer:    Signature{Name: c.Committer.Name, Email: c.Committer.Email, When: c.Committer.When},
		Message:      c.Message,
	}
}

func (n *native) ListRefs() ([]Ref, error) {
	iter, err := n.repo.References()
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	defer iter.Close()
	var refs []Ref
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		switch {
		case name.IsBranch():
			refs = append(refs, Ref{Hash: ref.Hash().String(), Kind: RefKindBranch, Name: name.Short()})
		case name.IsRemote():
			refs = append(refs, Ref{Hash: ref.Hash().String(), Kind: RefKindRemoteBranch, Name: name.Short()})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	return refs, nil
}

func (n *native) ReadReflog(limit int) ([]ReflogEntry, error) {
	st, ok := n.repo.Storer.(*filesystem.Storage)
	if !ok {
		// In-memory storage keeps no reflog.
		return nil, nil
	}
	return readReflogFile(st.Filesystem(), headReflogPath, limit)
}

func readReflogFile(fs billy.Filesystem, name string, limit int) ([]ReflogEntry, error) {
	f, err := fs.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("no reflog", slog.String("path", fs.Join(fs.Root(), name)))
			return nil, nil
		}
		return nil, fmt.Errorf("open reflog: %w", err)
	}
	defer f.Close()
	return parseReflog(f, limit)
}

func (n *native) Status() ([]StatusEntry, error) {
	wt, err := n.repo.Worktree()
	if err != nil {
		if errors.Is(err, gitlib.ErrIsBareRepository) {
			return nil, nil
		}
		return nil, fmt.Errorf("open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("worktree status: %w", err)
	}
	entries := make([]StatusEntry, 0, len(status))
	for path, st := range status {
		if st.Staging == gitlib.Unmodified && st.Worktree == gitlib.Unmodified {
			continue
		}
		entries = append(entries, StatusEntry{
			Path:     path,
			Staging:  StatusCode(st.Staging),
			Worktree: StatusCode(st.Worktree),
		})
	}
	slices.SortFunc(entries, func(a, b StatusEntry) int { return strings.Compare(a.Path, b.Path) })
	return entries, nil
}
