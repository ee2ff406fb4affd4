package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	gitbackend "github.com/thiagokokada/guit-go/internal/git/backend"
)

func initRepoWithCommits(t *testing.T, n int) (string, *gitlib.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gitlib.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	base := time.Unix(1700000000, 0)
	for i := range n {
		if err := os.WriteFile(filepath.Join(dir, "file.txt"), []byte(fmt.Sprint(i)), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := wt.Add("file.txt"); err != nil {
			t.Fatalf("Add: %v", err)
		}
		_, err := wt.Commit(fmt.Sprintf("change %d", i), &gitlib.CommitOptions{
			Author: &object.Signature{Name: "Tester", Email: "tester@example.com", When: base.Add(time.Duration(i) * time.Minute)},
		})
		if err != nil {
			t.Fatalf("Commit: %v", err)
		}
	}
	return dir, repo
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(t.TempDir(), gitbackend.KindNative)
	if !errors.Is(err, gitbackend.ErrRepositoryNotFound) {
		t.Fatalf("expected ErrRepositoryNotFound, got %v", err)
	}
}

func TestNativeService_Queries(t *testing.T) {
	dir, repo := initRepoWithCommits(t, 25)
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if err := repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewBranchReferenceName("feature"), head.Hash())); err != nil {
		t.Fatalf("SetReference: %v", err)
	}

	svc, err := Open(dir, gitbackend.KindNative)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if svc.RepoPath() != dir {
		t.Fatalf("RepoPath() = %q, want %q", svc.RepoPath(), dir)
	}
	if got := svc.HeadName(); got != "master" {
		t.Fatalf("HeadName() = %q, want master", got)
	}

	commits := svc.ListCommits(DefaultCommitLimit)
	if len(commits) != DefaultCommitLimit {
		t.Fatalf("expected %d commits, got %d", DefaultCommitLimit, len(commits))
	}
	if commits[0].Summary != "change 24" || commits[0].ShortHash != head.Hash().String()[:7] {
		t.Fatalf("unexpected newest commit: %+v", commits[0])
	}
	if commits[len(commits)-1].Summary != "change 5" {
		t.Fatalf("unexpected oldest listed commit: %+v", commits[len(commits)-1])
	}

	branches := svc.ListBranches(BranchLocal)
	if len(branches) != 2 || branches[0].Name != "feature" || branches[1].Name != "master" {
		t.Fatalf("unexpected branches: %+v", branches)
	}
	if branches[0].IsHead || !branches[1].IsHead {
		t.Fatalf("unexpected head marker: %+v", branches)
	}
	if remotes := svc.ListBranches(BranchRemote); len(remotes) != 0 {
		t.Fatalf("expected no remote branches, got %+v", remotes)
	}
	if status := svc.ListStatus(); len(status) != 0 {
		t.Fatalf("expected clean worktree, got %+v", status)
	}
}

func TestNativeService_EmptyRepository(t *testing.T) {
	dir := t.TempDir()
	if _, err := gitlib.PlainInit(dir, false); err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	svc, err := Open(dir, gitbackend.KindNative)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := svc.ListCommits(10); len(got) != 0 {
		t.Fatalf("expected no commits, got %+v", got)
	}
	if got := svc.ListReflog(10); len(got) != 0 {
		t.Fatalf("expected no reflog, got %+v", got)
	}
	if got := svc.ListBranches(BranchLocal); len(got) != 0 {
		t.Fatalf("expected no branches, got %+v", got)
	}
	if got := svc.HeadName(); got != "HEAD" {
		t.Fatalf("HeadName() = %q, want HEAD", got)
	}
}

func TestNativeService_SkipsUndecodableBranchName(t *testing.T) {
	dir, repo := initRepoWithCommits(t, 1)
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	ref := filepath.Join(dir, ".git", "refs", "heads", "bad-\xff")
	if err := os.WriteFile(ref, []byte(head.Hash().String()+"\n"), 0o644); err != nil {
		t.Skipf("filesystem rejects non-UTF-8 names: %v", err)
	}

	svc, err := Open(dir, gitbackend.KindNative)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got := svc.ListBranches(BranchLocal)
	if len(got) != 1 || got[0].Name != "master" {
		t.Fatalf("expected only master, got %+v", got)
	}
}
